package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/navkit/pkg/navkit/popup"
	"github.com/BrandonKowalski/navkit/pkg/navkit/router"
)

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorYellow   lipgloss.Color = "#f9e2af"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorSubtext0)
	activeTabStyle = tabStyle.Bold(true).Foreground(colorText).Background(colorSurface1)
	dimStyle       = lipgloss.NewStyle().Foreground(colorOverlay1)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	modalStyle     = boxStyle.BorderForeground(colorMauve)
	helpStyle      = lipgloss.NewStyle().Foreground(colorOverlay1)
)

var tabs = []router.Tab{router.TabHome, router.TabOrders, router.TabWallet, router.TabProfile}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("loop stopped: %v\n", m.err)
	}

	sections := []string{
		titleStyle.Render("navkit demo"),
		m.renderTabs(),
		m.renderStack(),
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	if n := m.snap.notification; n != nil {
		sections = append(sections, renderNotification(n))
	}
	if a := m.snap.action; a != nil {
		sections = append(sections, m.renderAction(a))
	}
	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderTabs() string {
	parts := make([]string, 0, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.snap.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m model) renderStack() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s (root)", m.snap.tab)))
	for i, d := range m.snap.path {
		b.WriteString("\n")
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", i+1), d.Kind(), describe(d))
		if i == len(m.snap.path)-1 {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(line)
	}
	width := 40
	if m.width > 4 {
		width = m.width - 4
	}
	return boxStyle.Width(width).Render(b.String())
}

func describe(d router.Destination) string {
	switch v := d.(type) {
	case router.ProductDetail:
		return v.ProductID
	case router.StoreDetail:
		return v.StoreID
	case router.OrderDetail:
		return v.OrderID
	case router.ReminderDetail:
		return v.ReminderID
	case router.Checkout:
		return fmt.Sprintf("%s $%d.%02d", v.OrderID, v.AmountCents/100, v.AmountCents%100)
	case router.WalletTopUp:
		return fmt.Sprintf("$%d.%02d", v.AmountCents/100, v.AmountCents%100)
	case router.AddressPicker:
		return fmt.Sprintf("%.4f,%.4f", v.Latitude, v.Longitude)
	default:
		return ""
	}
}

func (m model) renderStatus() string {
	var lines []string
	if m.snap.payment != "" {
		lines = append(lines, "payment: "+m.snap.payment)
	}
	if m.snap.address != "" {
		lines = append(lines, fmt.Sprintf("pin %s: %s", m.snap.pin, m.snap.address))
	}
	return strings.Join(lines, "\n")
}

func renderNotification(n popup.NotificationPopup) string {
	color := popup.MatchNotification[lipgloss.Color](n,
		func(popup.Success) lipgloss.Color { return colorGreen },
		func(popup.Error) lipgloss.Color { return colorRed },
		func(popup.Info) lipgloss.Color { return colorTeal },
	)
	c := n.Content()
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(c.Title)
	return boxStyle.BorderForeground(color).Render(title + "\n" + c.Message + "\n" + helpStyle.Render("x close"))
}

func (m model) renderAction(a popup.ActionPopup) string {
	c := a.Content()
	body := []string{lipgloss.NewStyle().Bold(true).Render(c.Title)}
	if c.Message != "" {
		body = append(body, c.Message)
	}

	hint := popup.MatchAction[string](a,
		func(popup.Confirmation) string { return "y/enter " + c.PrimaryLabel },
		func(v popup.InputConfirmation) string {
			field := m.input
			if field == "" {
				field = dimStyle.Render(v.Placeholder)
			}
			body = append(body, lipgloss.NewStyle().Foreground(colorYellow).Render("> ")+field)
			return "enter " + c.PrimaryLabel
		},
	)
	if !c.HideCancel {
		hint += "  esc " + c.SecondaryLabel
	}
	body = append(body, helpStyle.Render(hint))
	return modalStyle.Render(strings.Join(body, "\n"))
}

func (m model) renderHelp() string {
	if m.snap.action != nil {
		return ""
	}
	return helpStyle.Render(strings.Join([]string{
		"1-4 tab  p/s/c/o push  esc back  h reset  g settings  l deep link",
		"d remove item  i new reminder  e sync error  u clear error  x close notice",
		"t/f/k/w checkout success/failure/cancel/pending  m broken checkout",
		"a address picker  arrows move pin  q quit",
	}, "\n"))
}
