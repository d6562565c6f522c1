package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BrandonKowalski/navkit/pkg/navkit/payment"
	"github.com/BrandonKowalski/navkit/pkg/navkit/popup"
	"github.com/BrandonKowalski/navkit/pkg/navkit/router"
)

const pinStep = 0.002

type snapshotMsg struct {
	snap  snapshot
	watch bool
}

type loopStoppedMsg struct {
	err error
}

type model struct {
	ctx context.Context
	app *app

	snap   snapshot
	input  string
	width  int
	height int
	err    error
}

func newModel(ctx context.Context, a *app) model {
	return model{ctx: ctx, app: a}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.onLoop(func(*app) {}), m.waitForChange())
}

// onLoop runs fn on the dispatch loop and returns the resulting snapshot.
func (m model) onLoop(fn func(*app)) tea.Cmd {
	a := m.app
	ctx := m.ctx
	return func() tea.Msg {
		var snap snapshot
		err := a.shell.Loop().Do(ctx, func() {
			fn(a)
			snap = a.snapshot()
		})
		if err != nil {
			return loopStoppedMsg{err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

// waitForChange delivers a snapshot after background work (timers, network
// results, browser callbacks) changed the engine state.
func (m model) waitForChange() tea.Cmd {
	a := m.app
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-a.changes():
		case <-ctx.Done():
			return loopStoppedMsg{err: ctx.Err()}
		}
		var snap snapshot
		if err := a.shell.Loop().Do(ctx, func() { snap = a.snapshot() }); err != nil {
			return loopStoppedMsg{err: err}
		}
		return snapshotMsg{snap: snap, watch: true}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case snapshotMsg:
		m.snap = msg.snap
		if m.snap.action == nil {
			m.input = ""
		}
		if msg.watch {
			return m, m.waitForChange()
		}
		return m, nil
	case loopStoppedMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.snap.action != nil {
			return m.updateAction(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m model) updateAction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, isInput := m.snap.action.(popup.InputConfirmation)
	key := msg.String()

	switch {
	case key == "enter" || (!isInput && key == "y"):
		input := m.input
		m.input = ""
		return m, m.onLoop(func(a *app) { a.shell.Popups().Confirm(input) })
	case key == "esc" || (!isInput && key == "n"):
		m.input = ""
		return m, m.onLoop(func(a *app) { a.shell.Popups().Dismiss() })
	case isInput && key == "backspace":
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case isInput && (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace):
		if msg.Type == tea.KeySpace {
			m.input += " "
		} else {
			m.input += string(msg.Runes)
		}
	}
	return m, nil
}

func (m model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1", "2", "3", "4":
		tab := router.Tab(msg.Runes[0] - '1')
		return m, m.onLoop(func(a *app) { a.shell.Router().SelectTab(tab) })
	case "p":
		return m, m.onLoop(func(a *app) { a.push(router.ProductDetail{ProductID: a.nextID("product")}) })
	case "s":
		return m, m.onLoop(func(a *app) { a.push(router.StoreDetail{StoreID: a.nextID("store")}) })
	case "c":
		return m, m.onLoop(func(a *app) { a.push(router.Cart{}) })
	case "o":
		return m, m.onLoop(func(a *app) { a.push(router.OrderDetail{OrderID: a.nextID("order")}) })
	case "esc", "backspace":
		return m, m.onLoop(func(a *app) { a.back() })
	case "h":
		return m, m.onLoop(func(a *app) { a.shell.Router().Reset(nil) })
	case "g":
		return m, m.onLoop(func(a *app) { a.shell.Router().Reset(router.Settings{}) })
	case "l":
		return m, m.onLoop(func(a *app) { a.openDeepLink() })
	case "d":
		return m, m.onLoop(func(a *app) { a.confirmRemoval() })
	case "i":
		return m, m.onLoop(func(a *app) { a.askReminderName() })
	case "e":
		return m, m.onLoop(func(a *app) { a.failSync() })
	case "u":
		return m, m.onLoop(func(a *app) { a.home.Clear() })
	case "x":
		return m, m.onLoop(func(a *app) { a.shell.Popups().CloseNotification() })
	case "t":
		return m, m.checkout("success", nil)
	case "f":
		return m, m.checkout("failure", nil)
	case "k":
		return m, m.checkout("cancel", nil)
	case "w":
		return m, m.checkout("notification", nil)
	case "m":
		return m, m.checkout("success", &payment.Config{SuccessPrefix: "not a url"})
	case "a":
		return m, m.onLoop(func(a *app) { a.openPicker() })
	case "up":
		return m, m.onLoop(func(a *app) { a.movePin(pinStep, 0) })
	case "down":
		return m, m.onLoop(func(a *app) { a.movePin(-pinStep, 0) })
	case "left":
		return m, m.onLoop(func(a *app) { a.movePin(0, -pinStep) })
	case "right":
		return m, m.onLoop(func(a *app) { a.movePin(0, pinStep) })
	}
	return m, nil
}

func (m model) checkout(returnPath string, override *payment.Config) tea.Cmd {
	return m.onLoop(func(a *app) {
		cfg := a.payment
		if override != nil {
			cfg = *override
		}
		a.startCheckout(returnPath, cfg)
	})
}
