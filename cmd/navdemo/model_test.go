package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navkit/pkg/navkit"
	"github.com/BrandonKowalski/navkit/pkg/navkit/popup"
	"github.com/BrandonKowalski/navkit/pkg/navkit/router"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	settings := navkit.DefaultSettings()
	shell, err := navkit.Init(navkit.Options{Settings: &settings, Logger: logger})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go shell.Run(ctx)
	t.Cleanup(func() {
		cancel()
		shell.Loop().Stop()
	})

	a, err := newApp(ctx, shell, logger)
	require.NoError(t, err)
	return newModel(ctx, a)
}

func press(t *testing.T, m model, key tea.KeyMsg) model {
	t.Helper()
	next, cmd := m.Update(key)
	m = next.(model)
	if cmd == nil {
		return m
	}
	next, _ = m.Update(cmd())
	return next.(model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// refresh polls until cond holds for a fresh snapshot.
func refresh(t *testing.T, m model, cond func(snapshot) bool) model {
	t.Helper()
	require.Eventually(t, func() bool {
		next, _ := m.Update(m.onLoop(func(*app) {})())
		m = next.(model)
		return cond(m.snap)
	}, time.Second, 5*time.Millisecond)
	return m
}

func TestPushAndBack(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("p"))
	m = press(t, m, runes("c"))
	require.Len(t, m.snap.path, 2)
	assert.Equal(t, router.Cart{}, m.snap.path[1])
	assert.Contains(t, m.View(), "ProductDetail")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.snap.path, 1)

	m = press(t, m, runes("h"))
	assert.Empty(t, m.snap.path)
}

func TestTabSelection(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("p"))
	m = press(t, m, runes("3"))

	assert.Equal(t, router.TabWallet, m.snap.tab)
	assert.Empty(t, m.snap.path)
}

func TestConfirmRemovalShowsNotification(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("d"))
	require.NotNil(t, m.snap.action)
	assert.Contains(t, m.View(), "Remove item?")

	m = press(t, m, runes("y"))
	assert.Nil(t, m.snap.action)

	m = refresh(t, m, func(s snapshot) bool { return s.notification != nil })
	assert.Equal(t, popup.SeveritySuccess, m.snap.notification.Severity())
}

func TestReminderInput(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("i"))
	m = press(t, m, runes("q"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = press(t, m, runes("milk"))
	assert.Equal(t, "q milk", m.input)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.snap.path, 1)
	assert.Equal(t, router.ReminderDetail{ReminderID: "q milk"}, m.snap.path[0])
}

func TestSyncErrorIsEdgeTriggered(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("e"))
	m = refresh(t, m, func(s snapshot) bool { return s.notification != nil })
	assert.Equal(t, "Couldn't refresh your cart.", m.snap.notification.Content().Message)

	m = press(t, m, runes("x"))
	m = press(t, m, runes("e"))
	time.Sleep(20 * time.Millisecond)
	m = refresh(t, m, func(snapshot) bool { return true })
	assert.Nil(t, m.snap.notification)
}

func TestDeepLinkOpensTopUp(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("l"))

	assert.Equal(t, router.TabWallet, m.snap.tab)
	assert.Equal(t, []router.Destination{router.WalletTopUp{AmountCents: 2500}}, m.snap.path)
}
