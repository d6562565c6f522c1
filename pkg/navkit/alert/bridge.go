package alert

import (
	"log/slog"

	"github.com/BrandonKowalski/navkit/pkg/navkit/internal"
	"github.com/BrandonKowalski/navkit/pkg/navkit/popup"
)

// Poster marshals work onto the dispatch loop. *dispatch.Loop implements it.
type Poster interface {
	Post(fn func()) bool
}

// Presenter shows notifications. *popup.Controller implements it.
type Presenter interface {
	OpenNotification(p popup.NotificationPopup)
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithName labels the bridge in logs, usually with the hosting screen.
func WithName(name string) BridgeOption {
	return func(b *Bridge) {
		b.name = name
	}
}

// WithTitle sets a fixed title for every notification the bridge opens.
// Empty keeps the localized severity title.
func WithTitle(title string) BridgeOption {
	return func(b *Bridge) {
		b.title = title
	}
}

// WithBridgeLogger overrides the engine logger.
func WithBridgeLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// Bridge forwards changes of a Feed's message text to a Presenter.
//
// Delivery is edge-triggered: a notification opens only when the text
// changes to a non-empty value. The value already present when Attach is
// called is the baseline and never fires by itself.
//
// Attach, Detach and delivery all run on the dispatch loop. Messages
// published while attached but delivered after Detach are dropped.
type Bridge struct {
	loop      Poster
	presenter Presenter
	name      string
	title     string
	logger    *slog.Logger

	// Loop-only state.
	generation  uint64
	last        string
	version     uint64
	unsubscribe func()
}

// NewBridge creates a detached bridge.
func NewBridge(loop Poster, presenter Presenter, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		loop:      loop,
		presenter: presenter,
		logger:    internal.GetInternalLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach starts forwarding feed's messages. Call it when the hosting screen
// becomes visible. Attaching again replaces the previous feed.
func (b *Bridge) Attach(feed *Feed) {
	b.Detach()

	gen := b.generation
	current, cancel := feed.Subscribe(func(u Update) {
		b.loop.Post(func() {
			b.deliver(gen, u)
		})
	})
	b.last = current.Text
	b.version = current.Version
	b.unsubscribe = cancel
	b.logger.Debug("alert bridge attached", "bridge", b.name)
}

// Detach stops forwarding. Call it when the hosting screen is torn down.
// Detaching a detached bridge does nothing.
func (b *Bridge) Detach() {
	if b.unsubscribe == nil {
		return
	}
	b.unsubscribe()
	b.unsubscribe = nil
	b.generation++
	b.logger.Debug("alert bridge detached", "bridge", b.name)
}

// Attached reports whether the bridge is forwarding.
func (b *Bridge) Attached() bool {
	return b.unsubscribe != nil
}

func (b *Bridge) deliver(gen uint64, u Update) {
	if gen != b.generation || b.unsubscribe == nil {
		b.logger.Debug("alert dropped after detach", "bridge", b.name)
		return
	}
	if u.Version <= b.version {
		return
	}
	b.version = u.Version
	if u.Text == b.last {
		return
	}
	b.last = u.Text
	if u.Text == "" {
		return
	}
	b.presenter.OpenNotification(popup.NewNotification(u.Severity, b.title, u.Text))
}
