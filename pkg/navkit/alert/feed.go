// Package alert carries transient status messages from feature components to
// the notification channel.
//
// A feature component owns a Feed and publishes to it when an operation
// finishes. The hosting screen attaches a Bridge to that feed while it is
// visible; the bridge turns each new message into a notification popup.
package alert

import (
	"errors"
	"sync"

	"github.com/BrandonKowalski/navkit/pkg/navkit/popup"
)

// Message is a feature component's current status text. Empty Text means
// there is nothing to show. Unspecified severity is presented as an error.
type Message struct {
	Text     string
	Severity popup.Severity
}

// Update is a published message with its position in the feed's history.
type Update struct {
	Message
	Version uint64 // Increases by one per Publish
}

// Feed is a single-value publish/subscribe cell. Publish may be called from
// any goroutine. Deliveries happen outside the feed's lock, so concurrent
// publishes can reach a subscriber out of order; Version lets subscribers
// discard anything older than what they have already seen.
type Feed struct {
	mu      sync.Mutex
	current Update
	subs    map[uint64]func(Update)
	nextID  uint64
}

// NewFeed creates a feed whose current value is the empty message.
func NewFeed() *Feed {
	return &Feed{subs: make(map[uint64]func(Update))}
}

// Publish stores m as the current value and delivers it to every subscriber.
func (f *Feed) Publish(m Message) {
	f.mu.Lock()
	f.current = Update{Message: m, Version: f.current.Version + 1}
	u := f.current
	subs := make([]func(Update), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

// Current returns the last published value.
func (f *Feed) Current() Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current.Message
}

// Subscribe registers fn for future values and returns the value current at
// the moment of subscription. Every later Publish has a higher Version.
func (f *Feed) Subscribe(fn func(Update)) (current Update, cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	return f.current, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

type userMessager interface {
	UserMessage() string
}

// Fail publishes err as an error. Errors in the chain that implement
// UserMessage() string supply the text; otherwise err.Error() is used.
// A nil err clears the message.
func (f *Feed) Fail(err error) {
	if err == nil {
		f.Clear()
		return
	}
	text := err.Error()
	var um userMessager
	if errors.As(err, &um) {
		text = um.UserMessage()
	}
	f.Publish(Message{Text: text, Severity: popup.SeverityError})
}

// Succeed publishes text as a success message.
func (f *Feed) Succeed(text string) {
	f.Publish(Message{Text: text, Severity: popup.SeveritySuccess})
}

// Inform publishes text as an info message.
func (f *Feed) Inform(text string) {
	f.Publish(Message{Text: text, Severity: popup.SeverityInfo})
}

// Clear publishes the empty message. Publishing the same text again after a
// Clear counts as a new message.
func (f *Feed) Clear() {
	f.Publish(Message{})
}
