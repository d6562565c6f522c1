package popup

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BrandonKowalski/navkit/pkg/navkit/dispatch"
	"github.com/BrandonKowalski/navkit/pkg/navkit/internal"
	"github.com/BrandonKowalski/navkit/pkg/navkit/internal/locale"
)

// Scheduler runs a callback on the dispatch loop after a delay.
// *dispatch.Loop implements it.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) dispatch.Timer
}

// State is a snapshot of both channels.
type State struct {
	Action       ActionPopup       // nil when no action popup is live
	Notification NotificationPopup // nil when no notification is live
}

// Option configures a Controller.
type Option func(*Controller)

// WithLabels sets the localized default titles and button labels.
func WithLabels(labels locale.Labels) Option {
	return func(c *Controller) {
		c.labels = labels
	}
}

// WithAutoDismiss closes each notification after d unless it was replaced
// or closed first. d <= 0 disables auto-dismiss.
func WithAutoDismiss(d time.Duration, s Scheduler) Option {
	return func(c *Controller) {
		c.autoDismiss = d
		c.scheduler = s
	}
}

// WithLogger overrides the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller owns the action and notification channels. Each channel holds
// at most one live popup; opening a popup replaces the current one on the
// same channel and leaves the other channel untouched. There is no queue.
//
// Controller is not safe for concurrent use. Call it from the dispatch loop.
type Controller struct {
	action       ActionPopup
	notification NotificationPopup

	labels      locale.Labels
	autoDismiss time.Duration
	scheduler   Scheduler
	dismiss     dispatch.Timer

	observers map[int]func(State)
	nextID    int
	logger    *slog.Logger
}

// NewController creates a Controller with both channels empty.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		observers: make(map[int]func(State)),
		logger:    internal.GetInternalLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OpenAction makes p the live action popup, replacing any current one.
// A replaced popup's callbacks are never called.
func (c *Controller) OpenAction(p ActionPopup) {
	if p == nil {
		return
	}
	next := c.withActionDefaults(p)
	if next == nil {
		c.logger.Warn("unsupported action popup value", "type", fmt.Sprintf("%T", p))
		return
	}
	if c.action != nil {
		c.logger.Debug("action popup replaced", "id", c.action.Content().ID)
	}
	c.action = next
	c.notify()
}

// CloseAction clears the action channel without calling any callback.
func (c *Controller) CloseAction() {
	if c.action == nil {
		return
	}
	c.action = nil
	c.notify()
}

// OpenNotification makes p the live notification, replacing any current one.
func (c *Controller) OpenNotification(p NotificationPopup) {
	if p == nil {
		return
	}
	next := c.withNotificationDefaults(p)
	if next == nil {
		c.logger.Warn("unsupported notification value", "type", fmt.Sprintf("%T", p))
		return
	}
	c.stopDismissTimer()
	c.notification = next
	c.logger.Debug("notification opened",
		"severity", c.notification.Severity().String(),
		"id", c.notification.Content().ID)

	if c.autoDismiss > 0 && c.scheduler != nil {
		id := c.notification.Content().ID
		c.dismiss = c.scheduler.AfterFunc(c.autoDismiss, func() {
			if c.notification != nil && c.notification.Content().ID == id {
				c.CloseNotification()
			}
		})
	}
	c.notify()
}

// CloseNotification clears the notification channel.
func (c *Controller) CloseNotification() {
	c.stopDismissTimer()
	if c.notification == nil {
		return
	}
	c.notification = nil
	c.notify()
}

// Action returns the live action popup, or nil.
func (c *Controller) Action() ActionPopup {
	return c.action
}

// Notification returns the live notification, or nil.
func (c *Controller) Notification() NotificationPopup {
	return c.notification
}

// State returns both channels.
func (c *Controller) State() State {
	return State{Action: c.action, Notification: c.notification}
}

// Confirm resolves the live action popup with its primary action. input is
// passed to an InputConfirmation and ignored otherwise. The popup is closed
// before the callback runs, so the callback may open a follow-up popup.
// Returns false if no action popup is live.
func (c *Controller) Confirm(input string) bool {
	if c.action == nil {
		return false
	}
	return c.Resolve(c.action.Content().ID, ResolutionConfirmed, input)
}

// Dismiss resolves the live action popup with its secondary action.
// Returns false if no action popup is live.
func (c *Controller) Dismiss() bool {
	if c.action == nil {
		return false
	}
	return c.Resolve(c.action.Content().ID, ResolutionDismissed, "")
}

// Resolve answers the action popup with the given ID. Answers for a popup
// that has already been replaced or closed are ignored and return false.
func (c *Controller) Resolve(id string, r Resolution, input string) bool {
	p := c.action
	if p == nil || p.Content().ID != id {
		c.logger.Debug("stale popup resolution ignored", "id", id)
		return false
	}

	c.action = nil
	c.notify()

	if r == ResolutionDismissed {
		if cb := p.Content().OnSecondary; cb != nil {
			cb()
		}
		return true
	}

	MatchAction(p,
		func(v Confirmation) struct{} {
			if v.OnPrimary != nil {
				v.OnPrimary()
			}
			return struct{}{}
		},
		func(v InputConfirmation) struct{} {
			if v.OnPrimary != nil {
				v.OnPrimary(input)
			}
			return struct{}{}
		},
	)
	return true
}

// Observe registers fn to be called after every change to either channel.
func (c *Controller) Observe(fn func(State)) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	return func() {
		delete(c.observers, id)
	}
}

func (c *Controller) notify() {
	s := c.State()
	for _, fn := range c.observers {
		fn(s)
	}
}

func (c *Controller) stopDismissTimer() {
	if c.dismiss != nil {
		c.dismiss.Stop()
		c.dismiss = nil
	}
}

func (c *Controller) withActionDefaults(p ActionPopup) ActionPopup {
	fill := func(a ActionContent) ActionContent {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.PrimaryLabel == "" {
			a.PrimaryLabel = c.labels.Get(locale.LabelOK)
		}
		if a.SecondaryLabel == "" && !a.HideCancel {
			a.SecondaryLabel = c.labels.Get(locale.LabelCancel)
		}
		return a
	}
	return MatchAction[ActionPopup](p,
		func(v Confirmation) ActionPopup {
			v.ActionContent = fill(v.ActionContent)
			return v
		},
		func(v InputConfirmation) ActionPopup {
			v.ActionContent = fill(v.ActionContent)
			return v
		},
	)
}

func (c *Controller) withNotificationDefaults(p NotificationPopup) NotificationPopup {
	fill := func(n NotificationContent, titleID string) NotificationContent {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.Title == "" {
			n.Title = c.labels.Get(titleID)
		}
		return n
	}
	return MatchNotification[NotificationPopup](p,
		func(v Success) NotificationPopup {
			v.NotificationContent = fill(v.NotificationContent, locale.TitleSuccess)
			return v
		},
		func(v Error) NotificationPopup {
			v.NotificationContent = fill(v.NotificationContent, locale.TitleError)
			return v
		},
		func(v Info) NotificationPopup {
			v.NotificationContent = fill(v.NotificationContent, locale.TitleInfo)
			return v
		},
	)
}
