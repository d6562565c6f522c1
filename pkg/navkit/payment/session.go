// Package payment drives the embedded checkout browser.
//
// A Session watches every navigation the browser attempts. Navigations that
// start with one of the configured return prefixes are outcome signals: the
// session moves to the matching terminal state and tells the browser not to
// follow the link. Everything else loads normally.
//
//	pending ──success prefix──────▶ succeeded
//	        ──failure prefix──────▶ failed
//	        ──cancel prefix───────▶ cancelled
//	        ──notification prefix─▶ notificationReceived
//
// The first terminal state is final. Later matching navigations are still
// cancelled but cannot change the outcome.
package payment

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/navkit/pkg/navkit/internal"
)

// ErrSessionClosed is returned for browser callbacks that arrive after the
// hosting screen closed the session.
var ErrSessionClosed = errors.New("payment: session closed")

// Runner executes a function on the dispatch loop and waits for it.
// *dispatch.Loop implements it.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger overrides the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithID sets the session ID used in logs. Defaults to a random UUID.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

type matcher struct {
	outcome State
	prefix  string
	// folded is the configured prefix with only scheme and host
	// lower-cased, for targets that do not parse.
	folded string
}

// Session is the payment outcome state machine for one checkout.
//
// State mutations happen on the dispatch loop: call Decide, OnResult and
// Close from the loop, and use Navigate from browser goroutines. Loading,
// PageLoaded and Result are safe from any goroutine.
type Session struct {
	id        string
	runner    Runner
	matchers  []matcher
	configErr error
	logger    *slog.Logger

	loading    atomic.Bool
	closedFlag atomic.Bool

	// Loop-only state.
	state     State
	closed    bool
	result    chan State
	listeners []func(State)
}

// NewSession validates cfg and starts a pending session with loading set.
// Malformed prefixes never match. If all four are malformed the session
// stays pending forever and ConfigErr reports ErrMalformedSessionConfig.
func NewSession(runner Runner, cfg Config, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		runner: runner,
		logger: internal.GetInternalLogger(),
		state:  StatePending,
		result: make(chan State, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	s.loading.Store(true)

	for _, r := range cfg.rules() {
		prefix, err := normalize(r.prefix)
		if err != nil {
			s.logger.Warn("ignoring malformed payment prefix",
				"outcome", r.outcome.String(), "prefix", r.prefix, "error", err)
			continue
		}
		s.matchers = append(s.matchers, matcher{outcome: r.outcome, prefix: prefix, folded: fold(r.prefix)})
	}
	if len(s.matchers) == 0 {
		s.configErr = ErrMalformedSessionConfig
		s.logger.Error("payment session can never complete", "error", s.configErr)
	}
	return s
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// ConfigErr returns ErrMalformedSessionConfig if no prefix is usable.
func (s *Session) ConfigErr() error {
	return s.configErr
}

// Decide classifies one navigation request and returns whether the browser
// should follow it. Prefixes are tested in the order success, failure,
// cancel, notification; the first match wins. Must run on the loop.
func (s *Session) Decide(rawURL string) Policy {
	if s.closed {
		return PolicyCancel
	}

	outcome, ok := s.match(rawURL)
	if !ok {
		return PolicyAllow
	}
	if s.state.IsTerminal() {
		s.logger.Debug("discarding outcome after terminal state",
			"state", s.state.String(), "ignored", outcome.String())
		return PolicyCancel
	}
	s.finish(outcome)
	return PolicyCancel
}

// match returns the outcome of the first prefix rawURL starts with. Targets
// that fail to parse, such as a path with a bad escape, are compared as
// folded text.
func (s *Session) match(rawURL string) (State, bool) {
	target, err := normalize(rawURL)
	if err != nil {
		target = fold(rawURL)
		for _, m := range s.matchers {
			if strings.HasPrefix(target, m.folded) || strings.HasPrefix(target, m.prefix) {
				return m.outcome, true
			}
		}
		return StatePending, false
	}
	for _, m := range s.matchers {
		if strings.HasPrefix(target, m.prefix) {
			return m.outcome, true
		}
	}
	return StatePending, false
}

// Navigate is the browser's navigation callback. It marshals the decision
// onto the loop and blocks until it is made. After Close it returns
// PolicyCancel and ErrSessionClosed without touching the session.
func (s *Session) Navigate(ctx context.Context, rawURL string) (Policy, error) {
	if s.closedFlag.Load() {
		return PolicyCancel, ErrSessionClosed
	}
	policy, dropped := PolicyCancel, false
	err := s.runner.Do(ctx, func() {
		if s.closed {
			dropped = true
			return
		}
		policy = s.Decide(rawURL)
	})
	if err != nil {
		return PolicyCancel, err
	}
	if dropped {
		return PolicyCancel, ErrSessionClosed
	}
	return policy, nil
}

// PageLoaded records that the first page finished loading.
func (s *Session) PageLoaded() {
	if s.closedFlag.Load() {
		return
	}
	s.loading.Store(false)
}

// Loading reports whether the spinner should show: true from creation until
// the first page loads or an outcome is known.
func (s *Session) Loading() bool {
	return s.loading.Load()
}

// State returns the current state. Must run on the loop.
func (s *Session) State() State {
	return s.state
}

// Result delivers the terminal state once, then is closed. If the session
// is closed before an outcome, the channel is closed without a value.
func (s *Session) Result() <-chan State {
	return s.result
}

// OnResult calls fn on the loop when the session reaches a terminal state,
// or immediately if it already has. Must run on the loop.
func (s *Session) OnResult(fn func(State)) {
	if s.closed {
		return
	}
	if s.state.IsTerminal() {
		fn(s.state)
		return
	}
	s.listeners = append(s.listeners, fn)
}

// Close tears the session down. Later browser callbacks are dropped.
// Must run on the loop; closing twice does nothing.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.closedFlag.Store(true)
	s.loading.Store(false)
	s.listeners = nil
	if !s.state.IsTerminal() {
		close(s.result)
	}
	s.logger.Debug("payment session closed", "state", s.state.String())
}

func (s *Session) finish(outcome State) {
	s.state = outcome
	s.loading.Store(false)
	s.logger.Info("payment outcome", "state", outcome.String())

	s.result <- outcome
	close(s.result)

	listeners := s.listeners
	s.listeners = nil
	for _, fn := range listeners {
		fn(outcome)
	}
}
