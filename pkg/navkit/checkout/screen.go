// Package checkout hosts the embedded payment browser for one order and
// turns its outcome into navigation, notifications and, on success, a
// server-side wallet reconciliation.
package checkout

import (
	"context"
	"log/slog"

	"github.com/BrandonKowalski/navkit/pkg/navkit"
	"github.com/BrandonKowalski/navkit/pkg/navkit/alert"
	"github.com/BrandonKowalski/navkit/pkg/navkit/internal"
	"github.com/BrandonKowalski/navkit/pkg/navkit/payment"
	"github.com/BrandonKowalski/navkit/pkg/navkit/router"
	"github.com/BrandonKowalski/navkit/pkg/navkit/wallet"
)

// User-facing outcome texts.
const (
	textSucceeded       = "Payment received. Your balance has been updated."
	textFailed          = "The payment was declined. No money was taken."
	textCancelled       = "Payment cancelled."
	textPending         = "Your payment is being processed. We'll notify you when it's confirmed."
	textReconcileFailed = "Payment received, but we couldn't update your balance yet. It will appear shortly."
)

// Loop is the dispatch loop the screen runs on. *dispatch.Loop implements it.
type Loop interface {
	Post(fn func()) bool
	Do(ctx context.Context, fn func()) error
}

// Navigator is the part of the router the screen drives.
type Navigator interface {
	Top() (router.Destination, bool)
	Pop()
}

// Reconciler records a successful payment server-side.
// *wallet.Client implements it. A nil Reconciler, including a nil
// *wallet.Client, skips reconciliation.
type Reconciler interface {
	RecordTopUp(ctx context.Context, topUp wallet.TopUp) (*wallet.Receipt, error)
}

// Deps are the shell-scoped collaborators a checkout screen needs.
type Deps struct {
	Loop       Loop
	Router     Navigator
	Popups     alert.Presenter
	Reconciler Reconciler
	Logger     *slog.Logger
}

// Screen owns one payment session for the lifetime of the checkout screen.
type Screen struct {
	deps    Deps
	dest    router.Checkout
	session *payment.Session
	feed    *alert.Feed
	bridge  *alert.Bridge
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// Loop-only state.
	shown  bool
	closed bool
}

// NewScreen creates the screen and its pending session.
func NewScreen(deps Deps, dest router.Checkout, cfg payment.Config) *Screen {
	logger := deps.Logger
	if logger == nil {
		logger = internal.GetInternalLogger()
	}
	if c, ok := deps.Reconciler.(*wallet.Client); ok && c == nil {
		deps.Reconciler = nil
	}
	ctx, cancel := context.WithCancel(context.Background())

	s := &Screen{
		deps:   deps,
		dest:   dest,
		feed:   alert.NewFeed(),
		logger: logger.With("screen", "checkout", "order", dest.OrderID),
		ctx:    ctx,
		cancel: cancel,
	}
	s.session = payment.NewSession(deps.Loop, cfg, payment.WithLogger(s.logger))
	s.bridge = alert.NewBridge(deps.Loop, deps.Popups, alert.WithName("checkout"), alert.WithBridgeLogger(s.logger))
	return s
}

// Session is handed to the browser adapter, which calls Navigate for every
// navigation request and PageLoaded when the first page finishes.
func (s *Screen) Session() *payment.Session {
	return s.session
}

// Feed carries the screen's status messages.
func (s *Screen) Feed() *alert.Feed {
	return s.feed
}

// Show starts surfacing messages and watching the session. Must run on the
// loop.
func (s *Screen) Show() {
	if s.shown || s.closed {
		return
	}
	s.shown = true
	s.bridge.Attach(s.feed)
	if err := s.session.ConfigErr(); err != nil {
		s.feed.Fail(&navkit.FeatureError{
			Feature: "checkout",
			Op:      "configure",
			Message: "Payments are unavailable right now.",
			Err:     err,
		})
	}
	s.session.OnResult(s.handleResult)
}

// Close tears the screen down: the session stops reacting to the browser,
// the bridge detaches and any in-flight reconciliation is cancelled. Must
// run on the loop.
func (s *Screen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.session.Close()
	s.bridge.Detach()
	s.cancel()
}

func (s *Screen) handleResult(st payment.State) {
	switch st {
	case payment.StateSucceeded:
		if s.deps.Reconciler != nil {
			go s.reconcile()
			return
		}
		s.logger.Info("no wallet configured, skipping top-up reconciliation")
		s.feed.Succeed(textSucceeded)
	case payment.StateFailed:
		s.feed.Fail(&navkit.FeatureError{Feature: "checkout", Op: "pay", Message: textFailed})
	case payment.StateCancelled:
		s.feed.Inform(textCancelled)
	case payment.StateNotificationReceived:
		s.feed.Inform(textPending)
	}
	s.deps.Loop.Post(s.leave)
}

func (s *Screen) reconcile() {
	receipt, err := s.deps.Reconciler.RecordTopUp(s.ctx, wallet.TopUp{
		SessionID:   s.session.ID(),
		OrderID:     s.dest.OrderID,
		AmountCents: s.dest.AmountCents,
		Outcome:     payment.StateSucceeded.String(),
	})
	if err != nil {
		if s.ctx.Err() != nil {
			return
		}
		s.logger.Error("top-up reconciliation failed", "error", err)
		s.feed.Fail(&navkit.FeatureError{
			Feature: "checkout",
			Op:      "record_top_up",
			Message: textReconcileFailed,
			Err:     err,
		})
	} else {
		s.logger.Info("top-up recorded", "transaction", receipt.TransactionID)
		s.feed.Succeed(textSucceeded)
	}
	s.deps.Loop.Post(s.leave)
}

// leave pops the checkout destination if it is still on top, then closes.
func (s *Screen) leave() {
	if s.closed {
		return
	}
	if top, ok := s.deps.Router.Top(); ok && top == router.Destination(s.dest) {
		s.deps.Router.Pop()
	}
	s.Close()
}
