package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/navkit/pkg/navkit"
	"github.com/BrandonKowalski/navkit/pkg/navkit/address"
	"github.com/BrandonKowalski/navkit/pkg/navkit/alert"
	"github.com/BrandonKowalski/navkit/pkg/navkit/checkout"
	"github.com/BrandonKowalski/navkit/pkg/navkit/payment"
	"github.com/BrandonKowalski/navkit/pkg/navkit/popup"
	"github.com/BrandonKowalski/navkit/pkg/navkit/router"
	"github.com/BrandonKowalski/navkit/pkg/navkit/wallet"
)

const (
	demoReturnBase  = "https://shop.example/pay"
	demoPaymentPage = "https://www.mercadopago.com.ar/checkout/v1/redirect?pref_id=demo"
	demoWalletLink  = "app://wallet/topup?amount=2500"
)

// snapshot is the engine state the view renders. It is built on the loop
// and only read by the UI afterwards.
type snapshot struct {
	tab          router.Tab
	path         []router.Destination
	action       popup.ActionPopup
	notification popup.NotificationPopup
	payment      string
	pin          address.Coordinate
	address      string
}

// app owns the demo's screens. Methods other than touch and changes must
// run on the loop.
type app struct {
	ctx    context.Context
	shell  *navkit.Shell
	logger *slog.Logger

	home       *alert.Feed
	homeBridge *alert.Bridge

	screen *checkout.Screen

	picker       *address.Picker
	pickerBridge *alert.Bridge
	pin          address.Coordinate

	wallet  checkout.Reconciler
	payment payment.Config
	seq     int

	dirty chan struct{}
}

func newApp(ctx context.Context, shell *navkit.Shell, logger *slog.Logger) (*app, error) {
	a := &app{
		ctx:     ctx,
		shell:   shell,
		logger:  logger,
		home:    alert.NewFeed(),
		payment: shell.PaymentConfig(),
		pin:     address.Coordinate{Latitude: -34.603722, Longitude: -58.381592},
		dirty:   make(chan struct{}, 1),
	}
	if shell.Settings().Payment.BaseURL == "" && a.payment.Validate() != nil {
		a.payment = payment.ConfigFromBase(demoReturnBase)
	}

	if c := shell.Wallet(); c != nil {
		a.wallet = c
	} else {
		a.wallet = demoWallet{}
	}

	err := shell.Loop().Do(ctx, func() {
		a.homeBridge = alert.NewBridge(shell.Loop(), shell.Popups(), alert.WithName("home"), alert.WithBridgeLogger(logger))
		a.homeBridge.Attach(a.home)
		shell.Router().Observe(func(router.Change) {
			a.closeStaleScreens()
			a.touch()
		})
		shell.Popups().Observe(func(popup.State) { a.touch() })
	})
	return a, err
}

// touch marks the snapshot stale. Safe from any goroutine.
func (a *app) touch() {
	select {
	case a.dirty <- struct{}{}:
	default:
	}
}

// changes signals after the engine state changed.
func (a *app) changes() <-chan struct{} {
	return a.dirty
}

func (a *app) snapshot() snapshot {
	r := a.shell.Router()
	s := snapshot{
		tab:          r.Tab(),
		path:         r.Path(),
		action:       a.shell.Popups().Action(),
		notification: a.shell.Popups().Notification(),
		pin:          a.pin,
	}
	if a.screen != nil {
		sess := a.screen.Session()
		s.payment = sess.State().String()
		if sess.Loading() {
			s.payment += " (loading)"
		}
	}
	if a.picker != nil {
		if addr, ok := a.picker.Address(); ok {
			s.address = addr.Line
		} else {
			s.address = "resolving..."
		}
	}
	return s
}

func (a *app) push(d router.Destination) {
	a.shell.Router().Push(d)
}

func (a *app) back() {
	if a.shell.Popups().Action() != nil {
		a.shell.Popups().Dismiss()
		return
	}
	a.shell.Router().Pop()
}

func (a *app) nextID(prefix string) string {
	a.seq++
	return fmt.Sprintf("%s-%d", prefix, a.seq)
}

func (a *app) confirmRemoval() {
	item := a.nextID("item")
	a.shell.Popups().OpenAction(popup.Confirmation{
		ActionContent: popup.ActionContent{
			Title:   "Remove item?",
			Message: fmt.Sprintf("%s will be removed from your cart.", item),
			Item:    item,
		},
		OnPrimary: func() { a.home.Succeed(fmt.Sprintf("Removed %s.", item)) },
	})
}

func (a *app) askReminderName() {
	a.shell.Popups().OpenAction(popup.InputConfirmation{
		ActionContent: popup.ActionContent{
			Title:   "New reminder",
			Message: "What should we remind you about?",
		},
		Placeholder: "Buy coffee",
		OnPrimary: func(text string) {
			if text == "" {
				text = a.nextID("reminder")
			}
			a.push(router.ReminderDetail{ReminderID: text})
		},
	})
}

func (a *app) failSync() {
	a.home.Fail(&navkit.FeatureError{
		Feature: "cart",
		Op:      "sync",
		Message: "Couldn't refresh your cart.",
		Err:     errors.New("connection reset by peer"),
	})
}

func (a *app) openDeepLink() {
	if err := a.shell.Router().Open(demoWalletLink); err != nil {
		a.home.Fail(navkit.NewFeatureError("deeplink", "open", err))
	}
}

// startCheckout pushes a checkout for a wallet top-up and drives a simulated
// browser to the given return path.
func (a *app) startCheckout(returnPath string, cfg payment.Config) {
	if a.screen != nil {
		return
	}
	dest := router.Checkout{OrderID: a.nextID("topup"), AmountCents: 2500}
	a.push(dest)

	a.screen = checkout.NewScreen(checkout.Deps{
		Loop:       a.shell.Loop(),
		Router:     a.shell.Router(),
		Popups:     a.shell.Popups(),
		Reconciler: a.wallet,
		Logger:     a.logger,
	}, dest, cfg)
	a.screen.Show()
	a.screen.Session().OnResult(func(payment.State) { a.touch() })

	go a.browse(a.screen.Session(), dest, cfg, returnPath)
}

// browse plays the embedded browser: load the payment page, then follow the
// gateway's redirect to the merchant return URL.
func (a *app) browse(sess *payment.Session, dest router.Checkout, cfg payment.Config, returnPath string) {
	page := demoPaymentPage
	if l := a.shell.Launcher(); l != nil {
		pref, err := l.Create(a.ctx, payment.Order{
			Reference:   dest.OrderID,
			Title:       "Wallet top-up",
			AmountCents: dest.AmountCents,
		})
		if err != nil {
			a.logger.Error("preference creation failed", "error", err)
		} else {
			page = pref.URL
		}
	}

	if _, err := sess.Navigate(a.ctx, page); err != nil {
		return
	}
	sess.PageLoaded()
	a.touch()

	select {
	case <-time.After(1500 * time.Millisecond):
	case <-a.ctx.Done():
		return
	}

	target := cfg.SuccessPrefix
	switch returnPath {
	case "failure":
		target = cfg.FailurePrefix
	case "cancel":
		target = cfg.CancelPrefix
	case "notification":
		target = cfg.NotificationPrefix
	}
	policy, err := sess.Navigate(a.ctx, target+"?payment_id=demo")
	if err != nil {
		return
	}
	a.logger.Debug("browser navigation decided", "url", target, "policy", policy)
	a.touch()
}

func (a *app) openPicker() {
	if a.picker != nil {
		return
	}
	a.push(router.AddressPicker{Latitude: a.pin.Latitude, Longitude: a.pin.Longitude})
	a.picker = a.shell.NewAddressPicker(demoGeocoder{})
	a.picker.OnResolved(func(address.Address) { a.touch() })
	a.pickerBridge = alert.NewBridge(a.shell.Loop(), a.shell.Popups(), alert.WithName("address"), alert.WithBridgeLogger(a.logger))
	a.pickerBridge.Attach(a.picker.Feed())
	a.picker.Move(a.pin)
}

func (a *app) movePin(dLat, dLng float64) {
	if a.picker == nil {
		return
	}
	a.pin.Latitude += dLat
	a.pin.Longitude += dLng
	a.picker.Move(a.pin)
}

// closeStaleScreens tears down screens whose destination left the top of
// the stack.
func (a *app) closeStaleScreens() {
	top, _ := a.shell.Router().Top()
	if a.screen != nil {
		if _, ok := top.(router.Checkout); !ok {
			a.screen.Close()
			a.screen = nil
		}
	}
	if a.picker != nil {
		if _, ok := top.(router.AddressPicker); !ok {
			a.pickerBridge.Detach()
			a.picker.Close()
			a.picker = nil
		}
	}
}

// demoWallet stands in for the wallet backend when none is configured.
type demoWallet struct{}

func (demoWallet) RecordTopUp(ctx context.Context, t wallet.TopUp) (*wallet.Receipt, error) {
	select {
	case <-time.After(300 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &wallet.Receipt{TransactionID: "tx-" + t.OrderID, BalanceCents: t.AmountCents}, nil
}

// demoGeocoder fails over water so lookup errors can be seen.
type demoGeocoder struct{}

func (demoGeocoder) Lookup(ctx context.Context, c address.Coordinate) (address.Address, error) {
	select {
	case <-time.After(200 * time.Millisecond):
	case <-ctx.Done():
		return address.Address{}, ctx.Err()
	}
	if c.Longitude > -58.37 {
		return address.Address{}, errors.New("no address here")
	}
	return address.Address{
		Line:       fmt.Sprintf("Calle %d", int(-c.Latitude*1000)%1000),
		City:       "Buenos Aires",
		Coordinate: c,
	}, nil
}
