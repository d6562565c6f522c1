package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// ErrGateway wraps failures talking to the payment provider.
var ErrGateway = errors.New("payment: gateway error")

// Order is what the checkout screen is paying for.
type Order struct {
	Reference   string // Merchant-side order or top-up ID
	Title       string
	Description string
	AmountCents int64
	Currency    string // ISO 4217, defaults to ARS
	PayerEmail  string
}

// Preference is a created checkout page.
type Preference struct {
	ID  string
	URL string // First page the embedded browser loads
}

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// Launcher creates Mercado Pago Checkout Pro preferences whose back URLs are
// a session's return prefixes, so the provider's redirects land on them.
type Launcher struct {
	client          preferenceCreator
	cfg             Config
	notificationURL string
	sandbox         bool
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithNotificationURL sets the server webhook the provider notifies.
func WithNotificationURL(u string) LauncherOption {
	return func(l *Launcher) {
		l.notificationURL = u
	}
}

// WithSandbox makes the launcher return sandbox checkout pages.
func WithSandbox(sandbox bool) LauncherOption {
	return func(l *Launcher) {
		l.sandbox = sandbox
	}
}

// NewLauncher creates a launcher for the given access token.
func NewLauncher(accessToken string, cfg Config, opts ...LauncherOption) (*Launcher, error) {
	mpCfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: config: %v", ErrGateway, err)
	}
	return newLauncher(preference.NewClient(mpCfg), cfg, opts...), nil
}

func newLauncher(client preferenceCreator, cfg Config, opts ...LauncherOption) *Launcher {
	l := &Launcher{client: client, cfg: cfg}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Create registers the order with the provider. The provider has no cancel
// return URL; its pending redirect maps to the notification prefix because
// a pending payment is settled by a later server notification.
func (l *Launcher) Create(ctx context.Context, order Order) (*Preference, error) {
	if order.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrGateway)
	}
	if err := l.cfg.Validate(); err != nil {
		return nil, err
	}
	currency := order.Currency
	if currency == "" {
		currency = "ARS"
	}

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:       order.Title,
				Description: order.Description,
				Quantity:    1,
				UnitPrice:   float64(order.AmountCents) / 100,
				CurrencyID:  currency,
			},
		},
		ExternalReference: order.Reference,
		AutoReturn:        "approved",
		BackURLs: &preference.BackURLsRequest{
			Success: l.cfg.SuccessPrefix,
			Failure: l.cfg.FailurePrefix,
			Pending: l.cfg.NotificationPrefix,
		},
		NotificationURL: l.notificationURL,
	}
	if order.PayerEmail != "" {
		req.Payer = &preference.PayerRequest{Email: order.PayerEmail}
	}

	res, err := l.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: create preference: %v", ErrGateway, err)
	}

	url := res.InitPoint
	if l.sandbox {
		url = res.SandboxInitPoint
	}
	return &Preference{ID: res.ID, URL: url}, nil
}
