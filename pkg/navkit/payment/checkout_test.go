package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	got preference.Request
	err error
}

func (f *fakeCreator) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &preference.Response{
		ID:               "pref-1",
		InitPoint:        "https://www.mercadopago.com/checkout?pref_id=pref-1",
		SandboxInitPoint: "https://sandbox.mercadopago.com/checkout?pref_id=pref-1",
	}, nil
}

func TestLauncherCreate(t *testing.T) {
	fake := &fakeCreator{}
	l := newLauncher(fake, testConfig, WithNotificationURL("https://api.example/webhooks/mp"))

	pref, err := l.Create(context.Background(), Order{
		Reference:   "topup-42",
		Title:       "Wallet top-up",
		AmountCents: 12550,
		PayerEmail:  "ana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "pref-1", pref.ID)
	assert.Equal(t, "https://www.mercadopago.com/checkout?pref_id=pref-1", pref.URL)

	require.Len(t, fake.got.Items, 1)
	assert.InDelta(t, 125.50, fake.got.Items[0].UnitPrice, 0.001)
	assert.Equal(t, "ARS", fake.got.Items[0].CurrencyID)
	assert.Equal(t, "topup-42", fake.got.ExternalReference)
	require.NotNil(t, fake.got.BackURLs)
	assert.Equal(t, testConfig.SuccessPrefix, fake.got.BackURLs.Success)
	assert.Equal(t, testConfig.FailurePrefix, fake.got.BackURLs.Failure)
	assert.Equal(t, testConfig.NotificationPrefix, fake.got.BackURLs.Pending)
	assert.Equal(t, "https://api.example/webhooks/mp", fake.got.NotificationURL)
	require.NotNil(t, fake.got.Payer)
	assert.Equal(t, "ana@example.com", fake.got.Payer.Email)
}

func TestLauncherSandbox(t *testing.T) {
	l := newLauncher(&fakeCreator{}, testConfig, WithSandbox(true))
	pref, err := l.Create(context.Background(), Order{Reference: "o", AmountCents: 100})
	require.NoError(t, err)
	assert.Contains(t, pref.URL, "sandbox")
}

func TestLauncherErrors(t *testing.T) {
	l := newLauncher(&fakeCreator{err: errors.New("401")}, testConfig)
	_, err := l.Create(context.Background(), Order{AmountCents: 100})
	assert.ErrorIs(t, err, ErrGateway)

	_, err = l.Create(context.Background(), Order{AmountCents: 0})
	assert.ErrorIs(t, err, ErrGateway)

	bad := newLauncher(&fakeCreator{}, Config{SuccessPrefix: "nope"})
	_, err = bad.Create(context.Background(), Order{AmountCents: 100})
	var perr *PrefixError
	assert.ErrorAs(t, err, &perr)
}
