package navkit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navkit/pkg/navkit/constants"
	"github.com/BrandonKowalski/navkit/pkg/navkit/payment"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "navkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "en", s.Locale)
	assert.Equal(t, constants.AddressLookupDebounce, s.Address.Debounce.Duration)
	assert.Zero(t, s.NotificationAutoDismiss.Duration)
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := writeSettings(t, `
locale = "es"
log_level = "debug"
notification_auto_dismiss = "4s"

[payment]
base_url = "https://shop.example/pay"
notification_url = "https://api.shop.example/webhooks/mp"
sandbox = true

[payment.prefixes]
cancel_prefix = "https://shop.example/abort"

[wallet]
base_url = "https://api.shop.example"
api_key = "k"

[address]
debounce = "800ms"
`)
	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "es", s.Locale)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 4*time.Second, s.NotificationAutoDismiss.Duration)
	assert.Equal(t, 800*time.Millisecond, s.Address.Debounce.Duration)
	assert.True(t, s.Payment.Sandbox)
	assert.Equal(t, "https://api.shop.example", s.Wallet.BaseURL)

	assert.Equal(t, payment.Config{
		SuccessPrefix:      "https://shop.example/pay/success",
		FailurePrefix:      "https://shop.example/pay/failure",
		CancelPrefix:       "https://shop.example/abort",
		NotificationPrefix: "https://shop.example/pay/notification",
	}, s.PaymentConfig())
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	path := writeSettings(t, `
locale = "es"

[wallet]
base_url = "https://file.example"
`)
	t.Setenv(constants.LocaleEnvVar, "en")
	t.Setenv(constants.WalletBaseURLEnvVar, "https://env.example")
	t.Setenv(constants.MPAccessTokenEnvVar, "TEST-token")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "en", s.Locale)
	assert.Equal(t, "https://env.example", s.Wallet.BaseURL)
	assert.Equal(t, "TEST-token", s.Payment.AccessToken)
}

func TestLoadSettingsSandboxEnv(t *testing.T) {
	path := writeSettings(t, `
[payment]
sandbox = true
`)
	t.Setenv(constants.EnvironmentEnvVar, "")
	t.Setenv(constants.MPSandboxEnvVar, "false")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.False(t, s.Payment.Sandbox)

	t.Setenv(constants.MPSandboxEnvVar, "true")
	s, err = LoadSettings(writeSettings(t, ""))
	require.NoError(t, err)
	assert.True(t, s.Payment.Sandbox)
}

func TestLoadSettingsRejectsBadFile(t *testing.T) {
	tests := map[string]string{
		"syntax":   `locale = `,
		"duration": `notification_auto_dismiss = "soon"`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSettings(writeSettings(t, body))
			assert.Error(t, err)
		})
	}
}

func TestPaymentConfigEmptyIsInvalid(t *testing.T) {
	s := DefaultSettings()
	err := s.PaymentConfig().Validate()

	var perr *payment.PrefixError
	assert.ErrorAs(t, err, &perr)
}
