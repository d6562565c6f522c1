package navkit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/navkit/pkg/navkit/constants"
	"github.com/BrandonKowalski/navkit/pkg/navkit/payment"
)

// Settings is the app-shell configuration, read from a TOML file and
// overridden by environment variables.
//
//	locale = "es-AR"
//	log_level = "info"
//	log_path = "logs/navkit.log"
//	notification_auto_dismiss = "4s"
//
//	[payment]
//	base_url = "https://shop.example/pay"
//	notification_url = "https://api.shop.example/webhooks/mp"
//	sandbox = true
//
//	[wallet]
//	base_url = "https://api.shop.example"
//
//	[address]
//	debounce = "1.5s"
type Settings struct {
	Locale                  string   `toml:"locale"`
	LogLevel                string   `toml:"log_level"`
	LogPath                 string   `toml:"log_path"`
	NotificationAutoDismiss Duration `toml:"notification_auto_dismiss"`

	Payment PaymentSettings `toml:"payment"`
	Wallet  WalletSettings  `toml:"wallet"`
	Address AddressSettings `toml:"address"`
}

// PaymentSettings configures checkout sessions.
type PaymentSettings struct {
	// BaseURL derives all four return prefixes. Explicit prefixes in
	// Prefixes take precedence.
	BaseURL         string         `toml:"base_url"`
	Prefixes        payment.Config `toml:"prefixes"`
	NotificationURL string         `toml:"notification_url"`
	AccessToken     string         `toml:"access_token"`
	Sandbox         bool           `toml:"sandbox"`
}

// WalletSettings configures the reconciliation client.
type WalletSettings struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// AddressSettings configures the map address picker.
type AddressSettings struct {
	Debounce Duration `toml:"debounce"`
}

// Duration decodes TOML strings like "1.5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Locale:                  "en",
		LogLevel:                "info",
		NotificationAutoDismiss: Duration{constants.NotificationAutoDismiss},
		Address:                 AddressSettings{Debounce: Duration{constants.AddressLookupDebounce}},
	}
}

// LoadSettings reads path (a missing file is not an error) and applies
// environment overrides.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		if _, err := toml.DecodeFile(path, &s); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, fmt.Errorf("navkit: settings %s: %w", path, err)
		}
	}
	s.applyEnv()
	return s, nil
}

func (s *Settings) applyEnv() {
	s.Locale = getEnv(constants.LocaleEnvVar, s.Locale)
	s.LogLevel = getEnv(constants.LogLevelEnvVar, s.LogLevel)
	s.Payment.BaseURL = getEnv(constants.PaymentBaseURLEnvVar, s.Payment.BaseURL)
	s.Payment.AccessToken = getEnv(constants.MPAccessTokenEnvVar, s.Payment.AccessToken)
	s.Payment.Sandbox = getEnvBool(constants.MPSandboxEnvVar, s.Payment.Sandbox || constants.IsDevMode())
	s.Wallet.BaseURL = getEnv(constants.WalletBaseURLEnvVar, s.Wallet.BaseURL)
	s.Wallet.APIKey = getEnv(constants.WalletAPIKeyEnvVar, s.Wallet.APIKey)
}

// PaymentConfig resolves the return prefixes: explicit prefixes win, the
// rest are derived from BaseURL.
func (s Settings) PaymentConfig() payment.Config {
	cfg := payment.Config{}
	if s.Payment.BaseURL != "" {
		cfg = payment.ConfigFromBase(s.Payment.BaseURL)
	}
	p := s.Payment.Prefixes
	if p.SuccessPrefix != "" {
		cfg.SuccessPrefix = p.SuccessPrefix
	}
	if p.FailurePrefix != "" {
		cfg.FailurePrefix = p.FailurePrefix
	}
	if p.CancelPrefix != "" {
		cfg.CancelPrefix = p.CancelPrefix
	}
	if p.NotificationPrefix != "" {
		cfg.NotificationPrefix = p.NotificationPrefix
	}
	return cfg
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as a boolean with a fallback.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
