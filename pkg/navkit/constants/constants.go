// Package constants defines shared constants and environment variable names
// used throughout navkit.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names.
const (
	EnvironmentEnvVar     = "ENVIRONMENT"
	ConfigPathEnvVar      = "NAVKIT_CONFIG"
	LogLevelEnvVar        = "NAVKIT_LOG_LEVEL"
	PaymentBaseURLEnvVar  = "NAVKIT_PAYMENT_BASE_URL"
	WalletBaseURLEnvVar   = "NAVKIT_WALLET_URL"
	WalletAPIKeyEnvVar    = "NAVKIT_WALLET_API_KEY"
	MPAccessTokenEnvVar   = "MP_ACCESS_TOKEN"
	MPSandboxEnvVar       = "MP_SANDBOX"
	LocaleEnvVar          = "NAVKIT_LOCALE"
	EngineDebugEnvVar     = "NAVKIT_DEBUG"
	DefaultConfigFilename = "navkit.toml"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Default timing constants.
const (
	AddressLookupDebounce   = 1500 * time.Millisecond // Map must rest this long before a reverse geocode
	AddressLookupTimeout    = 10 * time.Second
	WalletRequestTimeout    = 15 * time.Second
	DefaultLoopQueueSize    = 256
	NotificationAutoDismiss time.Duration = 0 // Zero keeps notifications until closed
)

// Payment return path suffixes appended to the merchant base URL.
const (
	PaymentSuccessPath      = "/success"
	PaymentFailurePath      = "/failure"
	PaymentCancelPath       = "/cancel"
	PaymentNotificationPath = "/notification"
)
