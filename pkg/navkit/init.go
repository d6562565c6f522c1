// Package navkit is the navigation and overlay engine of the shopping app
// shell. It owns the serialized dispatch loop, the router, the popup
// controller and the shell-scoped clients that feature screens share.
//
// Subpackages hold the individual pieces: router, popup, alert, payment,
// checkout, address, debounce and wallet. Init wires them together.
package navkit

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/BrandonKowalski/navkit/pkg/navkit/address"
	"github.com/BrandonKowalski/navkit/pkg/navkit/constants"
	"github.com/BrandonKowalski/navkit/pkg/navkit/dispatch"
	"github.com/BrandonKowalski/navkit/pkg/navkit/internal"
	"github.com/BrandonKowalski/navkit/pkg/navkit/internal/locale"
	"github.com/BrandonKowalski/navkit/pkg/navkit/payment"
	"github.com/BrandonKowalski/navkit/pkg/navkit/popup"
	"github.com/BrandonKowalski/navkit/pkg/navkit/router"
	"github.com/BrandonKowalski/navkit/pkg/navkit/wallet"
)

// Options configures engine initialization.
type Options struct {
	ConfigPath string       // Path to a TOML settings file; empty uses NAVKIT_CONFIG or navkit.toml
	LogPath    string       // Full path for the log file; overrides the settings file
	LogLevel   string       // Application log level; overrides the settings file
	Locale     string       // Label language (e.g., "es"); overrides the settings file
	InitialTab router.Tab   // Tab selected at startup
	QueueSize  int          // Dispatch loop queue length; zero uses the default
	Settings   *Settings    // Pre-built settings; skips file loading when set
	Logger     *slog.Logger // Engine logger; nil uses the internal JSON logger
}

// Shell is an initialized engine instance.
type Shell struct {
	settings Settings
	logger   *slog.Logger

	loop   *dispatch.Loop
	router *router.Router
	popups *popup.Controller

	wallet   *wallet.Client
	launcher *payment.Launcher
}

// Init loads settings, configures logging and builds the loop, router and
// popup controller. Call Run to start processing.
func Init(options Options) (*Shell, error) {
	settings, err := resolveSettings(options)
	if err != nil {
		return nil, err
	}

	if options.LogPath != "" {
		settings.LogPath = options.LogPath
	}
	if options.LogLevel != "" {
		settings.LogLevel = options.LogLevel
	}
	if options.Locale != "" {
		settings.Locale = options.Locale
	}

	if settings.LogPath != "" {
		internal.SetLogPath(settings.LogPath)
	}
	internal.SetRawLogLevel(settings.LogLevel)
	if os.Getenv(constants.EngineDebugEnvVar) != "" {
		internal.SetInternalLogLevel(slog.LevelDebug)
	}

	logger := options.Logger
	if logger == nil {
		logger = internal.GetInternalLogger()
	}

	labels, err := locale.New(settings.Locale)
	if err != nil {
		// Fall back to built-in English labels.
		logger.Warn("Failed to load locale", "locale", settings.Locale, "error", err)
	}

	queueSize := options.QueueSize
	if queueSize <= 0 {
		queueSize = constants.DefaultLoopQueueSize
	}
	loop := dispatch.New(dispatch.WithQueueSize(queueSize), dispatch.WithLogger(logger))

	popupOpts := []popup.Option{popup.WithLabels(labels), popup.WithLogger(logger)}
	if d := settings.NotificationAutoDismiss.Duration; d > 0 {
		popupOpts = append(popupOpts, popup.WithAutoDismiss(d, loop))
	}

	s := &Shell{
		settings: settings,
		logger:   logger,
		loop:     loop,
		router:   router.New(router.WithLogger(logger), router.WithTab(options.InitialTab)),
		popups:   popup.NewController(popupOpts...),
	}

	if settings.Wallet.BaseURL != "" {
		s.wallet = wallet.NewClient(settings.Wallet.BaseURL, settings.Wallet.APIKey)
	}

	if settings.Payment.AccessToken != "" {
		var launcherOpts []payment.LauncherOption
		if settings.Payment.NotificationURL != "" {
			launcherOpts = append(launcherOpts, payment.WithNotificationURL(settings.Payment.NotificationURL))
		}
		launcherOpts = append(launcherOpts, payment.WithSandbox(settings.Payment.Sandbox))

		s.launcher, err = payment.NewLauncher(settings.Payment.AccessToken, settings.PaymentConfig(), launcherOpts...)
		if err != nil {
			return nil, fmt.Errorf("navkit: payment gateway: %w", err)
		}
	}

	logger.Debug("Shell initialized",
		"locale", settings.Locale,
		"tab", s.router.Tab().String(),
		"wallet", s.wallet != nil,
		"payments", s.launcher != nil)

	return s, nil
}

func resolveSettings(options Options) (Settings, error) {
	if options.Settings != nil {
		return *options.Settings, nil
	}
	path := options.ConfigPath
	if path == "" {
		path = getEnv(constants.ConfigPathEnvVar, constants.DefaultConfigFilename)
	}
	return LoadSettings(path)
}

// Run processes loop work until ctx is cancelled or Close is called.
func (s *Shell) Run(ctx context.Context) error {
	return s.loop.Run(ctx)
}

// Close stops the loop and flushes the log file.
func (s *Shell) Close() {
	s.loop.Stop()
	internal.CloseLogger()
}

// Loop is the serialized execution context. Router and popup state may only
// be touched from functions it runs.
func (s *Shell) Loop() *dispatch.Loop {
	return s.loop
}

func (s *Shell) Router() *router.Router {
	return s.router
}

func (s *Shell) Popups() *popup.Controller {
	return s.popups
}

func (s *Shell) Settings() Settings {
	return s.settings
}

// PaymentConfig returns the return prefixes checkout sessions classify with.
func (s *Shell) PaymentConfig() payment.Config {
	return s.settings.PaymentConfig()
}

// Wallet returns the reconciliation client, or nil when no wallet URL is
// configured.
func (s *Shell) Wallet() *wallet.Client {
	return s.wallet
}

// Launcher returns the payment gateway client, or nil when no access token
// is configured.
func (s *Shell) Launcher() *payment.Launcher {
	return s.launcher
}

// NewAddressPicker builds a map address picker bound to the shell's loop and
// configured debounce window.
func (s *Shell) NewAddressPicker(geocoder address.Geocoder) *address.Picker {
	window := s.settings.Address.Debounce.Duration
	if window <= 0 {
		window = constants.AddressLookupDebounce
	}
	return address.NewPicker(s.loop, geocoder,
		address.WithWindow(window),
		address.WithLogger(s.logger))
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
