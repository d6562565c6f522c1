package payment

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/BrandonKowalski/navkit/pkg/navkit/constants"
)

// ErrMalformedSessionConfig means none of the configured prefixes is a
// well-formed absolute URL. Such a session stays pending forever.
var ErrMalformedSessionConfig = errors.New("payment: no well-formed return prefix configured")

// Config holds the return URL prefixes the payment page redirects to.
// They are signals, never pages: a navigation matching one of them ends the
// session and is not followed.
type Config struct {
	SuccessPrefix      string `toml:"success_prefix"`
	FailurePrefix      string `toml:"failure_prefix"`
	CancelPrefix       string `toml:"cancel_prefix"`
	NotificationPrefix string `toml:"notification_prefix"`
}

// ConfigFromBase derives the four prefixes from a merchant base URL, e.g.
// "https://pay.example/return" gives "https://pay.example/return/success".
func ConfigFromBase(base string) Config {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	return Config{
		SuccessPrefix:      base + constants.PaymentSuccessPath,
		FailurePrefix:      base + constants.PaymentFailurePath,
		CancelPrefix:       base + constants.PaymentCancelPath,
		NotificationPrefix: base + constants.PaymentNotificationPath,
	}
}

// PrefixError reports one malformed prefix.
type PrefixError struct {
	Outcome State
	Prefix  string
	Err     error
}

func (e *PrefixError) Error() string {
	return fmt.Sprintf("payment: %s prefix %q: %v", e.Outcome, e.Prefix, e.Err)
}

func (e *PrefixError) Unwrap() error {
	return e.Err
}

// Validate returns one PrefixError per malformed prefix, joined, or nil.
func (c Config) Validate() error {
	var errs []error
	for _, r := range c.rules() {
		if _, err := normalize(r.prefix); err != nil {
			errs = append(errs, &PrefixError{Outcome: r.outcome, Prefix: r.prefix, Err: err})
		}
	}
	return errors.Join(errs...)
}

type rule struct {
	outcome State
	prefix  string
}

// rules lists the prefixes in match priority order.
func (c Config) rules() []rule {
	return []rule{
		{StateSucceeded, c.SuccessPrefix},
		{StateFailed, c.FailurePrefix},
		{StateCancelled, c.CancelPrefix},
		{StateNotificationReceived, c.NotificationPrefix},
	}
}

var errNotAbsolute = errors.New("not an absolute URL")

// normalize canonicalizes an absolute URL for prefix comparison: scheme and
// host are lower-cased, default ports and fragments are dropped.
func normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errNotAbsolute
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errNotAbsolute
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	switch {
	case u.Scheme == "https" && u.Port() == "443",
		u.Scheme == "http" && u.Port() == "80":
		u.Host = u.Hostname()
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

// fold trims raw, drops any fragment and lower-cases the scheme and host
// without parsing the rest. Text without a "://" separator is returned
// trimmed.
func fold(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	sep := strings.Index(raw, "://")
	if sep < 0 {
		return raw
	}
	end := len(raw)
	if i := strings.IndexAny(raw[sep+3:], "/?"); i >= 0 {
		end = sep + 3 + i
	}
	return strings.ToLower(raw[:end]) + raw[end:]
}
