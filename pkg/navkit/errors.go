package navkit

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/navkit/pkg/navkit/payment"
)

// Sentinel errors for common conditions.
var (
	// ErrCancelled indicates the user dismissed a popup or navigated back.
	// This is normal flow control and is never surfaced.
	ErrCancelled = errors.New("operation cancelled by user")

	// ErrMalformedSessionConfig indicates a payment session whose return
	// prefixes are all unusable. The session stays pending.
	ErrMalformedSessionConfig = payment.ErrMalformedSessionConfig
)

// FeatureError is a failed asynchronous feature operation. It is shown to
// the user as an error notification; retrying is the feature's job.
type FeatureError struct {
	Feature string // Feature that failed (e.g., "cart", "reminders")
	Op      string // Operation that failed (e.g., "delete_item")
	Message string // Text shown to the user; empty shows Error()
	Err     error  // Underlying error
}

func (e *FeatureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Feature, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Feature, e.Op)
}

func (e *FeatureError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text the alert bridge shows.
func (e *FeatureError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error()
}

// NewFeatureError creates a new feature error.
func NewFeatureError(feature, op string, err error) *FeatureError {
	return &FeatureError{Feature: feature, Op: op, Err: err}
}

// IsFeatureError checks if an error is a feature error.
func IsFeatureError(err error) bool {
	var featureErr *FeatureError
	return errors.As(err, &featureErr)
}

// IsCancelled checks if an error indicates user cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
