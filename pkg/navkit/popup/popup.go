// Package popup models the two overlay channels every screen shares: action
// popups (confirmations that need an answer) and notification popups
// (toast-like success, error and info messages).
//
// Both kinds are closed unions. Use MatchAction and MatchNotification to
// branch on the variant; each takes one handler per variant, so adding a
// variant breaks every call site at compile time.
package popup

import "fmt"

// Severity classifies a notification.
type Severity int

const (
	SeverityUnspecified Severity = iota // Treated as SeverityError
	SeveritySuccess
	SeverityError
	SeverityInfo
)

// Resolve maps SeverityUnspecified to SeverityError.
func (s Severity) Resolve() Severity {
	switch s {
	case SeveritySuccess, SeverityError, SeverityInfo:
		return s
	default:
		return SeverityError
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityUnspecified:
		return "unspecified"
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ActionContent is shared by every action popup variant.
type ActionContent struct {
	ID             string // Assigned by the controller when empty
	Title          string
	Message        string
	Item           any    // Optional item the action applies to
	PrimaryLabel   string // Defaults to the localized "OK"
	SecondaryLabel string // Defaults to the localized "Cancel"
	OnSecondary    func() // Called when the popup is dismissed
	HideIcon       bool
	HideCancel     bool
}

// ActionPopup is a confirmation overlay. Implemented by Confirmation and
// InputConfirmation only.
type ActionPopup interface {
	Content() ActionContent
	actionPopup()
}

// Confirmation asks the user to confirm or cancel.
type Confirmation struct {
	ActionContent
	OnPrimary func()
}

// InputConfirmation asks the user for a line of text before confirming.
type InputConfirmation struct {
	ActionContent
	Placeholder string
	OnPrimary   func(input string)
}

func (c Confirmation) Content() ActionContent      { return c.ActionContent }
func (c InputConfirmation) Content() ActionContent { return c.ActionContent }

func (Confirmation) actionPopup()      {}
func (InputConfirmation) actionPopup() {}

// MatchAction calls the handler for p's variant. A nil p yields the zero T.
func MatchAction[T any](p ActionPopup, confirmation func(Confirmation) T, input func(InputConfirmation) T) T {
	switch v := p.(type) {
	case Confirmation:
		return confirmation(v)
	case InputConfirmation:
		return input(v)
	}
	var zero T
	return zero
}

// NotificationContent is shared by every notification variant.
type NotificationContent struct {
	ID      string // Assigned by the controller when empty
	Title   string // Defaults to the localized severity name
	Message string
}

// NotificationPopup is a toast-like overlay. Implemented by Success, Error
// and Info only.
type NotificationPopup interface {
	Content() NotificationContent
	Severity() Severity
	notificationPopup()
}

// Success reports a completed operation.
type Success struct{ NotificationContent }

// Error reports a failed operation.
type Error struct{ NotificationContent }

// Info reports something neutral.
type Info struct{ NotificationContent }

func (n Success) Content() NotificationContent { return n.NotificationContent }
func (n Error) Content() NotificationContent   { return n.NotificationContent }
func (n Info) Content() NotificationContent    { return n.NotificationContent }

func (Success) Severity() Severity { return SeveritySuccess }
func (Error) Severity() Severity   { return SeverityError }
func (Info) Severity() Severity    { return SeverityInfo }

func (Success) notificationPopup() {}
func (Error) notificationPopup()   {}
func (Info) notificationPopup()    {}

// NewNotification builds the variant matching sev. Unspecified severity
// builds an Error.
func NewNotification(sev Severity, title, message string) NotificationPopup {
	content := NotificationContent{Title: title, Message: message}
	switch sev.Resolve() {
	case SeveritySuccess:
		return Success{content}
	case SeverityInfo:
		return Info{content}
	default:
		return Error{content}
	}
}

// MatchNotification calls the handler for p's variant. A nil p yields the
// zero T.
func MatchNotification[T any](p NotificationPopup, success func(Success) T, failure func(Error) T, info func(Info) T) T {
	switch v := p.(type) {
	case Success:
		return success(v)
	case Error:
		return failure(v)
	case Info:
		return info(v)
	}
	var zero T
	return zero
}
