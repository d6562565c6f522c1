package popup_test

import (
	"fmt"

	"github.com/BrandonKowalski/navkit/pkg/navkit/popup"
)

// Example shows a delete confirmation alongside an independent notification.
func Example() {
	c := popup.NewController()

	c.OpenAction(popup.Confirmation{
		ActionContent: popup.ActionContent{
			Title:   "Delete reminder",
			Message: "This cannot be undone.",
			Item:    "reminder-7",
		},
		OnPrimary: func() {
			c.OpenNotification(popup.Success{NotificationContent: popup.NotificationContent{Message: "Reminder deleted"}})
		},
	})

	a := c.Action().Content()
	fmt.Println(a.Title, "|", a.PrimaryLabel, "/", a.SecondaryLabel)

	c.Confirm("")
	n := c.Notification().Content()
	fmt.Println(c.Action() == nil, n.Title+":", n.Message)

	// Output:
	// Delete reminder | OK / Cancel
	// true Success: Reminder deleted
}
