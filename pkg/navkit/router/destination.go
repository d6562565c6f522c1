package router

import "fmt"

// Kind identifies a Destination's screen.
type Kind int

const (
	KindProductDetail Kind = iota
	KindStoreDetail
	KindCart
	KindCheckout
	KindOrderDetail
	KindReminders
	KindReminderDetail
	KindAddressPicker
	KindWalletTopUp
	KindSettings
)

func (k Kind) String() string {
	switch k {
	case KindProductDetail:
		return "ProductDetail"
	case KindStoreDetail:
		return "StoreDetail"
	case KindCart:
		return "Cart"
	case KindCheckout:
		return "Checkout"
	case KindOrderDetail:
		return "OrderDetail"
	case KindReminders:
		return "Reminders"
	case KindReminderDetail:
		return "ReminderDetail"
	case KindAddressPicker:
		return "AddressPicker"
	case KindWalletTopUp:
		return "WalletTopUp"
	case KindSettings:
		return "Settings"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Destination is a navigable screen target. The set is closed: only the
// types in this file implement it. Values are comparable, so two pushes of
// the same destination compare equal but still occupy two stack entries.
type Destination interface {
	Kind() Kind
	destination()
}

// ProductDetail shows a single product.
type ProductDetail struct {
	ProductID string
}

// StoreDetail shows a store and its catalogue.
type StoreDetail struct {
	StoreID string
}

// Cart shows the current cart.
type Cart struct{}

// Checkout hosts the embedded payment browser for an order.
type Checkout struct {
	OrderID     string
	AmountCents int64
}

// OrderDetail shows a placed order.
type OrderDetail struct {
	OrderID string
}

// Reminders lists the user's reminders.
type Reminders struct{}

// ReminderDetail shows one reminder.
type ReminderDetail struct {
	ReminderID string
}

// AddressPicker opens the map centred on an initial coordinate.
type AddressPicker struct {
	Latitude  float64
	Longitude float64
}

// WalletTopUp starts a wallet top-up for the given amount.
type WalletTopUp struct {
	AmountCents int64
}

// Settings shows the settings screen.
type Settings struct{}

func (ProductDetail) Kind() Kind  { return KindProductDetail }
func (StoreDetail) Kind() Kind    { return KindStoreDetail }
func (Cart) Kind() Kind           { return KindCart }
func (Checkout) Kind() Kind       { return KindCheckout }
func (OrderDetail) Kind() Kind    { return KindOrderDetail }
func (Reminders) Kind() Kind      { return KindReminders }
func (ReminderDetail) Kind() Kind { return KindReminderDetail }
func (AddressPicker) Kind() Kind  { return KindAddressPicker }
func (WalletTopUp) Kind() Kind    { return KindWalletTopUp }
func (Settings) Kind() Kind       { return KindSettings }

func (ProductDetail) destination()  {}
func (StoreDetail) destination()    {}
func (Cart) destination()           {}
func (Checkout) destination()       {}
func (OrderDetail) destination()    {}
func (Reminders) destination()      {}
func (ReminderDetail) destination() {}
func (AddressPicker) destination()  {}
func (WalletTopUp) destination()    {}
func (Settings) destination()       {}

// Tab is a top-level section of the app. The active tab's home screen is the
// implicit root under the navigation stack.
type Tab int

const (
	TabHome Tab = iota
	TabOrders
	TabWallet
	TabProfile
)

func (t Tab) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabOrders:
		return "Orders"
	case TabWallet:
		return "Wallet"
	case TabProfile:
		return "Profile"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}
