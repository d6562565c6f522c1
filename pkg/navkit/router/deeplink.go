package router

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DeepLinkScheme is the URL scheme the app registers for deep links.
const DeepLinkScheme = "app"

// ErrUnknownDeepLink is returned for links that do not name a destination.
var ErrUnknownDeepLink = errors.New("router: unknown deep link")

// ParseDeepLink maps a deep link to the tab it belongs to and the single
// destination to reset to. Supported forms:
//
//	app://product/<id>
//	app://store/<id>
//	app://order/<id>
//	app://reminder/<id>
//	app://wallet/topup?amount=<cents>
//	app://cart
func ParseDeepLink(raw string) (Tab, Destination, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return TabHome, nil, fmt.Errorf("%w: %v", ErrUnknownDeepLink, err)
	}
	if !strings.EqualFold(u.Scheme, DeepLinkScheme) {
		return TabHome, nil, fmt.Errorf("%w: scheme %q", ErrUnknownDeepLink, u.Scheme)
	}

	id := strings.Trim(u.Path, "/")
	switch strings.ToLower(u.Host) {
	case "product":
		if id == "" {
			break
		}
		return TabHome, ProductDetail{ProductID: id}, nil
	case "store":
		if id == "" {
			break
		}
		return TabHome, StoreDetail{StoreID: id}, nil
	case "cart":
		return TabHome, Cart{}, nil
	case "order":
		if id == "" {
			break
		}
		return TabOrders, OrderDetail{OrderID: id}, nil
	case "reminder":
		if id == "" {
			return TabProfile, Reminders{}, nil
		}
		return TabProfile, ReminderDetail{ReminderID: id}, nil
	case "wallet":
		if id != "topup" {
			break
		}
		amount, err := strconv.ParseInt(u.Query().Get("amount"), 10, 64)
		if err != nil || amount <= 0 {
			return TabWallet, nil, fmt.Errorf("%w: bad amount %q", ErrUnknownDeepLink, u.Query().Get("amount"))
		}
		return TabWallet, WalletTopUp{AmountCents: amount}, nil
	}
	return TabHome, nil, fmt.Errorf("%w: %s", ErrUnknownDeepLink, raw)
}

// Open follows a deep link: it selects the link's tab and resets the stack
// to the linked destination. On error the navigation state is unchanged.
func (r *Router) Open(raw string) error {
	tab, d, err := ParseDeepLink(raw)
	if err != nil {
		r.logger.Warn("ignoring deep link", "link", raw, "error", err)
		return err
	}
	r.tab = tab
	r.Reset(d)
	return nil
}
