package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navkit/pkg/navkit/internal"
)

func newTestRouter() *Router {
	return New(WithLogger(internal.DiscardLogger()))
}

func TestPushRecordsVisitOrder(t *testing.T) {
	r := newTestRouter()
	want := []Destination{
		StoreDetail{StoreID: "s"},
		ProductDetail{ProductID: "a"},
		ProductDetail{ProductID: "a"},
		Cart{},
	}
	for _, d := range want {
		r.Push(d)
	}
	assert.Equal(t, want, r.Path())

	r.Pop()
	assert.Equal(t, want[:3], r.Path())
}

func TestPopOnEmptyIsNoop(t *testing.T) {
	r := newTestRouter()
	changes := 0
	r.Observe(func(Change) { changes++ })

	r.Pop()
	r.Pop()

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, changes)
}

func TestBackRevealsPrevious(t *testing.T) {
	r := newTestRouter()
	r.Push(Reminders{})
	r.Push(ReminderDetail{ReminderID: "1"})
	r.Push(ReminderDetail{ReminderID: "2"})

	r.Pop()
	top, ok := r.Top()
	require.True(t, ok)
	assert.Equal(t, ReminderDetail{ReminderID: "1"}, top)
}

func TestReset(t *testing.T) {
	r := newTestRouter()
	r.Push(Cart{})
	r.Push(Checkout{OrderID: "o", AmountCents: 10})

	r.Reset(OrderDetail{OrderID: "o"})
	assert.Equal(t, []Destination{OrderDetail{OrderID: "o"}}, r.Path())

	r.Reset(nil)
	assert.Empty(t, r.Path())
	_, ok := r.Top()
	assert.False(t, ok)
}

func TestSelectTabClearsStack(t *testing.T) {
	r := newTestRouter()
	r.Push(Cart{})
	r.SelectTab(TabWallet)

	assert.Equal(t, TabWallet, r.Tab())
	assert.Equal(t, 0, r.Len())
}

func TestObserve(t *testing.T) {
	r := newTestRouter()
	var got []Change
	cancel := r.Observe(func(c Change) { got = append(got, c) })

	r.Push(Cart{})
	r.Push(Settings{})
	cancel()
	r.Pop()

	require.Len(t, got, 2)
	assert.Equal(t, []Destination{Cart{}, Settings{}}, got[1].Path)
	assert.Equal(t, TabHome, got[1].Tab)
}

func TestObserverPathIsACopy(t *testing.T) {
	r := newTestRouter()
	var seen []Destination
	r.Observe(func(c Change) { seen = c.Path })

	r.Push(Cart{})
	seen[0] = Settings{}

	top, _ := r.Top()
	assert.Equal(t, Cart{}, top)
}

func TestParseDeepLink(t *testing.T) {
	tests := []struct {
		link string
		tab  Tab
		dest Destination
	}{
		{"app://product/p1", TabHome, ProductDetail{ProductID: "p1"}},
		{"APP://Store/s1", TabHome, StoreDetail{StoreID: "s1"}},
		{"app://cart", TabHome, Cart{}},
		{"app://order/o1", TabOrders, OrderDetail{OrderID: "o1"}},
		{"app://reminder", TabProfile, Reminders{}},
		{"app://reminder/r1", TabProfile, ReminderDetail{ReminderID: "r1"}},
		{"app://wallet/topup?amount=2500", TabWallet, WalletTopUp{AmountCents: 2500}},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			tab, d, err := ParseDeepLink(tt.link)
			require.NoError(t, err)
			assert.Equal(t, tt.tab, tab)
			assert.Equal(t, tt.dest, d)
		})
	}
}

func TestParseDeepLinkRejects(t *testing.T) {
	for _, link := range []string{
		"https://product/p1",
		"app://product",
		"app://wallet/topup?amount=-1",
		"app://wallet/history",
		"app://unknown/1",
		"://",
	} {
		_, _, err := ParseDeepLink(link)
		assert.ErrorIs(t, err, ErrUnknownDeepLink, link)
	}
}

func TestOpenLeavesStateOnError(t *testing.T) {
	r := newTestRouter()
	r.Push(Cart{})

	assert.Error(t, r.Open("app://nowhere"))
	assert.Equal(t, []Destination{Cart{}}, r.Path())
	assert.Equal(t, TabHome, r.Tab())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Checkout", Checkout{}.Kind().String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
	assert.Equal(t, "Wallet", TabWallet.String())
}
