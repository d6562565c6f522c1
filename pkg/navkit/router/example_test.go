package router_test

import (
	"fmt"

	"github.com/BrandonKowalski/navkit/pkg/navkit/router"
)

// Example demonstrates drilling into a store and navigating back.
func Example() {
	r := router.New()

	r.Push(router.StoreDetail{StoreID: "bakery"})
	r.Push(router.ProductDetail{ProductID: "croissant"})
	r.Push(router.ProductDetail{ProductID: "croissant"})
	fmt.Println("depth:", r.Len())

	r.Pop()
	top, _ := r.Top()
	fmt.Println("top:", top.Kind(), top.(router.ProductDetail).ProductID)

	r.Pop()
	r.Pop()
	r.Pop() // empty, nothing happens
	_, ok := r.Top()
	fmt.Println("root visible:", !ok)

	// Output:
	// depth: 3
	// top: ProductDetail croissant
	// root visible: true
}

// Example_deepLink demonstrates resetting the stack from a deep link.
func Example_deepLink() {
	r := router.New()
	r.Push(router.Cart{})
	r.Push(router.Checkout{OrderID: "o-1", AmountCents: 1500})

	if err := r.Open("app://order/o-1"); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("tab:", r.Tab())
	for _, d := range r.Path() {
		fmt.Println("entry:", d.Kind())
	}

	// Output:
	// tab: Orders
	// entry: OrderDetail
}
