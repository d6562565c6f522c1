// Package router provides stack-based screen navigation over a closed set of
// destinations.
//
// Each tab has an implicit root (its home screen) that is never a stack
// entry. Screens push destinations as the user drills in and pop on back.
// The stack records the exact visiting order and never collapses repeats, so
// back always reveals the destination that was visible before.
//
// # Basic Usage
//
//	r := router.New()
//
//	r.Push(router.StoreDetail{StoreID: "s-1"})
//	r.Push(router.ProductDetail{ProductID: "p-9"})
//	r.Pop() // back to StoreDetail
//
//	// Deep links and logout replace the whole stack.
//	r.Reset(router.OrderDetail{OrderID: "o-3"})
//	r.Reset(nil)
//
// # Observing
//
// Renderers subscribe with Observe and receive the tab and full path after
// each change:
//
//	cancel := r.Observe(func(c router.Change) {
//	    render(c.Tab, c.Path)
//	})
//	defer cancel()
//
// Router has no locking. Call it from the dispatch loop only.
package router
