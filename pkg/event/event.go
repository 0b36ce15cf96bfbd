// Package event provides Vendra's in-process event dispatcher. Sale commits
// fire "sale.recorded"; listeners (audit export, low-stock alert, websocket
// feed, metrics) run strictly after the store mutation has committed.
package event

import (
	"sync"

	"github.com/vendralabs/vendra/pkg/workerpool"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}

	poolMu sync.Mutex
	pool   *workerpool.Pool
)

// UsePool routes FireAsync handlers through the given worker pool instead of
// spawning a goroutine per handler. Pass nil to restore the default.
func UsePool(p *workerpool.Pool) {
	poolMu.Lock()
	defer poolMu.Unlock()
	pool = p
}

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently and returns
// immediately. When a worker pool is installed the handlers run on it; a full
// pool falls back to a plain goroutine so listeners are never dropped.
func FireAsync(event string, payload interface{}) {
	poolMu.Lock()
	p := pool
	poolMu.Unlock()

	for _, h := range snapshot(event) {
		h := h
		if p != nil && p.Submit(func() { h(payload) }) == nil {
			continue
		}
		go h(payload)
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()

	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}
