package client

import (
	"context"
	"sync"
)

// FetchFunc loads the collection's full contents from the server.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Collection caches one list endpoint. Reads are served from the
// cache; Mutate runs a write and then refetches unconditionally.
//
// Concurrent refreshes are resolved by generation: each Refresh takes
// a ticket, and a response only lands if no newer ticket has been
// issued since. A slow early response can therefore never overwrite
// the result of a later one.
type Collection[T any] struct {
	mu      sync.Mutex
	items   []T
	loading bool
	err     string

	generation uint64
	fetch      FetchFunc[T]
}

// NewCollection creates an empty Collection over the given fetcher.
func NewCollection[T any](fetch FetchFunc[T]) *Collection[T] {
	return &Collection[T]{fetch: fetch}
}

// Items returns a copy of the cached items.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Loading reports whether a refresh is in flight.
func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the message of the most recent failed refresh, or "".
// A successful refresh clears it.
func (c *Collection[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Refresh refetches the collection. When refreshes overlap, only the
// newest one's response is kept; older in-flight responses are
// discarded on arrival, success or failure alike.
func (c *Collection[T]) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	ticket := c.generation
	c.loading = true
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket != c.generation {
		// A newer refresh was issued while this one was in flight.
		return
	}
	c.loading = false
	if err != nil {
		c.err = err.Error()
		return
	}
	c.err = ""
	c.items = items
}

// Mutate runs the mutation and then refreshes, whether or not the
// mutation succeeded. The server may have partially applied a failed
// write, so the refetch happens unconditionally.
func (c *Collection[T]) Mutate(ctx context.Context, mutation func(ctx context.Context) error) error {
	err := mutation(ctx)
	c.Refresh(ctx)
	return err
}
