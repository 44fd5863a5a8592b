package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectionRefresh(t *testing.T) {
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})

	assert.Empty(t, c.Items())

	c.Refresh(context.Background())
	assert.Equal(t, []string{"a", "b"}, c.Items())
	assert.False(t, c.Loading())
	assert.Equal(t, "", c.Err())
}

func TestCollectionRefreshError(t *testing.T) {
	fail := true
	c := NewCollection(func(ctx context.Context) ([]int, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return []int{1}, nil
	})

	c.Refresh(context.Background())
	assert.Equal(t, "connection refused", c.Err())
	assert.Empty(t, c.Items())

	// A later successful refresh clears the error.
	fail = false
	c.Refresh(context.Background())
	assert.Equal(t, "", c.Err())
	assert.Equal(t, []int{1}, c.Items())
}

func TestCollectionDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	c := NewCollection(func(ctx context.Context) ([]string, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			// First fetch stalls until the second one has landed.
			<-release
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Refresh(context.Background())
	}()

	// Wait for the first fetch to be in flight before racing it.
	for {
		mu.Lock()
		started := calls >= 1
		mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	c.Refresh(context.Background())
	assert.Equal(t, []string{"fresh"}, c.Items())

	close(release)
	wg.Wait()

	assert.Equal(t, []string{"fresh"}, c.Items(), "the stalled first response must be discarded on arrival")
}

func TestCollectionMutateRefreshesOnFailure(t *testing.T) {
	fetches := 0
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		fetches++
		return []string{"current"}, nil
	})

	mutationErr := errors.New("409: already applied")
	err := c.Mutate(context.Background(), func(ctx context.Context) error {
		return mutationErr
	})
	assert.ErrorIs(t, err, mutationErr)
	assert.Equal(t, 1, fetches, "a failed mutation still triggers a refetch")
	assert.Equal(t, []string{"current"}, c.Items())
}

func TestCollectionMutateSuccess(t *testing.T) {
	items := []string{"one"}
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		out := make([]string, len(items))
		copy(out, items)
		return out, nil
	})

	err := c.Mutate(context.Background(), func(ctx context.Context) error {
		items = append(items, "two")
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, c.Items())
}
