package tracking

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardArena_Begin_End(t *testing.T) {
	arena := NewGuardArena()
	orderID := uuid.New()

	assert.True(t, arena.Begin(orderID))
	assert.False(t, arena.Begin(orderID), "second begin while in flight must be refused")
	assert.True(t, arena.InFlight(orderID))

	arena.End(orderID)
	assert.False(t, arena.InFlight(orderID))
	assert.True(t, arena.Begin(orderID), "guard must be reusable after End")
}

func TestGuardArena_IndependentPerOrder(t *testing.T) {
	arena := NewGuardArena()
	first := uuid.New()
	second := uuid.New()

	assert.True(t, arena.Begin(first))
	assert.True(t, arena.Begin(second), "guards must not be shared across orders")
}

func TestGuardArena_ConcurrentBegin_ExactlyOneWinner(t *testing.T) {
	arena := NewGuardArena()
	orderID := uuid.New()

	const callers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if arena.Begin(orderID) {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestGuardArena_ShouldNotify(t *testing.T) {
	arena := NewGuardArena()
	ctx := context.Background()
	orderID := uuid.New()

	notify, err := arena.ShouldNotify(ctx, orderID, "carrier outage")
	require.NoError(t, err)
	assert.True(t, notify, "first occurrence must notify")

	notify, err = arena.ShouldNotify(ctx, orderID, "carrier outage")
	require.NoError(t, err)
	assert.False(t, notify, "exact repeat must be suppressed")

	notify, err = arena.ShouldNotify(ctx, orderID, "no tracking yet")
	require.NoError(t, err)
	assert.True(t, notify, "a changed message must notify again")
}

func TestGuardArena_ShouldNotify_PerOrderState(t *testing.T) {
	arena := NewGuardArena()
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()

	notify, _ := arena.ShouldNotify(ctx, first, "outage")
	assert.True(t, notify)
	notify, _ = arena.ShouldNotify(ctx, second, "outage")
	assert.True(t, notify, "throttle state must not leak across orders")
}

func TestGuardArena_Release(t *testing.T) {
	arena := NewGuardArena()
	ctx := context.Background()
	orderID := uuid.New()

	_, _ = arena.ShouldNotify(ctx, orderID, "outage")
	require.Equal(t, 1, arena.Size())

	arena.Release(orderID)
	assert.Equal(t, 0, arena.Size())

	notify, _ := arena.ShouldNotify(ctx, orderID, "outage")
	assert.True(t, notify, "released guard starts fresh")
}
