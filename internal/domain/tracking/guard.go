package tracking

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ErrorThrottle suppresses repeat user-facing notifications for identical
// failure messages. Implementations decide where the last surfaced message
// lives (in-process guard state or a shared store).
type ErrorThrottle interface {
	// ShouldNotify returns true when the message differs from the last one
	// surfaced for this order, recording it as the new last message. An exact
	// repeat returns false without touching state.
	ShouldNotify(ctx context.Context, orderID uuid.UUID, message string) (bool, error)
}

// guardState is the per-order single-flight state. Created lazily on the
// first tracking attempt for an order, never persisted across restarts.
type guardState struct {
	inProgress       bool
	lastErrorMessage string
}

// GuardArena holds the single-flight guards for all orders tracked within
// one process. The caller owns the arena and passes it in; there is no
// package-level mutable state. At most one carrier call is in flight per
// order id; a second trigger while one is in flight is dropped, not queued.
type GuardArena struct {
	mu     sync.Mutex
	guards map[uuid.UUID]*guardState
}

// NewGuardArena creates an empty guard arena
func NewGuardArena() *GuardArena {
	return &GuardArena{
		guards: make(map[uuid.UUID]*guardState),
	}
}

// Begin attempts to mark a carrier call as in flight for the order. It
// returns false when another call is already in flight, in which case the
// caller must skip its own call entirely.
func (a *GuardArena) Begin(orderID uuid.UUID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	g := a.guard(orderID)
	if g.inProgress {
		return false
	}
	g.inProgress = true
	return true
}

// End clears the in-flight flag for the order. Callers must invoke it via
// defer so a failed request cannot permanently wedge future refresh attempts.
func (a *GuardArena) End(orderID uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if g, ok := a.guards[orderID]; ok {
		g.inProgress = false
	}
}

// InFlight reports whether a carrier call is currently in flight for the order
func (a *GuardArena) InFlight(orderID uuid.UUID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	g, ok := a.guards[orderID]
	return ok && g.inProgress
}

// ShouldNotify implements ErrorThrottle on top of the guard state. The
// throttle is intentionally not time-windowed: it suppresses only exact
// repeats of the same message, so a changed error still notifies once.
func (a *GuardArena) ShouldNotify(_ context.Context, orderID uuid.UUID, message string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	g := a.guard(orderID)
	if g.lastErrorMessage == message {
		return false, nil
	}
	g.lastErrorMessage = message
	return true, nil
}

// Release drops the guard for an order. Called when the owning view is torn
// down; the next tracking attempt recreates the guard lazily.
func (a *GuardArena) Release(orderID uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.guards, orderID)
}

// Size returns the number of live guards (for testing/monitoring)
func (a *GuardArena) Size() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.guards)
}

// guard returns the guard for an order, creating it lazily. Caller must hold mu.
func (a *GuardArena) guard(orderID uuid.UUID) *guardState {
	g, ok := a.guards[orderID]
	if !ok {
		g = &guardState{}
		a.guards[orderID] = g
	}
	return g
}

// Ensure GuardArena implements ErrorThrottle
var _ ErrorThrottle = (*GuardArena)(nil)
