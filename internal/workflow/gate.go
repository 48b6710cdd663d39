package workflow

import "sync/atomic"

// Gate is a single-flight guard. At most one holder exists at a time.
// The zero value is open.
type Gate struct {
	busy atomic.Bool
}

// TryAcquire takes the gate, returning false if it is already held.
func (g *Gate) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release opens the gate.
func (g *Gate) Release() {
	g.busy.Store(false)
}

// Busy reports whether the gate is held.
func (g *Gate) Busy() bool {
	return g.busy.Load()
}
