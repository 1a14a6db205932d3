package models

import "sync/atomic"

// IDAllocator hands out monotonically increasing ids per entity kind.
// Ids are never reused, even after the owning entity is removed.
// Each airport owns one; tests create their own to get isolated sequences.
type IDAllocator struct {
	aircraft atomic.Int64
	gate     atomic.Int64
	runway   atomic.Int64
	flight   atomic.Int64
}

// NewIDAllocator returns an allocator whose sequences all start at 1
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

func (a *IDAllocator) NextAircraft() int { return int(a.aircraft.Add(1)) }
func (a *IDAllocator) NextGate() int     { return int(a.gate.Add(1)) }
func (a *IDAllocator) NextRunway() int   { return int(a.runway.Add(1)) }
func (a *IDAllocator) NextFlight() int   { return int(a.flight.Add(1)) }
