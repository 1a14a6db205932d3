package models

import "fmt"

// Gate is an exclusive-use stand held by at most one flight
type Gate struct {
	id           int
	Name         string
	MaxWingspanM float64
	occupiedBy   int // flight id, 0 when free
}

// NewGate allocates a gate id. Names are not required to be unique.
func NewGate(ids *IDAllocator, name string, maxWingspanM float64) *Gate {
	return &Gate{
		id:           ids.NextGate(),
		Name:         name,
		MaxWingspanM: maxWingspanM,
	}
}

func (g *Gate) ID() int { return g.id }

// OccupiedBy returns the holding flight id, if any
func (g *Gate) OccupiedBy() (int, bool) {
	return g.occupiedBy, g.occupiedBy != 0
}

func (g *Gate) IsFree() bool {
	return g.occupiedBy == 0
}

// Assign hands the gate to a flight; it fails if another flight holds it
func (g *Gate) Assign(flightID int) error {
	if !g.IsFree() {
		return fmt.Errorf("%w: gate %s held by flight %d", ErrGateOccupied, g.Name, g.occupiedBy)
	}
	g.occupiedBy = flightID
	return nil
}

// Release frees the gate. Releasing a free gate is a no-op.
func (g *Gate) Release() {
	g.occupiedBy = 0
}
