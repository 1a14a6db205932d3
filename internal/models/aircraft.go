package models

import (
	"fmt"
	"math"
)

// DefaultEfficiencyFactor is used for cargo aircraft built without an explicit factor
const DefaultEfficiencyFactor = 0.85

// EngineType describes the propulsion of an aircraft
type EngineType string

const (
	EngineJet       EngineType = "Jet"
	EngineTurboprop EngineType = "Turboprop"
	EnginePiston    EngineType = "Piston"
)

// Aircraft is the capability set shared by every aircraft variant.
// Adding a variant only requires implementing Capacity and RangeKm.
type Aircraft interface {
	ID() int
	Capacity() int
	RangeKm() float64
	String() string
}

// AircraftSpec holds the fields common to all aircraft variants
type AircraftSpec struct {
	Model              string
	Registration       string
	EngineType         EngineType
	EmptyWeightKg      float64
	MaxTakeoffWeightKg float64
}

// aircraftBase carries the identity and common data for a variant
type aircraftBase struct {
	id   int
	spec AircraftSpec
}

func newAircraftBase(ids *IDAllocator, spec AircraftSpec) (aircraftBase, error) {
	if spec.EmptyWeightKg >= spec.MaxTakeoffWeightKg {
		return aircraftBase{}, fmt.Errorf("%w: empty weight %.0f kg must be below max takeoff weight %.0f kg",
			ErrInvalidAircraftConfiguration, spec.EmptyWeightKg, spec.MaxTakeoffWeightKg)
	}
	return aircraftBase{id: ids.NextAircraft(), spec: spec}, nil
}

func (a aircraftBase) ID() int            { return a.id }
func (a aircraftBase) Spec() AircraftSpec { return a.spec }

func (a aircraftBase) String() string {
	return fmt.Sprintf("%s (%s)", a.spec.Registration, a.spec.Model)
}

// PassengerAircraft carries passengers in a fixed seat layout
type PassengerAircraft struct {
	aircraftBase
	SeatRows             int
	SeatsPerRow          int
	FuelCapacityL        float64
	ConsumptionLPer100Km float64 // simplified average consumption
}

// NewPassengerAircraft validates the weights and allocates an aircraft id
func NewPassengerAircraft(ids *IDAllocator, spec AircraftSpec, seatRows, seatsPerRow int, fuelCapacityL, consumptionLPer100Km float64) (*PassengerAircraft, error) {
	base, err := newAircraftBase(ids, spec)
	if err != nil {
		return nil, err
	}
	return &PassengerAircraft{
		aircraftBase:         base,
		SeatRows:             seatRows,
		SeatsPerRow:          seatsPerRow,
		FuelCapacityL:        fuelCapacityL,
		ConsumptionLPer100Km: consumptionLPer100Km,
	}, nil
}

// Capacity is the number of seats
func (p *PassengerAircraft) Capacity() int {
	seats := p.SeatRows * p.SeatsPerRow
	if seats < 0 {
		return 0
	}
	return seats
}

// RangeKm is fuel divided by consumption, or 0 when consumption is not positive
func (p *PassengerAircraft) RangeKm() float64 {
	if p.ConsumptionLPer100Km <= 0 || p.FuelCapacityL <= 0 {
		return 0
	}
	return (p.FuelCapacityL / p.ConsumptionLPer100Km) * 100
}

// CargoAircraft carries payload; its capacity is expressed in kilograms
type CargoAircraft struct {
	aircraftBase
	CargoVolumeM3    float64
	MaxPayloadKg     float64
	FuelCapacityL    float64
	EfficiencyFactor float64
}

// NewCargoAircraft validates the weights and allocates an aircraft id.
// The efficiency factor is DefaultEfficiencyFactor.
func NewCargoAircraft(ids *IDAllocator, spec AircraftSpec, cargoVolumeM3, maxPayloadKg, fuelCapacityL float64) (*CargoAircraft, error) {
	return NewCargoAircraftWithFactor(ids, spec, cargoVolumeM3, maxPayloadKg, fuelCapacityL, DefaultEfficiencyFactor)
}

// NewCargoAircraftWithFactor is NewCargoAircraft with a custom efficiency factor
func NewCargoAircraftWithFactor(ids *IDAllocator, spec AircraftSpec, cargoVolumeM3, maxPayloadKg, fuelCapacityL, efficiencyFactor float64) (*CargoAircraft, error) {
	base, err := newAircraftBase(ids, spec)
	if err != nil {
		return nil, err
	}
	return &CargoAircraft{
		aircraftBase:     base,
		CargoVolumeM3:    cargoVolumeM3,
		MaxPayloadKg:     maxPayloadKg,
		FuelCapacityL:    fuelCapacityL,
		EfficiencyFactor: efficiencyFactor,
	}, nil
}

// Capacity is the maximum payload in whole kilograms
func (c *CargoAircraft) Capacity() int {
	if c.MaxPayloadKg <= 0 {
		return 0
	}
	return int(math.Floor(c.MaxPayloadKg))
}

// RangeKm uses a flat fuel-to-distance model scaled by the efficiency factor
func (c *CargoAircraft) RangeKm() float64 {
	r := (c.FuelCapacityL / 5) * c.EfficiencyFactor
	if r < 0 {
		return 0
	}
	return r
}

// IsPassenger reports whether an aircraft can board passengers
func IsPassenger(a Aircraft) bool {
	_, ok := a.(*PassengerAircraft)
	return ok
}
