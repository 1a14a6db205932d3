// Package layout builds an Airport from a YAML facility description.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"airport_ops/internal/airport"
	"airport_ops/internal/models"
)

// Layout describes one facility: its resource pools, fleet and flights
type Layout struct {
	Name     string        `yaml:"name"`
	FleetCSV string        `yaml:"fleet_csv"` // relative to the layout file
	Gates    []GateDef     `yaml:"gates"`
	Runways  []RunwayDef   `yaml:"runways"`
	Aircraft []AircraftDef `yaml:"aircraft"`
	Flights  []FlightDef   `yaml:"flights"`
}

type GateDef struct {
	Name         string  `yaml:"name"`
	MaxWingspanM float64 `yaml:"max_wingspan_m"`
}

type RunwayDef struct {
	Name        string `yaml:"name"`
	LengthM     int    `yaml:"length_m"`
	Maintenance bool   `yaml:"maintenance"`
}

// AircraftDef describes a passenger or cargo aircraft by registration
type AircraftDef struct {
	Registration       string  `yaml:"registration"`
	Kind               string  `yaml:"kind"` // "passenger" or "cargo"
	Model              string  `yaml:"model"`
	Engine             string  `yaml:"engine"`
	EmptyWeightKg      float64 `yaml:"empty_weight_kg"`
	MaxTakeoffWeightKg float64 `yaml:"mtow_kg"`

	SeatRows             int     `yaml:"seat_rows"`
	SeatsPerRow          int     `yaml:"seats_per_row"`
	FuelCapacityL        float64 `yaml:"fuel_capacity_l"`
	ConsumptionLPer100Km float64 `yaml:"consumption_l_per_100km"`

	CargoVolumeM3    float64 `yaml:"cargo_volume_m3"`
	MaxPayloadKg     float64 `yaml:"max_payload_kg"`
	EfficiencyFactor float64 `yaml:"efficiency_factor"` // 0 selects the default
}

type FlightDef struct {
	Number      string `yaml:"number"`
	Origin      string `yaml:"origin"`
	Destination string `yaml:"destination"`
	Aircraft    string `yaml:"aircraft"` // registration
	Departure   string `yaml:"departure"`
	Arrival     string `yaml:"arrival"`
}

// Load reads a layout file. A referenced fleet CSV is merged into Aircraft.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	l := &Layout{}
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("failed to parse layout file: %w", err)
	}

	if l.FleetCSV != "" {
		csvPath := l.FleetCSV
		if !filepath.IsAbs(csvPath) {
			csvPath = filepath.Join(filepath.Dir(path), csvPath)
		}
		fleet, err := LoadFleetCSV(csvPath)
		if err != nil {
			return nil, err
		}
		l.Aircraft = append(l.Aircraft, fleet...)
	}

	return l, nil
}

// Build creates the airport described by the layout. All ids come from a
// fresh allocator owned by the returned airport.
func (l *Layout) Build(opts airport.Options) (*airport.Airport, error) {
	ap := airport.New(l.Name, nil, opts)
	ids := ap.IDs()

	for _, g := range l.Gates {
		ap.AddGate(models.NewGate(ids, g.Name, g.MaxWingspanM))
	}
	for _, r := range l.Runways {
		runway := models.NewRunway(ids, r.Name, r.LengthM)
		ap.AddRunway(runway)
		if r.Maintenance {
			if err := ap.SetRunwayMaintenance(runway.ID()); err != nil {
				return nil, fmt.Errorf("runway %s: %w", r.Name, err)
			}
		}
	}

	fleet := make(map[string]models.Aircraft, len(l.Aircraft))
	for _, def := range l.Aircraft {
		if _, dup := fleet[def.Registration]; dup {
			return nil, fmt.Errorf("aircraft %s defined twice", def.Registration)
		}
		ac, err := def.build(ids)
		if err != nil {
			return nil, fmt.Errorf("aircraft %s: %w", def.Registration, err)
		}
		fleet[def.Registration] = ac
	}

	for _, fd := range l.Flights {
		ac, ok := fleet[fd.Aircraft]
		if !ok {
			return nil, fmt.Errorf("flight %s: unknown aircraft %q", fd.Number, fd.Aircraft)
		}
		f := models.NewFlight(ids, models.FlightSpec{
			Number:           fd.Number,
			Origin:           fd.Origin,
			Destination:      fd.Destination,
			PlannedDeparture: fd.Departure,
			PlannedArrival:   fd.Arrival,
		}, ac)
		if err := ap.AddFlight(f); err != nil {
			return nil, err
		}
	}

	return ap, nil
}

func (d AircraftDef) build(ids *models.IDAllocator) (models.Aircraft, error) {
	engine, err := parseEngine(d.Engine)
	if err != nil {
		return nil, err
	}
	spec := models.AircraftSpec{
		Model:              d.Model,
		Registration:       d.Registration,
		EngineType:         engine,
		EmptyWeightKg:      d.EmptyWeightKg,
		MaxTakeoffWeightKg: d.MaxTakeoffWeightKg,
	}

	switch strings.ToLower(d.Kind) {
	case "passenger":
		ac, err := models.NewPassengerAircraft(ids, spec, d.SeatRows, d.SeatsPerRow, d.FuelCapacityL, d.ConsumptionLPer100Km)
		if err != nil {
			return nil, err
		}
		return ac, nil
	case "cargo":
		factor := d.EfficiencyFactor
		if factor == 0 {
			factor = models.DefaultEfficiencyFactor
		}
		ac, err := models.NewCargoAircraftWithFactor(ids, spec, d.CargoVolumeM3, d.MaxPayloadKg, d.FuelCapacityL, factor)
		if err != nil {
			return nil, err
		}
		return ac, nil
	default:
		return nil, fmt.Errorf("unknown aircraft kind %q (must be passenger or cargo)", d.Kind)
	}
}

func parseEngine(name string) (models.EngineType, error) {
	switch strings.ToLower(name) {
	case "", "jet":
		return models.EngineJet, nil
	case "turboprop":
		return models.EngineTurboprop, nil
	case "piston":
		return models.EnginePiston, nil
	default:
		return "", fmt.Errorf("unknown engine type %q", name)
	}
}
