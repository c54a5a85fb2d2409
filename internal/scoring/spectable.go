package scoring

import (
	"fmt"
	"math"
	"sync/atomic"

	"airbus_twin/internal/models"
)

// SpecTable is an immutable lookup from aircraft type code to its specification.
// It is safe for concurrent use.
type SpecTable struct {
	specs map[models.AircraftType]models.AircraftSpec
	order []models.AircraftType
}

// NewSpecTable validates specs and builds a table from them. Order of specs is preserved by Types.
func NewSpecTable(specs []models.AircraftSpec) (*SpecTable, error) {
	t := &SpecTable{
		specs: make(map[models.AircraftType]models.AircraftSpec, len(specs)),
		order: make([]models.AircraftType, 0, len(specs)),
	}

	for _, s := range specs {
		if err := checkSpec(s); err != nil {
			return nil, err
		}
		if _, dup := t.specs[s.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate type %s", ErrInvalidSpec, s.Type)
		}
		t.specs[s.Type] = s
		t.order = append(t.order, s.Type)
	}

	return t, nil
}

// Lookup returns the spec for an aircraft type
func (t *SpecTable) Lookup(ac models.AircraftType) (models.AircraftSpec, error) {
	s, ok := t.specs[ac]
	if !ok {
		return models.AircraftSpec{}, fmt.Errorf("%w: %q", ErrUnknownAircraftType, ac)
	}
	return s, nil
}

// Types returns the type codes in table order
func (t *SpecTable) Types() []models.AircraftType {
	out := make([]models.AircraftType, len(t.order))
	copy(out, t.order)
	return out
}

// Specs returns every spec in table order
func (t *SpecTable) Specs() []models.AircraftSpec {
	out := make([]models.AircraftSpec, 0, len(t.order))
	for _, ac := range t.order {
		out = append(out, t.specs[ac])
	}
	return out
}

// Len returns the number of types in the table
func (t *SpecTable) Len() int {
	return len(t.order)
}

func checkSpec(s models.AircraftSpec) error {
	if s.Type == "" {
		return fmt.Errorf("%w: empty type code", ErrInvalidSpec)
	}

	positive := map[string]float64{
		"wingspan_m":           s.WingspanM,
		"length_m":             s.LengthM,
		"height_m":             s.HeightM,
		"mtow_kg":              s.MTOWKg,
		"range_km":             s.RangeKm,
		"passengers.typical":   float64(s.Passengers.Typical),
		"passengers.max":       float64(s.Passengers.Max),
		"takeoff_m":            s.Runway.TakeoffM,
		"landing_m":            s.Runway.LandingM,
		"wingspan_clearance_m": s.Gate.WingspanClearanceM,
		"length_clearance_m":   s.Gate.LengthClearanceM,
		"height_clearance_m":   s.Gate.HeightClearanceM,
		"fuel_capacity_l":      s.FuelCapacityL,
		"service_ceiling_ft":   s.ServiceCeilingFt,
	}
	for field, v := range positive {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: %s %s must be a positive number, got %v", ErrInvalidSpec, s.Type, field, v)
		}
	}

	if !s.Gate.Bridge.Valid() {
		return fmt.Errorf("%w: %s has unknown bridge compatibility %q", ErrInvalidSpec, s.Type, s.Gate.Bridge)
	}
	if !s.Generation.Valid() {
		return fmt.Errorf("%w: %s has unknown generation %q", ErrInvalidSpec, s.Type, s.Generation)
	}

	return nil
}

// TableStore holds the current spec table snapshot. Readers never block;
// Swap replaces the whole snapshot at once.
type TableStore struct {
	current atomic.Pointer[SpecTable]
}

// NewTableStore creates a store holding table
func NewTableStore(table *SpecTable) *TableStore {
	s := &TableStore{}
	s.current.Store(table)
	return s
}

// Load returns the current snapshot
func (s *TableStore) Load() *SpecTable {
	return s.current.Load()
}

// Swap installs table as the current snapshot
func (s *TableStore) Swap(table *SpecTable) {
	s.current.Store(table)
}

// DefaultSpecs returns the built-in Airbus fleet specifications
func DefaultSpecs() []models.AircraftSpec {
	return []models.AircraftSpec{
		{
			Type:       "A320",
			WingspanM:  35.8,
			LengthM:    37.57,
			HeightM:    11.76,
			MTOWKg:     78000,
			RangeKm:    6150,
			Passengers: models.Passengers{Typical: 180, Max: 194},
			Engines:    "CFM56-5B / IAE V2500",
			Runway:     models.RunwayRequirements{TakeoffM: 2100, LandingM: 1500},
			Gate: models.GateRequirements{
				WingspanClearanceM: 36, LengthClearanceM: 38, HeightClearanceM: 12,
				Bridge: models.BridgeStandard,
			},
			FuelCapacityL:    27200,
			ServiceCeilingFt: 39800,
			Generation:       models.GenerationNone,
		},
		{
			Type:       "A321",
			WingspanM:  35.8,
			LengthM:    44.51,
			HeightM:    11.76,
			MTOWKg:     93500,
			RangeKm:    5950,
			Passengers: models.Passengers{Typical: 220, Max: 244},
			Engines:    "CFM56-5B / IAE V2500",
			Runway:     models.RunwayRequirements{TakeoffM: 2400, LandingM: 1600},
			Gate: models.GateRequirements{
				WingspanClearanceM: 36, LengthClearanceM: 45, HeightClearanceM: 12,
				Bridge: models.BridgeStandard,
			},
			FuelCapacityL:    30030,
			ServiceCeilingFt: 39800,
			Generation:       models.GenerationNone,
		},
		{
			Type:       "A330-200",
			WingspanM:  60.3,
			LengthM:    58.82,
			HeightM:    17.39,
			MTOWKg:     242000,
			RangeKm:    13450,
			Passengers: models.Passengers{Typical: 246, Max: 406},
			Engines:    "Rolls-Royce Trent 700 / GE CF6-80E1 / PW4000",
			Runway:     models.RunwayRequirements{TakeoffM: 2770, LandingM: 1750},
			Gate: models.GateRequirements{
				WingspanClearanceM: 61, LengthClearanceM: 59, HeightClearanceM: 18,
				Bridge: models.BridgeWideBody,
			},
			FuelCapacityL:    139090,
			ServiceCeilingFt: 41450,
			Generation:       models.GenerationModern,
		},
		{
			Type:       "A330-300",
			WingspanM:  60.3,
			LengthM:    63.66,
			HeightM:    16.79,
			MTOWKg:     242000,
			RangeKm:    11750,
			Passengers: models.Passengers{Typical: 277, Max: 440},
			Engines:    "Rolls-Royce Trent 700 / GE CF6-80E1 / PW4000",
			Runway:     models.RunwayRequirements{TakeoffM: 2770, LandingM: 1800},
			Gate: models.GateRequirements{
				WingspanClearanceM: 61, LengthClearanceM: 64, HeightClearanceM: 17,
				Bridge: models.BridgeWideBody,
			},
			FuelCapacityL:    97530,
			ServiceCeilingFt: 41450,
			Generation:       models.GenerationModern,
		},
		{
			Type:       "A350-1000",
			WingspanM:  64.75,
			LengthM:    73.79,
			HeightM:    17.08,
			MTOWKg:     319000,
			RangeKm:    16100,
			Passengers: models.Passengers{Typical: 330, Max: 440},
			Engines:    "Rolls-Royce Trent XWB-97",
			Runway:     models.RunwayRequirements{TakeoffM: 2750, LandingM: 2000},
			Gate: models.GateRequirements{
				WingspanClearanceM: 65, LengthClearanceM: 74, HeightClearanceM: 18,
				Bridge: models.BridgeWideBody,
			},
			FuelCapacityL:    158987,
			ServiceCeilingFt: 41450,
			Generation:       models.GenerationLatest,
		},
		{
			Type:       "A380",
			WingspanM:  79.75,
			LengthM:    72.72,
			HeightM:    24.09,
			MTOWKg:     575000,
			RangeKm:    15200,
			Passengers: models.Passengers{Typical: 525, Max: 853},
			Engines:    "Rolls-Royce Trent 900 / Engine Alliance GP7200",
			Runway:     models.RunwayRequirements{TakeoffM: 2950, LandingM: 2100},
			Gate: models.GateRequirements{
				WingspanClearanceM: 80, LengthClearanceM: 73, HeightClearanceM: 25,
				Bridge: models.BridgeDoubleDeck,
			},
			FuelCapacityL:    320000,
			ServiceCeilingFt: 43000,
			Generation:       models.GenerationNone,
		},
	}
}

// DefaultSpecTable builds a table from DefaultSpecs
func DefaultSpecTable() *SpecTable {
	t, err := NewSpecTable(DefaultSpecs())
	if err != nil {
		panic(fmt.Sprintf("built-in spec table is invalid: %v", err))
	}
	return t
}
