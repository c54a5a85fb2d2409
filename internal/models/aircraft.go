package models

// AircraftType is the case-sensitive type code of an aircraft (e.g. "A350-1000")
type AircraftType string

// BridgeClass is the jet-bridge class a gate must offer to service an aircraft
type BridgeClass string

const (
	BridgeStandard   BridgeClass = "standard"
	BridgeWideBody   BridgeClass = "wide_body"
	BridgeDoubleDeck BridgeClass = "double_deck"
)

// Valid reports whether b is one of the three known bridge classes
func (b BridgeClass) Valid() bool {
	switch b {
	case BridgeStandard, BridgeWideBody, BridgeDoubleDeck:
		return true
	}
	return false
}

// Generation tags the fuel-efficiency generation of a type
type Generation string

const (
	GenerationNone   Generation = "none"
	GenerationModern Generation = "modern"
	GenerationLatest Generation = "latest"
)

// Valid reports whether g is a known generation tag
func (g Generation) Valid() bool {
	switch g {
	case GenerationNone, GenerationModern, GenerationLatest:
		return true
	}
	return false
}

// AircraftSpec holds the physical and performance specification of one aircraft type
type AircraftSpec struct {
	Type             AircraftType       `json:"type"`
	WingspanM        float64            `json:"wingspan_m"`
	LengthM          float64            `json:"length_m"`
	HeightM          float64            `json:"height_m"`
	MTOWKg           float64            `json:"mtow_kg"`
	RangeKm          float64            `json:"range_km"`
	Passengers       Passengers         `json:"passengers"`
	Engines          string             `json:"engines"` // Informational only
	Runway           RunwayRequirements `json:"runway_requirements"`
	Gate             GateRequirements   `json:"gate_requirements"`
	FuelCapacityL    float64            `json:"fuel_capacity_l"`
	ServiceCeilingFt float64            `json:"service_ceiling_ft"`
	Generation       Generation         `json:"generation"`
}

// Passengers is the seating capacity of a type
type Passengers struct {
	Typical int `json:"typical"` // Typical multi-class layout
	Max     int `json:"max"`     // Maximum certified
}

// RunwayRequirements are the minimum runway lengths in meters
type RunwayRequirements struct {
	TakeoffM float64 `json:"takeoff_m"`
	LandingM float64 `json:"landing_m"`
}

// GateRequirements describe the stand a type needs
type GateRequirements struct {
	WingspanClearanceM float64     `json:"wingspan_clearance_m"`
	LengthClearanceM   float64     `json:"length_clearance_m"`
	HeightClearanceM   float64     `json:"height_clearance_m"`
	Bridge             BridgeClass `json:"bridge_compatibility"`
}
