package scoring

import (
	"fmt"

	"airbus_twin/internal/models"
	"airbus_twin/internal/validation"
)

// Compatibility penalties, subtracted from a starting score of 100
const (
	penaltyRunway     = 40
	penaltyWideBody   = 30
	penaltyDoubleDeck = 50
	penaltyWingspan   = 25
	penaltyLength     = 20
	penaltyHeight     = 15
)

// AssessAirportCompatibility checks one aircraft type against an airport's
// physical constraints. Penalties stack and the score never drops below zero.
func (e *Engine) AssessAirportCompatibility(ac models.AircraftType, airport models.AirportConstraints) (models.CompatibilityResult, error) {
	if err := validation.Struct(airport); err != nil {
		return models.CompatibilityResult{}, fmt.Errorf("invalid airport constraints: %w", err)
	}

	spec, err := e.lookup(ac)
	if err != nil {
		return models.CompatibilityResult{}, err
	}

	return assess(spec, airport), nil
}

func assess(spec models.AircraftSpec, airport models.AirportConstraints) models.CompatibilityResult {
	issues := []string{}
	score := 100

	if airport.LongestRunwayM < spec.Runway.TakeoffM {
		issues = append(issues, fmt.Sprintf("Runway too short: %.0fm available, %.0fm required for takeoff",
			airport.LongestRunwayM, spec.Runway.TakeoffM))
		score -= penaltyRunway
	}

	switch spec.Gate.Bridge {
	case models.BridgeWideBody:
		if airport.WideBodyGates == 0 {
			issues = append(issues, "No wide-body gates available")
			score -= penaltyWideBody
		}
	case models.BridgeDoubleDeck:
		if !airport.DoubleAisleCapable {
			issues = append(issues, "No A380-capable double-deck gates available")
			score -= penaltyDoubleDeck
		}
	}

	if exceeds(airport.MaxWingspanM, spec.WingspanM) {
		issues = append(issues, fmt.Sprintf("Wingspan clearance insufficient: %.2fm required", spec.WingspanM))
		score -= penaltyWingspan
	}
	if exceeds(airport.MaxLengthM, spec.LengthM) {
		issues = append(issues, fmt.Sprintf("Stand length insufficient: %.2fm required", spec.LengthM))
		score -= penaltyLength
	}
	if exceeds(airport.MaxHeightM, spec.HeightM) {
		issues = append(issues, fmt.Sprintf("Height clearance insufficient: %.2fm required", spec.HeightM))
		score -= penaltyHeight
	}

	return models.CompatibilityResult{
		Compatible: len(issues) == 0,
		Issues:     issues,
		Score:      max(score, 0),
	}
}

// exceeds reports whether an aircraft dimension is larger than a supplied
// ceiling. A nil or zero ceiling is treated as not supplied.
func exceeds(ceiling *float64, dimension float64) bool {
	return ceiling != nil && *ceiling != 0 && *ceiling < dimension
}
