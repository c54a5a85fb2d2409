package scoring

import (
	"fmt"
	"slices"

	"airbus_twin/internal/geo"
	"airbus_twin/internal/models"
	"airbus_twin/internal/validation"
)

const (
	// wideBodyGateAssumption is the gate count assumed at wide-body capable alternates
	wideBodyGateAssumption = 5

	farDiversionKm  = 500.0
	nearDiversionKm = 200.0
)

// RankDiversions orders alternate airports by how well they can take the
// aircraft from its current position. Equal suitability keeps input order.
func (e *Engine) RankDiversions(ac models.AircraftType, pos models.Position, candidates []models.DiversionCandidate) ([]models.DiversionRanking, error) {
	if err := validation.Struct(pos); err != nil {
		return nil, fmt.Errorf("invalid position: %w", err)
	}
	for _, c := range candidates {
		if err := validation.Struct(c); err != nil {
			return nil, fmt.Errorf("invalid diversion candidate %q: %w", c.ICAO, err)
		}
	}

	spec, err := e.lookup(ac)
	if err != nil {
		return nil, err
	}

	rankings := make([]models.DiversionRanking, 0, len(candidates))
	for _, c := range candidates {
		rankings = append(rankings, e.rankCandidate(spec, pos, c))
	}

	slices.SortStableFunc(rankings, func(a, b models.DiversionRanking) int {
		return b.Suitability - a.Suitability
	})

	return rankings, nil
}

func (e *Engine) rankCandidate(spec models.AircraftSpec, pos models.Position, c models.DiversionCandidate) models.DiversionRanking {
	distance := geo.DistanceKm(pos.Lat, pos.Lon, c.Lat, c.Lon)

	gates := 0
	if c.WideBodyCapable {
		gates = wideBodyGateAssumption
	}
	wingspan, length, height := e.diversion.MaxWingspanM, e.diversion.MaxLengthM, e.diversion.MaxHeightM
	compat := assess(spec, models.AirportConstraints{
		LongestRunwayM:     c.RunwayLengthM,
		WideBodyGates:      gates,
		DoubleAisleCapable: c.A380Capable,
		MaxWingspanM:       &wingspan,
		MaxLengthM:         &length,
		MaxHeightM:         &height,
	})

	suitability := compat.Score
	switch {
	case distance > farDiversionKm:
		suitability -= 20
	case distance > nearDiversionKm:
		suitability -= 10
	}
	if c.FuelAvailable {
		suitability += 15
	}
	if c.MaintenanceCapable {
		suitability += 10
	}

	return models.DiversionRanking{
		Airport:       c,
		Compatibility: compat,
		DistanceKm:    distance,
		Suitability:   max(suitability, 0),
	}
}
