package scoring

import (
	"fmt"

	"airbus_twin/internal/models"
	"airbus_twin/internal/validation"
)

// OptimizeFleet picks the candidate type best suited to a route. The highest
// score wins; on a tie the earlier candidate is kept.
func (e *Engine) OptimizeFleet(route models.RouteProfile, candidates []models.AircraftType) (models.FleetRecommendation, error) {
	scores, err := e.ScoreFleet(route, candidates)
	if err != nil {
		return models.FleetRecommendation{}, err
	}
	return Recommend(scores)
}

// Recommend picks the winner from scores produced by ScoreFleet
func Recommend(scores []models.CandidateScore) (models.FleetRecommendation, error) {
	if len(scores) == 0 {
		return models.FleetRecommendation{}, ErrNoCandidates
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	return models.FleetRecommendation{
		Recommended: best.Type,
		Efficiency:  best.Score,
		Reasoning:   best.Reasoning,
	}, nil
}

// ScoreFleet scores every candidate against the route, in input order
func (e *Engine) ScoreFleet(route models.RouteProfile, candidates []models.AircraftType) ([]models.CandidateScore, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if err := validation.Struct(route); err != nil {
		return nil, fmt.Errorf("invalid route profile: %w", err)
	}

	table := e.tables.Load()
	scores := make([]models.CandidateScore, 0, len(candidates))
	for _, ac := range candidates {
		spec, err := table.Lookup(ac)
		if err != nil {
			return nil, err
		}
		scores = append(scores, scoreCandidate(spec, route))
	}

	return scores, nil
}

func scoreCandidate(spec models.AircraftSpec, route models.RouteProfile) models.CandidateScore {
	score := 0
	reasoning := []string{}

	switch {
	case spec.RangeKm >= route.DistanceKm*1.2:
		score += 30
		reasoning = append(reasoning, "Excellent range capability")
	case spec.RangeKm >= route.DistanceKm:
		score += 20
		reasoning = append(reasoning, "Adequate range capability")
	default:
		score -= 50
		reasoning = append(reasoning, "Insufficient range")
	}

	ratio := route.Demand / float64(spec.Passengers.Typical)
	switch {
	case ratio >= 0.8 && ratio <= 1.1:
		score += 25
		reasoning = append(reasoning, "Optimal passenger capacity utilization")
	case ratio >= 0.6:
		score += 15
		reasoning = append(reasoning, "Good passenger capacity utilization")
	default:
		score -= 20
		reasoning = append(reasoning, "Suboptimal passenger capacity utilization")
	}

	switch spec.Generation {
	case models.GenerationLatest:
		score += 20
		reasoning = append(reasoning, "Latest generation fuel efficiency")
	case models.GenerationModern:
		score += 10
		reasoning = append(reasoning, "Modern fuel efficiency")
	}

	return models.CandidateScore{Type: spec.Type, Score: score, Reasoning: reasoning}
}
