package models

// CompatibilityResult is the outcome of checking one type against one airport.
// Issues are display strings only.
type CompatibilityResult struct {
	Compatible bool     `json:"compatible"`
	Issues     []string `json:"issues"`
	Score      int      `json:"score"`
}

// FleetRecommendation is the winning type for a route
type FleetRecommendation struct {
	Recommended AircraftType `json:"recommended"`
	Efficiency  int          `json:"efficiency"` // Raw score, may be negative
	Reasoning   []string     `json:"reasoning"`
}

// CandidateScore is the score one type earned for a route
type CandidateScore struct {
	Type      AircraftType `json:"type"`
	Score     int          `json:"score"`
	Reasoning []string     `json:"reasoning"`
}

// DiversionRanking is one ranked alternate airport
type DiversionRanking struct {
	Airport       DiversionCandidate  `json:"airport"`
	Compatibility CompatibilityResult `json:"compatibility"`
	DistanceKm    float64             `json:"distance"`
	Suitability   int                 `json:"suitability"`
}
