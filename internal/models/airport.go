package models

// AirportConstraints describes the physical limits of a target airport.
// Clearance ceilings are optional: nil means no constraint was supplied.
type AirportConstraints struct {
	LongestRunwayM     float64  `json:"longestRunway" validate:"finite,gte=0"`
	WideBodyGates      int      `json:"wideBodyGates" validate:"gte=0"`
	DoubleAisleCapable bool     `json:"doubleAisleCapable"`
	MaxWingspanM       *float64 `json:"maxWingspan,omitempty" validate:"omitempty,finite"`
	MaxLengthM         *float64 `json:"maxLength,omitempty" validate:"omitempty,finite"`
	MaxHeightM         *float64 `json:"maxHeight,omitempty" validate:"omitempty,finite"`
}

// Position is a point on the globe in decimal degrees. Coordinate ranges are
// checked at struct level by the validation package.
type Position struct {
	Lat float64 `json:"lat" validate:"finite"`
	Lon float64 `json:"lon" validate:"finite"`
}

// DiversionCandidate is an alternate airport considered for a diversion
type DiversionCandidate struct {
	ICAO               string  `json:"icao" validate:"required"`
	Name               string  `json:"name"`
	Lat                float64 `json:"lat" validate:"finite"`
	Lon                float64 `json:"lon" validate:"finite"`
	RunwayLengthM      float64 `json:"runwayLength" validate:"finite,gte=0"`
	WideBodyCapable    bool    `json:"wideBodyCapable"`
	A380Capable        bool    `json:"a380Capable,omitempty"` // Absent means false
	FuelAvailable      bool    `json:"fuelAvailable"`
	MaintenanceCapable bool    `json:"maintenanceCapable"`
}

// RouteProfile is the distance and demand of a route being planned
type RouteProfile struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distance" validate:"finite,gte=0"`
	Demand      float64 `json:"demand" validate:"finite,gte=0"`
	Frequency   string  `json:"frequency,omitempty"`
}
