package scoring

import (
	"math"
	"testing"

	"airbus_twin/internal/models"
	"airbus_twin/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func newTestEngine() *Engine {
	return New(Static(DefaultSpecTable()))
}

func TestAssessAirportCompatibility(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name       string
		aircraft   models.AircraftType
		airport    models.AirportConstraints
		wantScore  int
		wantIssues int
	}{
		{
			name:     "A380 at a fully equipped hub",
			aircraft: "A380",
			airport: models.AirportConstraints{
				LongestRunwayM: 4000, WideBodyGates: 3, DoubleAisleCapable: true,
				MaxWingspanM: ptr(90), MaxLengthM: ptr(90), MaxHeightM: ptr(30),
			},
			wantScore:  100,
			wantIssues: 0,
		},
		{
			name:       "A320 on a short runway",
			aircraft:   "A320",
			airport:    models.AirportConstraints{LongestRunwayM: 2000},
			wantScore:  60,
			wantIssues: 1,
		},
		{
			name:       "A330-300 without wide-body gates",
			aircraft:   "A330-300",
			airport:    models.AirportConstraints{LongestRunwayM: 3500},
			wantScore:  70,
			wantIssues: 1,
		},
		{
			name:       "wide-body gate check ignored for standard bridge types",
			aircraft:   "A321",
			airport:    models.AirportConstraints{LongestRunwayM: 3500},
			wantScore:  100,
			wantIssues: 0,
		},
		{
			name:       "A380 without double-deck gates",
			aircraft:   "A380",
			airport:    models.AirportConstraints{LongestRunwayM: 3500, WideBodyGates: 10},
			wantScore:  50,
			wantIssues: 1,
		},
		{
			name:     "A350-1000 on a tight stand",
			aircraft: "A350-1000",
			airport: models.AirportConstraints{
				LongestRunwayM: 3500, WideBodyGates: 1,
				MaxWingspanM: ptr(60), MaxLengthM: ptr(70), MaxHeightM: ptr(17),
			},
			wantScore:  40,
			wantIssues: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.AssessAirportCompatibility(tt.aircraft, tt.airport)
			require.NoError(t, err)

			assert.Equal(t, tt.wantScore, result.Score)
			assert.Len(t, result.Issues, tt.wantIssues)
			assert.Equal(t, tt.wantIssues == 0, result.Compatible)
			assert.NotNil(t, result.Issues)
		})
	}
}

func TestAssessAirportCompatibility_ScoreNeverNegative(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.AssessAirportCompatibility("A380", models.AirportConstraints{
		LongestRunwayM:     0,
		WideBodyGates:      0,
		DoubleAisleCapable: false,
		MaxWingspanM:       ptr(1),
		MaxLengthM:         ptr(1),
		MaxHeightM:         ptr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Compatible)
	// The wide-body gate check only applies to wide_body bridge types, so an
	// A380 collects every other issue.
	require.Len(t, result.Issues, 5)
	assert.Contains(t, result.Issues[0], "Runway too short")
	assert.Contains(t, result.Issues[1], "double-deck")
	assert.Contains(t, result.Issues[2], "Wingspan")
	assert.Contains(t, result.Issues[3], "length")
	assert.Contains(t, result.Issues[4], "Height")
}

func TestAssessAirportCompatibility_UnsuppliedClearanceIsSkipped(t *testing.T) {
	engine := newTestEngine()

	for _, ceiling := range []*float64{nil, ptr(0)} {
		result, err := engine.AssessAirportCompatibility("A380", models.AirportConstraints{
			LongestRunwayM:     4000,
			DoubleAisleCapable: true,
			MaxWingspanM:       ceiling,
			MaxLengthM:         ceiling,
			MaxHeightM:         ceiling,
		})
		require.NoError(t, err)
		assert.True(t, result.Compatible)
		assert.Equal(t, 100, result.Score)
		assert.Empty(t, result.Issues)
	}
}

func TestAssessAirportCompatibility_NegativeClearanceIsChecked(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.AssessAirportCompatibility("A380", models.AirportConstraints{
		LongestRunwayM:     4000,
		DoubleAisleCapable: true,
		MaxWingspanM:       ptr(-5),
		MaxLengthM:         ptr(-5),
		MaxHeightM:         ptr(-5),
	})
	require.NoError(t, err)
	assert.False(t, result.Compatible)
	assert.Equal(t, 40, result.Score)
	require.Len(t, result.Issues, 3)
	assert.Contains(t, result.Issues[0], "Wingspan")
	assert.Contains(t, result.Issues[1], "length")
	assert.Contains(t, result.Issues[2], "Height")
}

func TestAssessAirportCompatibility_RunwayIssueMentionsLengths(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.AssessAirportCompatibility("A321", models.AirportConstraints{LongestRunwayM: 1800})
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0], "1800m")
	assert.Contains(t, result.Issues[0], "2400m")
}

func TestAssessAirportCompatibility_UnknownType(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.AssessAirportCompatibility("B747", models.AirportConstraints{LongestRunwayM: 4000})
	assert.ErrorIs(t, err, ErrUnknownAircraftType)

	// Type codes are case-sensitive
	_, err = engine.AssessAirportCompatibility("a380", models.AirportConstraints{LongestRunwayM: 4000})
	assert.ErrorIs(t, err, ErrUnknownAircraftType)
}

func TestAssessAirportCompatibility_RejectsNonFiniteInput(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.AssessAirportCompatibility("A320", models.AirportConstraints{LongestRunwayM: math.NaN()})
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	_, err = engine.AssessAirportCompatibility("A320", models.AirportConstraints{
		LongestRunwayM: 3000,
		MaxHeightM:     ptr(math.Inf(-1)),
	})
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
}
