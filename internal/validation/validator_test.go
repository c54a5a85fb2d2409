package validation

import (
	"math"
	"testing"

	"airbus_twin/internal/models"

	"github.com/go-playground/validator/v10"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestStruct_AirportConstraints(t *testing.T) {
	tests := []struct {
		name      string
		input     models.AirportConstraints
		wantErr   bool
		wantField string
	}{
		{
			name:  "all fields supplied",
			input: models.AirportConstraints{LongestRunwayM: 3000, WideBodyGates: 2, MaxWingspanM: ptr(65)},
		},
		{
			name:  "clearances omitted",
			input: models.AirportConstraints{LongestRunwayM: 3000},
		},
		{
			name:      "NaN runway",
			input:     models.AirportConstraints{LongestRunwayM: math.NaN()},
			wantErr:   true,
			wantField: "longestRunway",
		},
		{
			name:      "infinite wingspan ceiling",
			input:     models.AirportConstraints{LongestRunwayM: 3000, MaxWingspanM: ptr(math.Inf(1))},
			wantErr:   true,
			wantField: "maxWingspan",
		},
		{
			name:      "negative gates",
			input:     models.AirportConstraints{LongestRunwayM: 3000, WideBodyGates: -1},
			wantErr:   true,
			wantField: "wideBodyGates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var fields []string
			for _, fe := range err.(ValidationErrors) {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestStruct_Position(t *testing.T) {
	assert.NoError(t, Struct(models.Position{Lat: 51.47, Lon: -0.45}))
	assert.Error(t, Struct(models.Position{Lat: 91, Lon: 0}))
	assert.Error(t, Struct(models.Position{Lat: 0, Lon: -181}))
	assert.Error(t, Struct(models.Position{Lat: math.NaN(), Lon: 0}))
}

func TestStruct_PositionReportsOffGlobeCoordinate(t *testing.T) {
	err := Struct(models.Position{Lat: 91, Lon: 200})
	require.Error(t, err)
	assert.Equal(t, ValidationErrors{
		{Field: "lat", Message: "must be a valid latitude (-90 to 90)"},
		{Field: "lon", Message: "must be a valid longitude (-180 to 180)"},
	}, err)
}

func TestStruct_DiversionCandidateCoordinates(t *testing.T) {
	err := Struct(models.DiversionCandidate{ICAO: "EGLL", Lat: 51.47, Lon: -190, RunwayLengthM: 3902})
	require.Error(t, err)
	assert.Equal(t, "lon: must be a valid longitude (-180 to 180)", err.Error())

	assert.NoError(t, Struct(models.DiversionCandidate{ICAO: "EGLL", Lat: 51.47, Lon: -0.45, RunwayLengthM: 3902}))
}

func TestStruct_DiversionCandidateRequiresICAO(t *testing.T) {
	err := Struct(models.DiversionCandidate{Lat: 10, Lon: 10, RunwayLengthM: 3000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "icao: is required")
}

func TestValidationErrors_Error(t *testing.T) {
	ve := ValidationErrors{
		{Field: "lat", Message: "is invalid"},
		{Field: "lon", Message: "is invalid"},
	}
	assert.Equal(t, "lat: is invalid; lon: is invalid", ve.Error())
}

func TestMustRegister_PanicsOnBadTag(t *testing.T) {
	v := validator.New()
	assert.Panics(t, func() { mustRegister(v, "", validateFinite) })
	assert.NotPanics(t, func() { mustRegister(v, "finite", validateFinite) })
}
