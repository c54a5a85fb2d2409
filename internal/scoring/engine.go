// Package scoring rates aircraft types against airports, routes and diversion alternates.
//
// All operations are pure functions of their inputs and the spec table
// snapshot they read, so an Engine can be shared freely between goroutines.
package scoring

import "airbus_twin/internal/models"

// TableSource supplies the spec table an Engine scores against
type TableSource interface {
	Load() *SpecTable
}

// Engine evaluates compatibility, fleet fit and diversion suitability
type Engine struct {
	tables    TableSource
	diversion DiversionClearance
}

// DiversionClearance is the gate clearance assumed at every diversion alternate
type DiversionClearance struct {
	MaxWingspanM float64
	MaxLengthM   float64
	MaxHeightM   float64
}

// DefaultDiversionClearance is the clearance assumed unless configured otherwise
var DefaultDiversionClearance = DiversionClearance{MaxWingspanM: 80, MaxLengthM: 80, MaxHeightM: 30}

// New creates an engine reading from tables with the default diversion clearance
func New(tables TableSource) *Engine {
	return NewWithClearance(tables, DefaultDiversionClearance)
}

// NewWithClearance creates an engine with a custom diversion clearance
func NewWithClearance(tables TableSource, clearance DiversionClearance) *Engine {
	return &Engine{tables: tables, diversion: clearance}
}

// Table returns the spec table snapshot currently in use
func (e *Engine) Table() *SpecTable {
	return e.tables.Load()
}

func (e *Engine) lookup(ac models.AircraftType) (models.AircraftSpec, error) {
	return e.tables.Load().Lookup(ac)
}

// staticTable adapts a fixed table to TableSource
type staticTable struct{ t *SpecTable }

func (s staticTable) Load() *SpecTable { return s.t }

// Static wraps a fixed table as a TableSource
func Static(t *SpecTable) TableSource {
	return staticTable{t: t}
}
