package database

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"airbus_twin/internal/models"
)

type AircraftSpecRepository interface {
	InsertBatch(specs []models.AircraftSpec) error
	IsTablePopulated() (bool, error)
	LoadAll() ([]models.AircraftSpec, error)
	LoadFromCSV(csvPath string, batchSize int) error
}

type aircraftSpecRepository struct {
	db *sql.DB
}

func NewAircraftSpecRepository(db *sql.DB) AircraftSpecRepository {
	return &aircraftSpecRepository{db: db}
}

// InsertBatch upserts one or more specs in a single transaction. An existing
// type keeps its position in the table order.
func (r *aircraftSpecRepository) InsertBatch(specs []models.AircraftSpec) error {
	if len(specs) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO aircraft_specs (
		type, wingspan_m, length_m, height_m, mtow_kg, range_km,
		passengers_typical, passengers_max, engines, takeoff_m, landing_m,
		wingspan_clearance_m, length_clearance_m, height_clearance_m,
		bridge_compatibility, fuel_capacity_l, service_ceiling_ft, generation
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(type) DO UPDATE SET
		wingspan_m = excluded.wingspan_m,
		length_m = excluded.length_m,
		height_m = excluded.height_m,
		mtow_kg = excluded.mtow_kg,
		range_km = excluded.range_km,
		passengers_typical = excluded.passengers_typical,
		passengers_max = excluded.passengers_max,
		engines = excluded.engines,
		takeoff_m = excluded.takeoff_m,
		landing_m = excluded.landing_m,
		wingspan_clearance_m = excluded.wingspan_clearance_m,
		length_clearance_m = excluded.length_clearance_m,
		height_clearance_m = excluded.height_clearance_m,
		bridge_compatibility = excluded.bridge_compatibility,
		fuel_capacity_l = excluded.fuel_capacity_l,
		service_ceiling_ft = excluded.service_ceiling_ft,
		generation = excluded.generation,
		updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range specs {
		if _, err := stmt.Exec(
			string(s.Type), s.WingspanM, s.LengthM, s.HeightM, s.MTOWKg, s.RangeKm,
			s.Passengers.Typical, s.Passengers.Max, s.Engines,
			s.Runway.TakeoffM, s.Runway.LandingM,
			s.Gate.WingspanClearanceM, s.Gate.LengthClearanceM, s.Gate.HeightClearanceM,
			string(s.Gate.Bridge), s.FuelCapacityL, s.ServiceCeilingFt, string(s.Generation),
		); err != nil {
			return fmt.Errorf("failed to insert spec %s: %w", s.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *aircraftSpecRepository) IsTablePopulated() (bool, error) {
	var ignored int
	err := r.db.QueryRow("SELECT 1 FROM aircraft_specs LIMIT 1").Scan(&ignored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check aircraft_specs table: %w", err)
	}
	return true, nil
}

// LoadAll returns every stored spec in insertion order
func (r *aircraftSpecRepository) LoadAll() ([]models.AircraftSpec, error) {
	rows, err := r.db.Query(`SELECT
		type, wingspan_m, length_m, height_m, mtow_kg, range_km,
		passengers_typical, passengers_max, engines, takeoff_m, landing_m,
		wingspan_clearance_m, length_clearance_m, height_clearance_m,
		bridge_compatibility, fuel_capacity_l, service_ceiling_ft, generation
	FROM aircraft_specs ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query aircraft specs: %w", err)
	}
	defer rows.Close()

	var specs []models.AircraftSpec
	for rows.Next() {
		var (
			s                   models.AircraftSpec
			acType, bridge, gen string
			engines             sql.NullString
		)
		if err := rows.Scan(
			&acType, &s.WingspanM, &s.LengthM, &s.HeightM, &s.MTOWKg, &s.RangeKm,
			&s.Passengers.Typical, &s.Passengers.Max, &engines,
			&s.Runway.TakeoffM, &s.Runway.LandingM,
			&s.Gate.WingspanClearanceM, &s.Gate.LengthClearanceM, &s.Gate.HeightClearanceM,
			&bridge, &s.FuelCapacityL, &s.ServiceCeilingFt, &gen,
		); err != nil {
			return nil, fmt.Errorf("failed to scan aircraft spec: %w", err)
		}
		s.Type = models.AircraftType(acType)
		s.Engines = engines.String
		s.Gate.Bridge = models.BridgeClass(bridge)
		s.Generation = models.Generation(gen)
		specs = append(specs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate aircraft specs: %w", err)
	}

	return specs, nil
}

// LoadFromCSV loads aircraft specs from a CSV file whose header names the
// aircraft_specs columns. Rows without a type are skipped.
func (r *aircraftSpecRepository) LoadFromCSV(csvPath string, batchSize int) error {
	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file %s: %w", csvPath, err)
	}
	defer file.Close()

	return r.loadCSV(file, batchSize)
}

func (r *aircraftSpecRepository) loadCSV(in io.Reader, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 100
	}

	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	headerMap := buildHeaderMap(header)

	batch := make([]models.AircraftSpec, 0, batchSize)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		acType := getField(record, headerMap, "type")
		if acType == "" {
			continue
		}

		p := fieldParser{record: record, headerMap: headerMap}
		spec := models.AircraftSpec{
			Type:      models.AircraftType(acType),
			WingspanM: p.floatField("wingspan_m"),
			LengthM:   p.floatField("length_m"),
			HeightM:   p.floatField("height_m"),
			MTOWKg:    p.floatField("mtow_kg"),
			RangeKm:   p.floatField("range_km"),
			Passengers: models.Passengers{
				Typical: p.intField("passengers_typical"),
				Max:     p.intField("passengers_max"),
			},
			Engines: getField(record, headerMap, "engines"),
			Runway: models.RunwayRequirements{
				TakeoffM: p.floatField("takeoff_m"),
				LandingM: p.floatField("landing_m"),
			},
			Gate: models.GateRequirements{
				WingspanClearanceM: p.floatField("wingspan_clearance_m"),
				LengthClearanceM:   p.floatField("length_clearance_m"),
				HeightClearanceM:   p.floatField("height_clearance_m"),
				Bridge:             models.BridgeClass(getField(record, headerMap, "bridge_compatibility")),
			},
			FuelCapacityL:    p.floatField("fuel_capacity_l"),
			ServiceCeilingFt: p.floatField("service_ceiling_ft"),
			Generation:       models.Generation(getField(record, headerMap, "generation")),
		}
		if spec.Generation == "" {
			spec.Generation = models.GenerationNone
		}
		if p.err != nil {
			return fmt.Errorf("line %d (%s): %w", line, acType, p.err)
		}

		batch = append(batch, spec)
		if len(batch) >= batchSize {
			if err := r.InsertBatch(batch); err != nil {
				return fmt.Errorf("failed to insert batch: %w", err)
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := r.InsertBatch(batch); err != nil {
			return fmt.Errorf("failed to insert final batch: %w", err)
		}
	}

	return nil
}

func buildHeaderMap(header []string) map[string]int {
	headerMap := make(map[string]int, len(header))
	for i, h := range header {
		headerMap[strings.Trim(strings.TrimSpace(h), "'\"")] = i
	}
	return headerMap
}

// getField safely retrieves a field from a CSV record by header name
func getField(record []string, headerMap map[string]int, fieldName string) string {
	if idx, ok := headerMap[fieldName]; ok && idx < len(record) {
		return strings.Trim(strings.TrimSpace(record[idx]), "'\"")
	}
	return ""
}

// fieldParser converts CSV fields and keeps the first conversion error
type fieldParser struct {
	record    []string
	headerMap map[string]int
	err       error
}

func (p *fieldParser) floatField(name string) float64 {
	raw := getField(p.record, p.headerMap, name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v
}

func (p *fieldParser) intField(name string) int {
	raw := getField(p.record, p.headerMap, name)
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v
}

func (p *fieldParser) boolField(name string) bool {
	raw := getField(p.record, p.headerMap, name)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v
}
