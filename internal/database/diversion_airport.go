package database

import (
	"database/sql"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"airbus_twin/internal/models"
)

// DefaultDiversionAirportsCSV is the catalogue seeded when no airport CSV is configured
//
//go:embed datasets/diversion_airports.csv
var DefaultDiversionAirportsCSV string

type DiversionAirportRepository interface {
	InsertBatch(airports []models.DiversionCandidate) error
	IsTablePopulated() (bool, error)
	List() ([]models.DiversionCandidate, error)
	Get(icao string) (models.DiversionCandidate, bool, error)
	LoadFromCSV(csvPath string, batchSize int) error
	LoadFromReader(in io.Reader, batchSize int) error
}

type diversionAirportRepository struct {
	db *sql.DB
}

func NewDiversionAirportRepository(db *sql.DB) DiversionAirportRepository {
	return &diversionAirportRepository{db: db}
}

// InsertBatch inserts or replaces one or more airports in a single transaction
func (r *diversionAirportRepository) InsertBatch(airports []models.DiversionCandidate) error {
	if len(airports) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO diversion_airports (
		icao, name, lat, lon, runway_length_m, wide_body_capable,
		a380_capable, fuel_available, maintenance_capable
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, a := range airports {
		if _, err := stmt.Exec(
			a.ICAO, a.Name, a.Lat, a.Lon, a.RunwayLengthM, a.WideBodyCapable,
			a.A380Capable, a.FuelAvailable, a.MaintenanceCapable,
		); err != nil {
			return fmt.Errorf("failed to insert airport %s: %w", a.ICAO, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *diversionAirportRepository) IsTablePopulated() (bool, error) {
	var ignored int
	err := r.db.QueryRow("SELECT 1 FROM diversion_airports LIMIT 1").Scan(&ignored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check diversion_airports table: %w", err)
	}
	return true, nil
}

const airportColumns = `icao, name, lat, lon, runway_length_m, wide_body_capable,
	a380_capable, fuel_available, maintenance_capable`

// List returns the catalogue ordered by ICAO code
func (r *diversionAirportRepository) List() ([]models.DiversionCandidate, error) {
	rows, err := r.db.Query("SELECT " + airportColumns + " FROM diversion_airports ORDER BY icao")
	if err != nil {
		return nil, fmt.Errorf("failed to query diversion airports: %w", err)
	}
	defer rows.Close()

	var airports []models.DiversionCandidate
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate diversion airports: %w", err)
	}

	return airports, nil
}

// Get returns one airport by ICAO code; found is false if it is not catalogued
func (r *diversionAirportRepository) Get(icao string) (models.DiversionCandidate, bool, error) {
	row := r.db.QueryRow("SELECT "+airportColumns+" FROM diversion_airports WHERE icao = ?", strings.ToUpper(icao))
	a, err := scanAirport(row)
	if err == sql.ErrNoRows {
		return models.DiversionCandidate{}, false, nil
	}
	if err != nil {
		return models.DiversionCandidate{}, false, err
	}
	return a, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAirport(row rowScanner) (models.DiversionCandidate, error) {
	var (
		a    models.DiversionCandidate
		name sql.NullString
	)
	err := row.Scan(&a.ICAO, &name, &a.Lat, &a.Lon, &a.RunwayLengthM, &a.WideBodyCapable,
		&a.A380Capable, &a.FuelAvailable, &a.MaintenanceCapable)
	if err == sql.ErrNoRows {
		return a, err
	}
	if err != nil {
		return a, fmt.Errorf("failed to scan diversion airport: %w", err)
	}
	a.Name = name.String
	return a, nil
}

// LoadFromCSV loads diversion airports from a CSV file
func (r *diversionAirportRepository) LoadFromCSV(csvPath string, batchSize int) error {
	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file %s: %w", csvPath, err)
	}
	defer file.Close()

	return r.LoadFromReader(file, batchSize)
}

// LoadFromReader loads diversion airports from CSV data. Rows without an ICAO code are skipped.
func (r *diversionAirportRepository) LoadFromReader(in io.Reader, batchSize int) error {
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

	batch := make([]models.DiversionCandidate, 0, batchSize)
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

		icao := strings.ToUpper(getField(record, headerMap, "icao"))
		if icao == "" {
			continue
		}

		p := fieldParser{record: record, headerMap: headerMap}
		airport := models.DiversionCandidate{
			ICAO:               icao,
			Name:               getField(record, headerMap, "name"),
			Lat:                p.floatField("lat"),
			Lon:                p.floatField("lon"),
			RunwayLengthM:      p.floatField("runway_length_m"),
			WideBodyCapable:    p.boolField("wide_body_capable"),
			A380Capable:        p.boolField("a380_capable"),
			FuelAvailable:      p.boolField("fuel_available"),
			MaintenanceCapable: p.boolField("maintenance_capable"),
		}
		if p.err != nil {
			return fmt.Errorf("line %d (%s): %w", line, icao, p.err)
		}

		batch = append(batch, airport)
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
