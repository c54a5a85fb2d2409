package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB owns the SQLite connection that backs the spec table and the diversion airport catalogue
type DB struct {
	db *sql.DB
}

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := optimizeSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// optimizeSQLite applies pragmas for a read-mostly workload
func optimizeSQLite(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL", // readers never block the reload task
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA busy_timeout=5000",
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// AircraftSpecRepository returns the repository for aircraft specifications
func (d *DB) AircraftSpecRepository() AircraftSpecRepository {
	return NewAircraftSpecRepository(d.db)
}

// DiversionAirportRepository returns the repository for diversion airports
func (d *DB) DiversionAirportRepository() DiversionAirportRepository {
	return NewDiversionAirportRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	specsSchema := `CREATE TABLE IF NOT EXISTS aircraft_specs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL UNIQUE,
		wingspan_m REAL NOT NULL,
		length_m REAL NOT NULL,
		height_m REAL NOT NULL,
		mtow_kg REAL NOT NULL,
		range_km REAL NOT NULL,
		passengers_typical INTEGER NOT NULL,
		passengers_max INTEGER NOT NULL,
		engines TEXT,
		takeoff_m REAL NOT NULL,
		landing_m REAL NOT NULL,
		wingspan_clearance_m REAL NOT NULL,
		length_clearance_m REAL NOT NULL,
		height_clearance_m REAL NOT NULL,
		bridge_compatibility TEXT NOT NULL,
		fuel_capacity_l REAL NOT NULL,
		service_ceiling_ft REAL NOT NULL,
		generation TEXT NOT NULL DEFAULT 'none',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	airportsSchema := `CREATE TABLE IF NOT EXISTS diversion_airports (
		icao TEXT PRIMARY KEY,
		name TEXT,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		runway_length_m REAL NOT NULL,
		wide_body_capable INTEGER NOT NULL DEFAULT 0,
		a380_capable INTEGER NOT NULL DEFAULT 0,
		fuel_available INTEGER NOT NULL DEFAULT 0,
		maintenance_capable INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	for name, schema := range map[string]string{
		"aircraft_specs":     specsSchema,
		"diversion_airports": airportsSchema,
	} {
		if _, err := d.db.Exec(schema); err != nil {
			return fmt.Errorf("failed to create %s table: %w", name, err)
		}
	}

	return nil
}
