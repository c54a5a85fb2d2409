package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"airbus_twin/internal/api"
	"airbus_twin/internal/config"
	"airbus_twin/internal/database"
	"airbus_twin/internal/scheduler"
	"airbus_twin/internal/scoring"
	"airbus_twin/internal/tasks"
)

const (
	seedBatchSize   = 500
	shutdownTimeout = 5 * time.Second
)

// Daemon represents the main daemon structure
type Daemon struct {
	ctx       context.Context
	cancel    context.CancelFunc
	scheduler *scheduler.Scheduler
	database  *database.DB
	server    *http.Server
	listener  net.Listener
	started   bool
	done      chan struct{}
}

// New opens the database, seeds it when empty and wires the scoring engine
// behind the HTTP API. The first spec table is loaded before New returns.
func New(cfg *config.Config) (*Daemon, error) {
	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	specRepo := db.AircraftSpecRepository()
	airportRepo := db.DiversionAirportRepository()

	if err := seedSpecs(specRepo, cfg.SpecCSVPath); err != nil {
		db.Close()
		return nil, err
	}
	if err := seedAirports(airportRepo, cfg.AirportsCSVPath); err != nil {
		db.Close()
		return nil, err
	}

	specs, err := specRepo.LoadAll()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load aircraft specs: %w", err)
	}
	table, err := scoring.NewSpecTable(specs)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build spec table: %w", err)
	}
	store := scoring.NewTableStore(table)

	engine := scoring.NewWithClearance(store, scoring.DiversionClearance{
		MaxWingspanM: cfg.Diversion.MaxWingspan,
		MaxLengthM:   cfg.Diversion.MaxLength,
		MaxHeightM:   cfg.Diversion.MaxHeight,
	})

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddr, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	reload := tasks.NewSpecReloadTaskWithInterval(specRepo, store, time.Duration(cfg.ReloadInterval)*time.Second)
	sched := scheduler.New(ctx)
	sched.AddTask(reload)

	slog.Info("Spec table loaded", "aircraft_types", table.Len())

	return &Daemon{
		ctx:       ctx,
		cancel:    cancel,
		scheduler: sched,
		database:  db,
		server: &http.Server{
			Handler:           api.New(engine, airportRepo, reload),
			ReadHeaderTimeout: 10 * time.Second,
		},
		listener: ln,
		done:     make(chan struct{}),
	}, nil
}

// seedSpecs fills an empty spec table from csvPath, or from the built-in
// Airbus catalogue when no path is configured
func seedSpecs(repo database.AircraftSpecRepository, csvPath string) error {
	populated, err := repo.IsTablePopulated()
	if err != nil {
		return fmt.Errorf("failed to check aircraft spec table: %w", err)
	}
	if populated {
		slog.Info("Aircraft spec table is already populated")
		return nil
	}

	if csvPath != "" {
		slog.Info("Aircraft spec table is empty, loading from CSV", "csv_path", csvPath)
		if err := repo.LoadFromCSV(csvPath, seedBatchSize); err != nil {
			return fmt.Errorf("failed to load aircraft specs from CSV: %w", err)
		}
		return nil
	}

	slog.Info("Aircraft spec table is empty, loading built-in catalogue")
	if err := repo.InsertBatch(scoring.DefaultSpecs()); err != nil {
		return fmt.Errorf("failed to insert built-in aircraft specs: %w", err)
	}
	return nil
}

// seedAirports fills an empty diversion catalogue from csvPath, or from the
// embedded dataset when no path is configured
func seedAirports(repo database.DiversionAirportRepository, csvPath string) error {
	populated, err := repo.IsTablePopulated()
	if err != nil {
		return fmt.Errorf("failed to check diversion airport table: %w", err)
	}
	if populated {
		slog.Info("Diversion airport table is already populated")
		return nil
	}

	if csvPath != "" {
		slog.Info("Diversion airport table is empty, loading from CSV", "csv_path", csvPath)
		if err := repo.LoadFromCSV(csvPath, seedBatchSize); err != nil {
			return fmt.Errorf("failed to load diversion airports from CSV: %w", err)
		}
		return nil
	}

	slog.Info("Diversion airport table is empty, loading built-in catalogue")
	if err := repo.LoadFromReader(strings.NewReader(database.DefaultDiversionAirportsCSV), seedBatchSize); err != nil {
		return fmt.Errorf("failed to load built-in diversion airports: %w", err)
	}
	return nil
}

// Addr returns the address the HTTP server is listening on
func (d *Daemon) Addr() net.Addr {
	return d.listener.Addr()
}

func (d *Daemon) Start() error {
	slog.Info("Starting daemon", "addr", d.Addr().String())

	d.scheduler.Start()
	d.started = true

	go func() {
		defer close(d.done)
		if err := d.server.Serve(d.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped", "error", err)
		}
	}()

	slog.Info("Daemon started successfully")
	return nil
}

// Stop gracefully stops the daemon
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")
	d.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := d.server.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
	}

	if d.started {
		<-d.done
		d.scheduler.Stop()
	} else if err := d.listener.Close(); err != nil {
		slog.Error("Error closing listener", "error", err)
	}

	if err := d.database.Close(); err != nil {
		slog.Error("Error closing database", "error", err)
	}

	slog.Info("Daemon stopped")
	return nil
}
