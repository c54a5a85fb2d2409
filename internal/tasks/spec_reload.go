package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"airbus_twin/internal/models"
	"airbus_twin/internal/scoring"
)

// SpecLoader is the part of the spec repository the reload task needs
type SpecLoader interface {
	LoadAll() ([]models.AircraftSpec, error)
}

// SpecReloadTask rebuilds the spec table from storage and swaps it into the
// store. A failed load or an invalid table leaves the current snapshot in place.
type SpecReloadTask struct {
	repo     SpecLoader
	store    *scoring.TableStore
	interval time.Duration
}

// NewSpecReloadTask creates a reload task with a one minute interval
func NewSpecReloadTask(repo SpecLoader, store *scoring.TableStore) *SpecReloadTask {
	return NewSpecReloadTaskWithInterval(repo, store, time.Minute)
}

// NewSpecReloadTaskWithInterval creates a reload task with a custom interval
func NewSpecReloadTaskWithInterval(repo SpecLoader, store *scoring.TableStore, interval time.Duration) *SpecReloadTask {
	return &SpecReloadTask{
		repo:     repo,
		store:    store,
		interval: interval,
	}
}

func (t *SpecReloadTask) Name() string {
	return "spec_reload"
}

func (t *SpecReloadTask) Interval() time.Duration {
	return t.interval
}

// Run loads every stored spec and installs them as the new table
func (t *SpecReloadTask) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	specs, err := t.repo.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load aircraft specs: %w", err)
	}
	if len(specs) == 0 {
		return fmt.Errorf("spec table is empty, keeping %d types", t.store.Load().Len())
	}

	table, err := scoring.NewSpecTable(specs)
	if err != nil {
		return fmt.Errorf("failed to build spec table: %w", err)
	}

	t.store.Swap(table)
	slog.Debug("Spec table reloaded", "aircraft_types", table.Len())

	return nil
}
