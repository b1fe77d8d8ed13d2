// Package service provides the inventory session: one store, its id allocator and its persistence.
package service

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/abgdnv/bgrs/internal/inventory/audit"
	inverrors "github.com/abgdnv/bgrs/internal/inventory/errors"
	"github.com/abgdnv/bgrs/internal/inventory/persistence"
	"github.com/abgdnv/bgrs/internal/inventory/store"
)

// InventoryService defines the operations available to the menu and the command line.
type InventoryService interface {
	// List returns every record, most recently inserted first.
	List() []store.Record

	// FindByID retrieves a single record.
	// Returns ErrNotFound if no record has the given ID.
	FindByID(id uint32) (store.Record, error)

	// Search yields the records whose name contains query, ignoring ASCII case.
	Search(query string) iter.Seq[store.Record]

	// Add validates fields, allocates a new id and stores the record.
	// Returns ErrValidation without consuming an id if a field is invalid.
	Add(fields store.Fields) (store.Record, error)

	// Update replaces every field of a record.
	// Returns ErrNotFound or ErrValidation and leaves the record untouched on failure.
	Update(id uint32, fields store.Fields) (store.Record, error)

	// Delete removes a record.
	// Returns ErrNotFound if no record has the given ID.
	Delete(id uint32) error

	// SweepExpired removes every record that has expired and returns how many were removed.
	SweepExpired() int

	// Save writes the inventory to path.
	Save(path string) error

	// Load replaces the inventory with the content of path.
	// On error the current inventory is kept.
	Load(path string) (*persistence.LoadReport, error)

	// GenerateSamples adds a fixed set of demonstration records.
	GenerateSamples() ([]store.Record, error)

	// Close drops every record.
	Close()
}

// Service implements InventoryService.
type Service struct {
	store   *store.Store
	ids     *store.IDAllocator
	gateway *persistence.Gateway
	sink    audit.Sink
	now     func() time.Time
	logger  *slog.Logger
	base    *slog.Logger
}

// NewService creates a session with an empty inventory.
// A nil sink discards audit events, a nil clock uses time.Now.
func NewService(gateway *persistence.Gateway, sink audit.Sink, now func() time.Time, logger *slog.Logger) *Service {
	if sink == nil {
		sink = audit.Nop
	}
	if now == nil {
		now = time.Now
	}
	s := &Service{
		gateway: gateway,
		sink:    sink,
		now:     now,
		logger:  logger.With("component", "service"),
		base:    logger,
	}
	s.store = store.New(s.storeOptions()...)
	s.ids = store.NewIDAllocator(0)
	return s
}

func (s *Service) storeOptions() []store.Option {
	return []store.Option{store.WithAuditSink(s.sink), store.WithClock(s.now), store.WithLogger(s.base)}
}

// List returns every record, most recently inserted first.
func (s *Service) List() []store.Record {
	return slices.Collect(s.store.All())
}

// FindByID retrieves a record by its ID.
// Returns ErrNotFound if no record has the given ID.
func (s *Service) FindByID(id uint32) (store.Record, error) {
	record, ok := s.store.FindByID(id)
	if !ok {
		return store.Record{}, fmt.Errorf("failed to fetch record by ID %d: %w", id, inverrors.ErrNotFound)
	}
	return record, nil
}

// Search yields the records whose name contains query.
func (s *Service) Search(query string) iter.Seq[store.Record] {
	return s.store.FindByName(query)
}

// Add creates a record with the next free id.
func (s *Service) Add(fields store.Fields) (store.Record, error) {
	record, err := store.NewRecord(0, fields)
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to create record: %w", err)
	}
	if record.ID, err = s.ids.Next(); err != nil {
		return store.Record{}, fmt.Errorf("failed to create record: %w", err)
	}
	if err := s.store.Insert(&record); err != nil {
		return store.Record{}, fmt.Errorf("failed to create record: %w", err)
	}
	s.logger.Debug("Record created", "ID", record.ID, "Name", record.Name)
	return record, nil
}

// Update replaces every field of the record with the given ID.
func (s *Service) Update(id uint32, fields store.Fields) (store.Record, error) {
	updated, err := s.store.Update(id, fields)
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to update record with ID %d: %w", id, err)
	}
	s.logger.Debug("Record updated", "ID", updated.ID, "Name", updated.Name)
	return updated, nil
}

// Delete removes the record with the given ID.
func (s *Service) Delete(id uint32) error {
	if err := s.store.DeleteByID(id); err != nil {
		return fmt.Errorf("failed to delete record with ID %d: %w", id, err)
	}
	s.logger.Debug("Record deleted", "ID", id)
	return nil
}

// SweepExpired removes every record that expired before the current time.
func (s *Service) SweepExpired() int {
	removed := s.store.SweepExpired(s.now())
	if removed > 0 {
		s.logger.Info("Expired records removed", "count", removed)
	}
	return removed
}

// Save writes the inventory to path.
func (s *Service) Save(path string) error {
	if err := s.gateway.Save(s.store, path); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

// Load replaces the inventory with the content of path and moves the id
// allocator to the highest loaded id.
func (s *Service) Load(path string) (*persistence.LoadReport, error) {
	loaded, report, err := s.gateway.Load(path, s.storeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	s.store.Teardown()
	s.store = loaded
	s.ids = store.NewIDAllocator(loaded.MaxID())
	return report, nil
}

// Close drops every record.
func (s *Service) Close() {
	s.store.Teardown()
}
