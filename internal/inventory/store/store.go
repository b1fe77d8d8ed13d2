// Package store provides the in-memory inventory collection.
//
// Records are kept most-recent-first. Every lookup, delete and sweep is a
// linear scan; the inventory is small and single-user, so there is no index.
// The store owns its records: Insert copies the record in and every read
// returns a copy, so callers never hold a reference to stored state.
//
// A Store is not safe for concurrent use.
package store

import (
	"container/list"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/abgdnv/bgrs/internal/inventory/audit"
	inverrors "github.com/abgdnv/bgrs/internal/inventory/errors"
)

// Store is an ordered collection of records.
type Store struct {
	records *list.List // of *Record, front is the most recent insert
	sink    audit.Sink
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithAuditSink sets the sink that receives added/removed/modified events.
func WithAuditSink(sink audit.Sink) Option {
	return func(s *Store) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithClock sets the clock used to timestamp audit events.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger that reports audit sink failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger.With("component", "store")
		}
	}
}

// New creates an empty store. Without options, audit events are discarded
// and sink failures go to the default logger.
func New(opts ...Option) *Store {
	s := &Store{
		records: list.New(),
		sink:    audit.Nop,
		now:     time.Now,
		logger:  slog.Default().With("component", "store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert adds a copy of the record as the new head of the store.
// Returns ErrNilRecord, ErrInvalidID for id 0, ErrDuplicateID if the id is
// already stored, or ErrValidation if a field breaks its invariant.
func (s *Store) Insert(record *Record) error {
	if record == nil {
		return inverrors.ErrNilRecord
	}
	if record.ID == 0 {
		return fmt.Errorf("%w: 0 is reserved", inverrors.ErrInvalidID)
	}
	owned := *record
	owned.Fields = owned.Fields.normalized()
	if err := owned.Fields.Validate(); err != nil {
		return err
	}
	if s.find(owned.ID) != nil {
		return fmt.Errorf("%w: %d", inverrors.ErrDuplicateID, owned.ID)
	}
	s.records.PushFront(&owned)
	s.emit(audit.Added, &owned)
	return nil
}

// FindByID returns a copy of the record with the given id.
// Id 0 never matches.
func (s *Store) FindByID(id uint32) (Record, bool) {
	e := s.find(id)
	if e == nil {
		return Record{}, false
	}
	return *e.Value.(*Record), true
}

// FindByName yields every record whose name contains query, ignoring ASCII case,
// in store order. The sequence is lazy and can be ranged over again; the store
// must not be modified while ranging.
func (s *Store) FindByName(query string) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for e := s.records.Front(); e != nil; e = e.Next() {
			r := e.Value.(*Record)
			if containsFoldASCII(r.Name, query) && !yield(*r) {
				return
			}
		}
	}
}

// All yields every record in store order.
func (s *Store) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for e := s.records.Front(); e != nil; e = e.Next() {
			if !yield(*e.Value.(*Record)) {
				return
			}
		}
	}
}

// DeleteByID removes the record with the given id.
// Returns ErrNotFound if the store is empty or no record has that id.
func (s *Store) DeleteByID(id uint32) error {
	e := s.find(id)
	if e == nil {
		return fmt.Errorf("%w: id %d", inverrors.ErrNotFound, id)
	}
	s.remove(e)
	return nil
}

// Update replaces every field of the record with the given id.
// All fields are validated before anything changes: on ErrValidation or
// ErrNotFound the stored record is left exactly as it was.
func (s *Store) Update(id uint32, fields Fields) (Record, error) {
	e := s.find(id)
	if e == nil {
		return Record{}, fmt.Errorf("%w: id %d", inverrors.ErrNotFound, id)
	}
	candidate := fields.normalized()
	if err := candidate.Validate(); err != nil {
		return Record{}, err
	}
	r := e.Value.(*Record)
	r.Fields = candidate
	s.emit(audit.Modified, r)
	return *r, nil
}

// SweepExpired removes every record that expired strictly before now and
// returns how many were removed. Records without an expiry are kept.
// The scan restarts from the head after each removal and stops once a full
// pass finds nothing to remove.
func (s *Store) SweepExpired(now time.Time) int {
	removed := 0
	for {
		e := s.firstExpired(now)
		if e == nil {
			return removed
		}
		s.remove(e)
		removed++
	}
}

// Teardown drops every record. The store stays usable and is empty afterwards.
func (s *Store) Teardown() {
	s.records.Init()
}

// Len returns the number of records.
func (s *Store) Len() int {
	return s.records.Len()
}

// MaxID returns the highest stored id, or 0 for an empty store.
func (s *Store) MaxID() uint32 {
	var maxID uint32
	for e := s.records.Front(); e != nil; e = e.Next() {
		maxID = max(maxID, e.Value.(*Record).ID)
	}
	return maxID
}

func (s *Store) find(id uint32) *list.Element {
	if id == 0 {
		return nil
	}
	for e := s.records.Front(); e != nil; e = e.Next() {
		if e.Value.(*Record).ID == id {
			return e
		}
	}
	return nil
}

func (s *Store) firstExpired(now time.Time) *list.Element {
	for e := s.records.Front(); e != nil; e = e.Next() {
		if e.Value.(*Record).ExpiredAt(now) {
			return e
		}
	}
	return nil
}

func (s *Store) remove(e *list.Element) {
	r := s.records.Remove(e).(*Record)
	s.emit(audit.Removed, r)
}

// emit hands the event to the audit sink. Sink failures never affect the caller.
func (s *Store) emit(kind audit.Kind, r *Record) {
	event := audit.Event{
		Kind:     kind,
		At:       s.now(),
		ID:       r.ID,
		Name:     r.Name,
		Quantity: r.Quantity,
	}
	if err := s.sink.Append(event); err != nil {
		s.logger.Warn("Audit sink rejected event", "event", kind.String(), "ID", r.ID, "error", err)
	}
}

func containsFoldASCII(s, substr string) bool {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if equalFoldASCII(s[i:i+n], substr) {
			return true
		}
	}
	return false
}

func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
