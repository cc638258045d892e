// Package store holds persisted design records, per spec.md §6: a
// snapshot of a PixelGrid plus its construction parameters, keyed by an
// opaque id. New (ambient) code: no teacher or pack example reaches for
// an embedded database for something this small, so a mutex-guarded map
// is the grounded shape (see DESIGN.md).
package store

import (
	"fmt"
	"sync"

	"github.com/ben-ben2018/pindou/pkg/quantize"
	"github.com/ben-ben2018/pindou/pkg/sampler"
)

// PaletteSelection names the brand -> list-of-names selection set a
// record was built against, per spec.md §6.
type PaletteSelection map[string][]string

// DisplayHints carries the two rendering toggles spec.md §6 names.
type DisplayHints struct {
	ShowText           bool
	ShowReferenceLines bool
}

// Record is a persisted design snapshot.
type Record struct {
	ID         string
	Grid       *quantize.PixelGrid
	CellSizePx int
	Mode       sampler.Mode
	EdgeTrim   bool
	Palette    PaletteSelection
	Hints      DisplayHints
	CreatedAt  int64 // ms since epoch
	UpdatedAt  int64 // ms since epoch
}

// Store is an in-memory, concurrency-safe map of design records.
type Store struct {
	mu      sync.Mutex
	records map[string]Record
	nextID  int
}

// New returns an empty Store.
func New() *Store {
	return &Store{records: make(map[string]Record)}
}

// Create inserts a new record, assigning it a fresh opaque id, and
// returns the stored copy. nowMs is supplied by the caller (the store
// has no internal clock) and used for both CreatedAt and UpdatedAt.
func (s *Store) Create(rec Record, nowMs int64) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec.ID = fmt.Sprintf("design-%d", s.nextID)
	rec.CreatedAt = nowMs
	rec.UpdatedAt = nowMs
	s.records[rec.ID] = rec
	return rec
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Update replaces an existing record's grid and display hints, bumping
// UpdatedAt, and fails if id is unknown. The other construction
// parameters keep their stored values.
func (s *Store) Update(id string, grid *quantize.PixelGrid, hints DisplayHints, nowMs int64) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	rec.Grid = grid
	rec.Hints = hints
	rec.UpdatedAt = nowMs
	s.records[id] = rec
	return rec, true
}

// Delete removes a record, returning whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	return true
}

// List returns every stored record in unspecified order.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out
}
