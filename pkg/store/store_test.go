package store

import (
	"testing"

	"github.com/ben-ben2018/pindou/pkg/quantize"
)

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	s := New()
	grid := &quantize.PixelGrid{Rows: 2, Cols: 2, Cells: make([]quantize.PixelCell, 4)}
	rec := s.Create(Record{Grid: grid, CellSizePx: 20}, 1000)
	if rec.ID == "" {
		t.Fatal("expected a non-empty id")
	}
	if rec.CreatedAt != 1000 || rec.UpdatedAt != 1000 {
		t.Fatalf("expected both timestamps set to 1000, got %+v", rec)
	}
	got, ok := s.Get(rec.ID)
	if !ok || got.ID != rec.ID {
		t.Fatal("expected to retrieve the created record by id")
	}
}

func TestUpdateBumpsTimestamp(t *testing.T) {
	s := New()
	grid := &quantize.PixelGrid{Rows: 1, Cols: 1, Cells: make([]quantize.PixelCell, 1)}
	rec := s.Create(Record{Grid: grid}, 1000)
	newGrid := &quantize.PixelGrid{Rows: 2, Cols: 2, Cells: make([]quantize.PixelCell, 4)}
	updated, ok := s.Update(rec.ID, newGrid, DisplayHints{ShowText: true}, 2000)
	if !ok {
		t.Fatal("expected update to succeed for a known id")
	}
	if updated.UpdatedAt != 2000 || updated.CreatedAt != 1000 {
		t.Fatalf("expected CreatedAt preserved and UpdatedAt bumped, got %+v", updated)
	}
}

func TestUpdateUnknownIDFails(t *testing.T) {
	s := New()
	_, ok := s.Update("nope", nil, DisplayHints{}, 1000)
	if ok {
		t.Fatal("expected update of unknown id to fail")
	}
}

func TestDeleteAndList(t *testing.T) {
	s := New()
	rec := s.Create(Record{Grid: &quantize.PixelGrid{}}, 1000)
	if len(s.List()) != 1 {
		t.Fatal("expected one record after create")
	}
	if !s.Delete(rec.ID) {
		t.Fatal("expected delete to succeed")
	}
	if len(s.List()) != 0 {
		t.Fatal("expected zero records after delete")
	}
}
