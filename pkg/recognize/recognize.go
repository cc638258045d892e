// Package recognize implements the Recognition Pipeline of spec.md §4.H:
// composing Grid Detector, Cell Analyzer, Color Extractor, and Palette
// into a finished PixelGrid from a photograph.
package recognize

import (
	"log/slog"
	"sort"

	"github.com/ben-ben2018/pindou/pkg/cellanalyze"
	"github.com/ben-ben2018/pindou/pkg/colorextract"
	"github.com/ben-ben2018/pindou/pkg/griddetect"
	"github.com/ben-ben2018/pindou/pkg/imgproc"
	"github.com/ben-ben2018/pindou/pkg/palette"
	"github.com/ben-ben2018/pindou/pkg/pinerr"
	"github.com/ben-ben2018/pindou/pkg/quantize"
)

// Progress reports pipeline advancement as a percentage in [0,100], at
// the granularity spec.md §4.H names: load 0-20, detect 20-45, analyze
// 45-55, per-cell color 55-95, finalize 100.
type Progress func(percent int)

// Cancel is polled between phases and between per-cell work items; it
// returns true once the caller wants the pipeline aborted.
type Cancel func() bool

// Options configures a Run invocation.
type Options struct {
	Weights  cellanalyze.Weights
	Progress Progress
	Cancel   Cancel
	// Logger receives one Info record at each pipeline phase boundary
	// (load, detect, analyze, color, finalize). Defaults to
	// slog.Default() when nil.
	Logger *slog.Logger
}

// Result is the finished recognition output.
type Result struct {
	Grid  *quantize.PixelGrid
	Model griddetect.GridModel
}

func noopProgress(int) {}
func noopCancel() bool { return false }

// Run executes Detect -> Analyze -> (per occupied cell) Extract -> nearest,
// per spec.md §4.H, normalizing grid coordinates so the minimum occupied
// row/col map to zero.
func Run(img imgproc.Buffer, p *palette.Palette, opts Options) (Result, error) {
	progress := opts.Progress
	if progress == nil {
		progress = noopProgress
	}
	cancel := opts.Cancel
	if cancel == nil {
		cancel = noopCancel
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if !img.Valid() {
		return Result{}, pinerr.ErrInvalidImage
	}
	if p.Len() == 0 {
		return Result{}, pinerr.ErrEmptyPalette
	}

	logger.Info("pipeline phase", "phase", "load", "width", img.Width(), "height", img.Height())
	progress(0)
	progress(20)

	if cancel() {
		return Result{}, pinerr.ErrCancelled
	}

	model, err := griddetect.Detect(img)
	if err != nil {
		logger.Info("pipeline phase", "phase", "detect", "error", err)
		return Result{}, err
	}
	logger.Info("pipeline phase", "phase", "detect", "rows", model.Rows, "cols", model.Cols, "pitch", model.PitchX)
	progress(45)

	if cancel() {
		return Result{}, pinerr.ErrCancelled
	}

	weights := opts.Weights
	if weights == (cellanalyze.Weights{}) {
		weights = cellanalyze.DefaultWeights
	}
	cells := cellanalyze.Analyze(img, model, weights)
	logger.Info("pipeline phase", "phase", "analyze", "cells", len(cells))
	progress(55)

	if cancel() {
		return Result{}, pinerr.ErrCancelled
	}

	occupiedRows, occupiedCols := occupiedBounds(cells, model.Cols)

	type resolved struct {
		row, col int
		cell     quantize.PixelCell
	}
	var resolvedCells []resolved

	totalOccupied := 0
	for _, c := range cells {
		if c.Occupied {
			totalOccupied++
		}
	}
	processed := 0
	for _, c := range cells {
		if !c.Occupied {
			continue
		}
		if cancel() {
			return Result{}, pinerr.ErrCancelled
		}
		r := model.PitchX / 2
		extraction := colorextract.Extract(img, p, c.CenterX, c.CenterY, r, colorextract.Seed(c.Row, c.Col))
		resolvedCells = append(resolvedCells, resolved{
			row: c.Row, col: c.Col,
			cell: quantize.PixelCell{
				Occupied:   true,
				RGB:        extraction.RGB,
				PaletteID:  extraction.Entry.ID,
				Confidence: extraction.Confidence,
			},
		})
		processed++
		if totalOccupied > 0 {
			progress(55 + (processed*40)/totalOccupied)
		}
	}

	logger.Info("pipeline phase", "phase", "color", "resolved", len(resolvedCells))

	rows := occupiedRows.max - occupiedRows.min + 1
	cols := occupiedCols.max - occupiedCols.min + 1
	if len(resolvedCells) == 0 {
		rows, cols = 0, 0
	}

	grid := &quantize.PixelGrid{Rows: rows, Cols: cols, Cells: make([]quantize.PixelCell, rows*cols)}
	sort.Slice(resolvedCells, func(i, j int) bool {
		if resolvedCells[i].row != resolvedCells[j].row {
			return resolvedCells[i].row < resolvedCells[j].row
		}
		return resolvedCells[i].col < resolvedCells[j].col
	})
	for _, rc := range resolvedCells {
		nr := rc.row - occupiedRows.min
		nc := rc.col - occupiedCols.min
		grid.Set(nr, nc, rc.cell)
	}

	logger.Info("pipeline phase", "phase", "finalize", "rows", rows, "cols", cols)
	progress(100)
	return Result{Grid: grid, Model: model}, nil
}


type bounds struct{ min, max int }

func occupiedBounds(cells []cellanalyze.Cell, cols int) (bounds, bounds) {
	rowB := bounds{min: 1 << 30, max: -(1 << 30)}
	colB := bounds{min: 1 << 30, max: -(1 << 30)}
	any := false
	for _, c := range cells {
		if !c.Occupied {
			continue
		}
		any = true
		if c.Row < rowB.min {
			rowB.min = c.Row
		}
		if c.Row > rowB.max {
			rowB.max = c.Row
		}
		if c.Col < colB.min {
			colB.min = c.Col
		}
		if c.Col > colB.max {
			colB.max = c.Col
		}
	}
	if !any {
		return bounds{0, -1}, bounds{0, -1}
	}
	return rowB, colB
}
