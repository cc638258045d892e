// Package griddetect implements the Grid Detector component of spec.md
// §4.E: recovering cell pitch, origin, and dimensions from a photo of a
// bead board.
package griddetect

// GridModel is the result of grid detection (spec.md §3). The last cell
// center (origin + (cols-1)*pitch) must lie strictly inside the image
// bounds minus one half-pitch radius; Detect reduces Rows and Cols until
// that holds, stopping at one row and one column.
type GridModel struct {
	PitchX, PitchY   float64
	OriginX, OriginY float64
	Rows, Cols       int
	Confidence       float64
}

type point struct {
	x, y float64
}
