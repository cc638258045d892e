// Package pinerr defines the typed error kinds surfaced at pipeline
// boundaries, per spec.md §7. The teacher's pkg/stdimg commands each
// return a flat fmt.Errorf; the recognition pipeline needs callers to
// tell structural failures (abort) from per-cell numeric failures
// (continue, cell marked neutral), so these are sentinel errors checkable
// with errors.Is/errors.As instead.
package pinerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidImage: empty, zero-dimension, or un-decodable buffer.
	ErrInvalidImage = errors.New("pindou: invalid image")
	// ErrEmptyPalette: palette has no entries.
	ErrEmptyPalette = errors.New("pindou: empty palette")
	// ErrGridNotFound: grid detector exhausted both methods.
	ErrGridNotFound = errors.New("pindou: grid not found")
	// ErrCancelled: an external cancel token fired.
	ErrCancelled = errors.New("pindou: cancelled")
	// ErrNumericFailure: K-means did not converge and the fallback
	// also failed. Recoverable at the cell level.
	ErrNumericFailure = errors.New("pindou: numeric failure")
)

// GridNotFoundDetail carries the debug record spec.md §7 requires when
// grid detection fails: candidate count, the candidate-cloud pitch
// estimate (already clamped to [MinPitch, MaxPitch]), and that range.
type GridNotFoundDetail struct {
	CandidateCount  int
	PitchEstimate   float64
	MinPitch        float64
	MaxPitch        float64
	CandidateCloudN int
}

func (d *GridNotFoundDetail) Error() string {
	return fmt.Sprintf("grid not found: candidates=%d cloudCandidates=%d pitchEstimate=%.2f acceptedRange=[%.1f,%.1f]",
		d.CandidateCount, d.CandidateCloudN, d.PitchEstimate, d.MinPitch, d.MaxPitch)
}

func (d *GridNotFoundDetail) Unwrap() error { return ErrGridNotFound }
