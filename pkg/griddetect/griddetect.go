package griddetect

import (
	"math"

	"github.com/ben-ben2018/pindou/pkg/imgproc"
	"github.com/ben-ben2018/pindou/pkg/pinerr"
)

const candidateCloudMinSupport = 50

// Detect recovers a GridModel from a photo, per spec.md §4.E: it tries
// the candidate-cloud method first and falls back to
// projection-autocorrelation when fewer than 50 candidates survive.
func Detect(img imgproc.Buffer) (GridModel, error) {
	if !img.Valid() {
		return GridModel{}, pinerr.ErrInvalidImage
	}
	plane := img.GrayscalePlane()
	w, h := img.Width(), img.Height()

	candidates := gatherCandidates(img, plane, w, h)

	if len(candidates) >= candidateCloudMinSupport {
		if model, ok := detectCandidateCloud(candidates, w, h); ok {
			return model, nil
		}
	}

	if model, ok := detectFallback(plane, w, h); ok {
		return model, nil
	}

	return GridModel{}, &pinerr.GridNotFoundDetail{
		CandidateCount:  len(candidates),
		PitchEstimate:   estimatePitch(candidates),
		MinPitch:        minPitch,
		MaxPitch:        maxPitch,
		CandidateCloudN: len(candidates),
	}
}

func gatherCandidates(img imgproc.Buffer, plane []float64, w, h int) []point {
	var all []point
	for _, preset := range houghPresets {
		all = append(all, houghCircles(plane, w, h, preset)...)
	}
	all = append(all, ringContrastCandidates(plane, w, h)...)
	sat := saturationPlane(img)
	all = append(all, saturationCandidates(sat, w, h)...)
	return mergeAndSuppress(all)
}

// detectCandidateCloud implements spec.md §4.E.1 steps 2-5 over an
// already-gathered, already-NMS'd candidate cloud.
func detectCandidateCloud(candidates []point, w, h int) (GridModel, bool) {
	pitch := estimatePitch(candidates)
	survivors, minX, minY, maxX, maxY, ok := activeBounds(candidates, pitch)
	if !ok {
		return GridModel{}, false
	}
	origin := pickOrigin(survivors, minX, minY)

	rows := int(math.Round((maxY-origin.y)/pitch)) + 1
	cols := int(math.Round((maxX-origin.x)/pitch)) + 1
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	lastX := origin.x + float64(cols-1)*pitch
	lastY := origin.y + float64(rows-1)*pitch
	halfPitch := pitch / 2
	if lastX+halfPitch >= float64(w) || lastY+halfPitch >= float64(h) ||
		origin.x-halfPitch < 0 || origin.y-halfPitch < 0 {
		// Clamp dimensions down until the last cell center respects the
		// GridModel invariant (spec.md §3): it must lie strictly inside
		// the image bounds minus one half-pitch radius.
		for cols > 1 && origin.x+float64(cols-1)*pitch+halfPitch >= float64(w) {
			cols--
		}
		for rows > 1 && origin.y+float64(rows-1)*pitch+halfPitch >= float64(h) {
			rows--
		}
	}

	confidence := math.Min(1, float64(len(candidates))/(0.5*float64(rows)*float64(cols)))

	return GridModel{
		PitchX:     pitch,
		PitchY:     pitch,
		OriginX:    origin.x,
		OriginY:    origin.y,
		Rows:       rows,
		Cols:       cols,
		Confidence: confidence,
	}, true
}
