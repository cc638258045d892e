// Package palette implements the closed set of colors a design may use
// (spec.md §4.B) and the perceptual nearest-color query shared by
// synthesis and recognition.
package palette

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ben-ben2018/pindou/pkg/colorspace"
	"github.com/ben-ben2018/pindou/pkg/pinerr"
)

// ID identifies a PaletteEntry by its brand/name pair. IDs are unique
// within a Palette.
type ID struct {
	Brand string
	Name  string
}

func (id ID) String() string { return id.Brand + "/" + id.Name }

// Entry is an immutable palette color: its sRGB value and the Lab value
// derived from it at construction time (cached, never recomputed).
type Entry struct {
	ID  ID
	RGB colorspace.RGB8
	Lab colorspace.Lab
}

// Palette is an ordered, duplicate-free (by ID) sequence of Entry with
// nearest-entry queries by CIEDE2000.
type Palette struct {
	entries []Entry
}

// RawEntry is an unprocessed {brand, name, rgb} triple fed to New.
type RawEntry struct {
	Brand string
	Name  string
	RGB   colorspace.RGB8
}

// New builds a Palette from raw {brand, name, rgb} triples, computing and
// caching Lab for each entry. Duplicate IDs are NOT permitted: New returns
// an error so callers catch bad palette files early.
func New(raw []RawEntry) (*Palette, error) {
	p := &Palette{entries: make([]Entry, 0, len(raw))}
	seen := make(map[ID]bool, len(raw))
	for _, r := range raw {
		id := ID{Brand: r.Brand, Name: r.Name}
		if seen[id] {
			return nil, fmt.Errorf("pindou/palette: duplicate id %s", id)
		}
		seen[id] = true
		p.entries = append(p.entries, Entry{
			ID:  id,
			RGB: r.RGB,
			Lab: colorspace.RGB8ToLab(r.RGB),
		})
	}
	return p, nil
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int { return len(p.entries) }

// Entries returns the palette entries in insertion order. The returned
// slice is owned by the caller but its elements must not be mutated to
// reconstruct a different palette (Entry is conceptually immutable).
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Nearest performs a linear scan over entries and returns the argmin by
// CIEDE2000, breaking ties by first insertion order. Fails with
// ErrEmptyPalette if the palette has no entries.
func (p *Palette) Nearest(lab colorspace.Lab) (Entry, float64, error) {
	if len(p.entries) == 0 {
		return Entry{}, 0, pinerr.ErrEmptyPalette
	}
	best := p.entries[0]
	bestDist := colorspace.DeltaE2000(lab, best.Lab)
	for _, e := range p.entries[1:] {
		d := colorspace.DeltaE2000(lab, e.Lab)
		if d < bestDist {
			bestDist = d
			best = e
		}
	}
	return best, bestDist, nil
}

// NearestRGB8 is a convenience wrapper around Nearest for sRGB queries.
func (p *Palette) NearestRGB8(rgb colorspace.RGB8) (Entry, float64, error) {
	return p.Nearest(colorspace.RGB8ToLab(rgb))
}

// NearestByName looks up the first entry whose Name matches (case
// insensitive), used by the color extractor's gray fallback to resolve
// "gray" without a full ΔE scan.
func (p *Palette) NearestByName(name string) (Entry, bool) {
	lower := strings.ToLower(name)
	for _, e := range p.entries {
		if strings.ToLower(e.ID.Name) == lower {
			return e, true
		}
	}
	return Entry{}, false
}

// Confidence maps a ΔE distance to a [0,1] match-quality score, per
// spec.md §4.B.
func Confidence(deltaE float64) float64 {
	if deltaE < 2 {
		return 1
	}
	c := 1 - (deltaE-2)/15
	if c < 0 {
		return 0
	}
	return c
}

// fileEntry mirrors the external palette file format of spec.md §6: an
// array keyed by brand name, each a list of {name, 6-digit-uppercase-hex}.
type fileEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Load parses the palette file format of spec.md §6 and returns a Palette
// with Lab precomputed for every entry, per the "Palette loader prepends
// '#' for convenience and computes Lab on load" contract. Hex parsing is
// narrowed from the teacher's parseHexColor (pkg/stdimg/color.go), which
// additionally handles named CSS colors and #rgb/#rgba forms this format
// never uses.
func Load(r io.Reader) (*Palette, error) {
	var byBrand map[string][]fileEntry
	if err := json.NewDecoder(r).Decode(&byBrand); err != nil {
		return nil, fmt.Errorf("pindou/palette: decode: %w", err)
	}
	var entries []RawEntry
	// Deterministic order: JSON object key order isn't guaranteed to
	// round-trip, but spec requires "insertion order" semantics for
	// tie-breaking, so Load sorts brand names for determinism.
	brands := make([]string, 0, len(byBrand))
	for b := range byBrand {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	for _, brand := range brands {
		for _, fe := range byBrand[brand] {
			rgb, err := parseHex6(fe.Color)
			if err != nil {
				return nil, fmt.Errorf("pindou/palette: brand %q entry %q: %w", brand, fe.Name, err)
			}
			entries = append(entries, RawEntry{Brand: brand, Name: fe.Name, RGB: rgb})
		}
	}
	return New(entries)
}

// parseHex6 parses a 6-digit uppercase hex string without a leading '#',
// prepending '#' per spec.md §6 before splitting into channels.
func parseHex6(s string) (colorspace.RGB8, error) {
	hex := "#" + strings.TrimPrefix(s, "#")
	body := strings.TrimPrefix(hex, "#")
	if len(body) != 6 {
		return colorspace.RGB8{}, fmt.Errorf("unsupported hex color length: %d", len(body))
	}
	r, err := strconv.ParseUint(body[0:2], 16, 8)
	if err != nil {
		return colorspace.RGB8{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	g, err := strconv.ParseUint(body[2:4], 16, 8)
	if err != nil {
		return colorspace.RGB8{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	b, err := strconv.ParseUint(body[4:6], 16, 8)
	if err != nil {
		return colorspace.RGB8{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return colorspace.RGB8{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}
