package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ben-ben2018/pindou/pkg/cellanalyze"
	"github.com/ben-ben2018/pindou/pkg/config"
	"github.com/ben-ben2018/pindou/pkg/griddetect"
	"github.com/ben-ben2018/pindou/pkg/imgproc"
	"github.com/ben-ben2018/pindou/pkg/palette"
	"github.com/ben-ben2018/pindou/pkg/quantize"
	"github.com/ben-ben2018/pindou/pkg/recognize"
	"github.com/ben-ben2018/pindou/pkg/render"
	"github.com/ben-ben2018/pindou/pkg/sampler"
	"github.com/ben-ben2018/pindou/pkg/store"
)

// app holds the REPL's session state: the loaded palette, the most
// recently opened source image, and the last produced grid, mirroring
// the teacher's RunCLI locals (cur image.Image, currentImagePath, ...)
// but carrying pindou's domain types instead.
type app struct {
	cfg     config.Config
	pal     *palette.Palette
	img     imgproc.Buffer
	imgPath string
	grid    *quantize.PixelGrid
	model   griddetect.GridModel
	store   *store.Store
}

func newApp() *app {
	cfg := config.Load("")
	a := &app{cfg: cfg, store: store.New()}
	if cfg.PalettePath != "" {
		if err := a.loadPalette(cfg.PalettePath); err == nil {
			fmt.Printf("Loaded palette from %s (%d colors)\n", cfg.PalettePath, a.pal.Len())
		}
	}
	return a
}

func (a *app) loadPalette(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	p, err := palette.Load(f)
	if err != nil {
		return err
	}
	a.pal = p
	return nil
}

func (a *app) cmdLoadPalette(reader *bufio.Reader) {
	path, err := PromptLineOrFzf(reader, "Palette file path [enter '/' to use fzf]: ")
	if err != nil || path == "" {
		fmt.Println("cancelled")
		return
	}
	if err := a.loadPalette(path); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load palette: %v\n", err)
		return
	}
	fmt.Printf("Loaded palette with %d colors\n", a.pal.Len())
}

func (a *app) cmdOpenImage(reader *bufio.Reader) {
	path, err := PromptLineOrFzf(reader, "Image path [enter '/' to use fzf]: ")
	if err != nil || path == "" {
		fmt.Println("cancelled")
		return
	}
	buf, err := LoadImage(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", path, err)
		return
	}
	a.img = buf
	a.imgPath = path
	fmt.Printf("Opened %s (%dx%d)\n", path, buf.Width(), buf.Height())
}

func (a *app) cmdSynthesize(reader *bufio.Reader) {
	if !a.requirePaletteAndImage() {
		return
	}
	wStr, _ := PromptLine(reader, "Target width in beads: ")
	hStr, _ := PromptLine(reader, "Target height in beads: ")
	w, werr := strconv.Atoi(strings.TrimSpace(wStr))
	h, herr := strconv.Atoi(strings.TrimSpace(hStr))
	if werr != nil || herr != nil {
		fmt.Println("invalid width/height")
		return
	}
	modeStr, _ := PromptLine(reader, "Sample mode [dominant/average/center/diagonal45/original] (default dominant): ")
	mode, err := parseSampleMode(modeStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	trimStr, _ := PromptLine(reader, "Trim 15% block edges? (y/N): ")
	edgeTrim := strings.EqualFold(strings.TrimSpace(trimStr), "y") || strings.EqualFold(strings.TrimSpace(trimStr), "yes")

	grid, err := quantize.Quantize(a.img, a.pal, quantize.Options{Width: w, Height: h, Mode: mode, EdgeTrim: edgeTrim})
	if err != nil {
		fmt.Fprintf(os.Stderr, "synthesis failed: %v\n", err)
		return
	}
	a.grid = grid
	a.model = griddetect.GridModel{}
	fmt.Printf("Synthesized a %dx%d grid\n", grid.Rows, grid.Cols)
}

func parseSampleMode(s string) (sampler.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dominant":
		return sampler.Dominant, nil
	case "average":
		return sampler.Average, nil
	case "center":
		return sampler.Center, nil
	case "diagonal45":
		return sampler.Diagonal45, nil
	case "original":
		return sampler.Original, nil
	default:
		return 0, fmt.Errorf("unknown sample mode: %q", s)
	}
}

func (a *app) cmdRecognize(reader *bufio.Reader) {
	if !a.requirePaletteAndImage() {
		return
	}
	fmt.Println("Recognizing...")
	result, err := recognize.Run(a.img, a.pal, recognize.Options{
		Weights: cellanalyze.DefaultWeights,
		Progress: func(pct int) {
			fmt.Printf("\r  %3d%%", pct)
		},
	})
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "recognition failed: %v\n", err)
		return
	}
	a.grid = result.Grid
	a.model = result.Model
	fmt.Printf("Recognized a %dx%d grid (pitch=%.1f, confidence=%.2f)\n",
		result.Grid.Rows, result.Grid.Cols, result.Model.PitchX, result.Model.Confidence)
}

func (a *app) cmdPreview() {
	if a.grid == nil {
		fmt.Println("No grid yet. Use 'y' to synthesize or 'r' to recognize one first.")
		return
	}
	fmt.Print(renderASCII(a.grid))
}

func (a *app) cmdSave(reader *bufio.Reader) {
	if a.grid == nil {
		fmt.Println("No grid yet.")
		return
	}
	out, err := PromptLine(reader, "Output PNG path: ")
	if err != nil || out == "" {
		fmt.Println("cancelled")
		return
	}
	img := render.Render(a.grid, render.Options{
		CellSizePx: 20,
		Hints:      store.DisplayHints{ShowText: true, ShowReferenceLines: true},
	})
	if err := SaveImage(out, img); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", out, err)
		return
	}
	fmt.Printf("Saved render to %s\n", out)
}

func (a *app) cmdKeep() {
	if a.grid == nil {
		fmt.Println("No grid yet.")
		return
	}
	rec := a.store.Create(store.Record{
		Grid: a.grid,
	}, time.Now().UnixMilli())
	fmt.Printf("Kept design %s\n", rec.ID)
}

func (a *app) cmdList() {
	recs := a.store.List()
	if len(recs) == 0 {
		fmt.Println("No designs kept yet.")
		return
	}
	for _, r := range recs {
		fmt.Printf("  %s  %dx%d  created=%d updated=%d\n", r.ID, r.Grid.Rows, r.Grid.Cols, r.CreatedAt, r.UpdatedAt)
	}
}

func (a *app) requirePaletteAndImage() bool {
	if a.pal == nil || a.pal.Len() == 0 {
		fmt.Println("No palette loaded. Press 'p' first.")
		return false
	}
	if !a.img.Valid() {
		fmt.Println("No image loaded. Press 'o' first.")
		return false
	}
	return true
}
