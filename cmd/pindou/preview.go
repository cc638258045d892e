package main

import (
	"fmt"
	"strings"

	"github.com/ben-ben2018/pindou/pkg/quantize"
)

// renderASCII is the replacement for the teacher's terminal image
// preview (pkg/cli/terminal_preview.go, which shells out to kitty/iTerm2/
// sixel/chafa to paint a raster inline). No SPEC_FULL component renders
// to a terminal graphics protocol, so the grid is shown as a row-major
// grid of two-space cells colored with a 24-bit ANSI background escape
// (empty cells print as a bare "··"), which every terminal in the
// teacher's target environment understands without a helper binary.
func renderASCII(grid *quantize.PixelGrid) string {
	var b strings.Builder
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			cell := grid.At(row, col)
			if !cell.Occupied {
				b.WriteString("\x1b[0m··")
				continue
			}
			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm  ", cell.RGB.R, cell.RGB.G, cell.RGB.B)
		}
		b.WriteString("\x1b[0m\n")
	}
	return b.String()
}
