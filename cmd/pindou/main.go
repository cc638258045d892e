// Command pindou is the bead-craft design REPL: load a palette, either
// synthesize a PixelGrid from source art (Quantizer, spec.md §4.D) or
// recognize one from a photo of a built board (Recognition Pipeline,
// spec.md §4.H), render it, and persist the result.
//
// Adapted from the teacher's pkg/cli.RunCLI single-character-command
// loop (Fepozopo/timp): the overall shape (print usage, read one rune,
// switch on it) and the open/save/update commands are kept; the
// filter-picker command ('/') is replaced with pindou's two fixed
// operations since there is no open-ended command list to browse.
package main

import (
	"bufio"
	"fmt"
	"os"
)

// Version is the build-time semantic version used by the self-update
// check. The teacher's pkg/cli/update.go references a package-level
// Version that its own retrieval pack never defines (no main.go ships
// with it); this is that missing declaration, scoped to the command
// that actually owns a version number.
const Version = "0.1.0"

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  p  - load a palette file")
	fmt.Println("  o  - open a source image for synthesis")
	fmt.Println("  y  - synthesize a grid from the open image (Quantizer)")
	fmt.Println("  r  - recognize a grid from a photo (Recognition Pipeline)")
	fmt.Println("  v  - preview the current grid as text")
	fmt.Println("  s  - save the current grid as a rendered PNG")
	fmt.Println("  k  - keep (persist) the current grid in the design store")
	fmt.Println("  l  - list persisted designs")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

func main() {
	app := newApp()
	if len(os.Args) >= 2 {
		if err := app.loadPalette(os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load palette %s: %v\n", os.Args[1], err)
		}
	}

	fmt.Println("pindou — bead-craft design tool")
	usage()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		r, _, err := reader.ReadRune()
		if err != nil {
			fmt.Fprintf(os.Stderr, "read input error: %v\n", err)
			continue
		}
		// Swallow the trailing newline the same way cli.go's ReadRune
		// loop does: single-letter commands, Enter submits.
		if r == '\n' {
			continue
		}
		// Discard the rest of the command line so a command's own prompt
		// does not read the leftover newline as an empty answer.
		_, _ = reader.ReadString('\n')

		switch r {
		case 'p':
			app.cmdLoadPalette(reader)
		case 'o':
			app.cmdOpenImage(reader)
		case 'y':
			app.cmdSynthesize(reader)
		case 'r':
			app.cmdRecognize(reader)
		case 'v':
			app.cmdPreview()
		case 's':
			app.cmdSave(reader)
		case 'k':
			app.cmdKeep()
		case 'l':
			app.cmdList()
		case 'u':
			if err := CheckForUpdates(reader); err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			}
		case 'h':
			usage()
		case 'q':
			fmt.Println("Exiting...")
			return
		default:
			// ignore other keys, mirroring the teacher's loop
		}
	}
}
