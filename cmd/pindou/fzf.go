package main

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// SelectFileWithFzf launches fzf over the image files under startDir and
// returns the selected path. Narrowed from the teacher's
// pkg/cli/fzf.go SelectFileWithFzf: the teacher picks a terminal-aware
// --preview renderer (kitty/iTerm2/sixel/chafa graphics) because its REPL
// shows a live image preview; pindou's REPL never paints pixel previews
// to the terminal (see preview.go's text-only replacement), so the
// --preview command here is a plain chafa-or-nothing fallback instead of
// the teacher's terminal-capability detection chain.
func SelectFileWithFzf(startDir string) (string, error) {
	quotedDir := strconv.Quote(startDir)
	cmdStr := fmt.Sprintf(
		"find %s -type f \\( -iname '*.jpg' -o -iname '*.jpeg' -o -iname '*.png' -o -iname '*.gif' \\) | fzf --height 100%% --border --prompt='Files> ' --preview='chafa --fill=block --symbols=block -s 60x30 {} 2>/dev/null'",
		quotedDir,
	)
	cmd := exec.Command("bash", "-lc", cmdStr)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}
	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}
