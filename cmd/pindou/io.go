package main

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ben-ben2018/pindou/pkg/imgproc"
)

// LoadImage decodes a source file into an imgproc.Buffer, auto-orienting
// JPEGs per their EXIF tag. Narrowed from the teacher's
// pkg/cli/utils.go LoadImage: the teacher returns the decoded
// image.Image plus the raw APP-segment metadata for a later "identify"
// command and a possible lossless re-save; pindou never round-trips the
// original file (it only ever renders a fresh PNG of the grid), so the
// APP-segment bookkeeping is dropped and only the orientation tag is
// applied, directly against the Buffer imgproc already exposes.
func LoadImage(path string) (imgproc.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return imgproc.Buffer{}, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return imgproc.Buffer{}, err
	}
	buf, err := imgproc.FromImage(img)
	if err != nil {
		return imgproc.Buffer{}, err
	}
	if orientation, oerr := imgproc.ReadJPEGOrientation(data); oerr == nil && orientation > 1 {
		buf = buf.AutoOrient(orientation)
	}
	return buf, nil
}

// SaveImage writes img to path, choosing PNG/JPEG by extension and
// defaulting to PNG, matching the teacher's pkg/cli/utils.go SaveImage.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	default:
		return png.Encode(f, img)
	}
}

// PromptLine displays a prompt and reads a full line from reader,
// trimmed of surrounding whitespace, matching the teacher's
// pkg/cli/utils.go PromptLine but taking an explicit reader so the
// whole REPL shares one buffered stdin.
func PromptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptLineOrFzf mirrors the teacher's PromptLineOrFzf: a bare "/"
// triggers SelectFileWithFzf(".") instead of a typed path.
func PromptLineOrFzf(reader *bufio.Reader, prompt string) (string, error) {
	line, err := PromptLine(reader, prompt)
	if err != nil {
		return "", err
	}
	if line != "/" {
		return line, nil
	}
	sel, err := SelectFileWithFzf(".")
	if err != nil || sel == "" {
		return PromptLine(reader, prompt)
	}
	fmt.Printf(" [fzf] %s\n", sel)
	return sel, nil
}
