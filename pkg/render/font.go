package render

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// loadFace mirrors the teacher's Annotate font-fallback chain
// (pkg/stdimg/annotate.go): an optional TTF/OTF path is parsed via
// opentype, falling back to the built-in basic face on any failure
// (missing file, unparsable font, face construction error) rather than
// failing the whole render.
func loadFace(fontPath string, sizePt float64) font.Face {
	if fontPath == "" {
		return basicfont.Face7x13
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return basicfont.Face7x13
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: sizePt, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
