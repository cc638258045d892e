package imgproc

import (
	"encoding/binary"
	"fmt"
)

// orientationTag is the EXIF IFD0 tag for image orientation.
const orientationTag = 0x0112

// ReadJPEGOrientation scans JPEG APP1 Exif data for the IFD0 orientation
// tag and returns it (1-8), or 0 if absent/unparseable. Narrowed from the
// teacher's pkg/cli/exif.go (ExtractEXIFStruct/readEXIFTags), which reads
// the full EXIF tag set (make, model, GPS, exposure, ...) for a metadata
// display command; AutoOrient only ever needs this one tag, so the IFD
// walk here stops as soon as it finds tag 0x0112 in IFD0 instead of
// following ExifIFD/GPS sub-pointers.
func ReadJPEGOrientation(data []byte) (int, error) {
	tiffStart, err := findTIFFStart(data)
	if err != nil {
		return 0, err
	}
	return readOrientation(data, tiffStart)
}

func findTIFFStart(data []byte) (int, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return -1, fmt.Errorf("pindou/imgproc: not a jpeg")
	}
	i := 2
	for i+4 < len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA {
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && segLen >= 8 && i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
			return i + 10, nil
		}
		if segLen <= 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return -1, fmt.Errorf("pindou/imgproc: no exif segment")
}

func readOrientation(data []byte, tiffStart int) (int, error) {
	if tiffStart < 0 || tiffStart+8 > len(data) {
		return 0, fmt.Errorf("pindou/imgproc: tiff header truncated")
	}
	var order binary.ByteOrder
	switch {
	case data[tiffStart] == 'M' && data[tiffStart+1] == 'M':
		order = binary.BigEndian
	case data[tiffStart] == 'I' && data[tiffStart+1] == 'I':
		order = binary.LittleEndian
	default:
		return 0, fmt.Errorf("pindou/imgproc: unknown tiff byte order")
	}
	if order.Uint16(data[tiffStart+2:tiffStart+4]) != 0x002A {
		return 0, fmt.Errorf("pindou/imgproc: invalid tiff magic")
	}
	ifd0Off := int(order.Uint32(data[tiffStart+4 : tiffStart+8]))
	absIfd := tiffStart + ifd0Off
	if absIfd+2 > len(data) {
		return 0, fmt.Errorf("pindou/imgproc: ifd0 truncated")
	}
	nEntries := int(order.Uint16(data[absIfd : absIfd+2]))
	entriesBase := absIfd + 2
	for e := 0; e < nEntries; e++ {
		ent := entriesBase + e*12
		if ent+12 > len(data) {
			break
		}
		tag := order.Uint16(data[ent : ent+2])
		if tag != orientationTag {
			continue
		}
		// orientation is always a SHORT; value is stored in the first 2
		// bytes of the 4-byte value/offset field.
		return int(order.Uint16(data[ent+8 : ent+10])), nil
	}
	return 0, nil
}

// AutoOrient applies an EXIF orientation code (1-8) to the buffer.
// Orientation 1 or out-of-range values return the buffer unchanged.
// Grounded in the teacher's AutoOrient/FlipNRGBA/FlopNRGBA/Rotate*NRGBA
// (pkg/stdimg/auto_orient.go).
func (b Buffer) AutoOrient(orientation int) Buffer {
	if orientation <= 1 || orientation > 8 || !b.Valid() {
		return b
	}
	switch orientation {
	case 2:
		return b.flop()
	case 3:
		return b.rotate180()
	case 4:
		return b.flip()
	case 5:
		return b.rotate90CW().flop()
	case 6:
		return b.rotate90CW()
	case 7:
		return b.rotate90CCW().flop()
	case 8:
		return b.rotate90CCW()
	default:
		return b
	}
}

func (b Buffer) flip() Buffer {
	w, h := b.width, b.height
	out := newNRGBA(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setPix(out, x, h-1-y, b.At(x, y))
		}
	}
	return bufferFromNRGBA(out)
}

func (b Buffer) flop() Buffer {
	w, h := b.width, b.height
	out := newNRGBA(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setPix(out, w-1-x, y, b.At(x, y))
		}
	}
	return bufferFromNRGBA(out)
}

func (b Buffer) rotate180() Buffer {
	w, h := b.width, b.height
	out := newNRGBA(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setPix(out, w-1-x, h-1-y, b.At(x, y))
		}
	}
	return bufferFromNRGBA(out)
}

func (b Buffer) rotate90CW() Buffer {
	w, h := b.width, b.height
	out := newNRGBA(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setPix(out, h-1-y, x, b.At(x, y))
		}
	}
	return bufferFromNRGBA(out)
}

func (b Buffer) rotate90CCW() Buffer {
	w, h := b.width, b.height
	out := newNRGBA(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setPix(out, y, w-1-x, b.At(x, y))
		}
	}
	return bufferFromNRGBA(out)
}
