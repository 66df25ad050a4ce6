package postcard

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/jpeg"
)

// densityDPI marks the APP0 density fields as dots per inch.
const densityDPI = 1

var soiMarker = []byte{0xFF, 0xD8}

// EncodeJPEG encodes img at the given quality and stamps a JFIF APP0
// segment carrying the print density. The standard library encoder emits
// no APP0, so the segment is spliced in directly after the SOI marker.
func EncodeJPEG(img image.Image, quality, dpi int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	data := buf.Bytes()
	if !bytes.HasPrefix(data, soiMarker) {
		return nil, fmt.Errorf("encoded stream does not start with an SOI marker")
	}

	app0 := app0Segment(dpi)
	out := make([]byte, 0, len(data)+len(app0))
	out = append(out, data[:len(soiMarker)]...)
	out = append(out, app0...)
	out = append(out, data[len(soiMarker):]...)
	return out, nil
}

// app0Segment assembles a JFIF 1.02 APP0 segment with equal horizontal and
// vertical pixel density and no thumbnail.
func app0Segment(dpi int) []byte {
	seg := make([]byte, 18)
	seg[0], seg[1] = 0xFF, 0xE0
	binary.BigEndian.PutUint16(seg[2:4], 16) // length, excluding the marker itself
	copy(seg[4:9], "JFIF\x00")
	seg[9], seg[10] = 1, 2 // version 1.02
	seg[11] = densityDPI
	binary.BigEndian.PutUint16(seg[12:14], uint16(dpi))
	binary.BigEndian.PutUint16(seg[14:16], uint16(dpi))
	seg[16], seg[17] = 0, 0 // thumbnail dimensions
	return seg
}
