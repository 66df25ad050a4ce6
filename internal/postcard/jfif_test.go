package postcard

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"testing"
)

func TestEncodeJPEGSplicesJFIFSegment(t *testing.T) {
	data, err := EncodeJPEG(solidImage(32, 24), 95, 300)
	if err != nil {
		t.Fatalf("EncodeJPEG() error = %v", err)
	}

	// SOI, APP0 marker, length 16, "JFIF\0", version 1.02,
	// density in DPI, 300x300, no thumbnail.
	want := []byte{
		0xFF, 0xD8,
		0xFF, 0xE0,
		0x00, 0x10,
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x02,
		0x01,
		0x01, 0x2C,
		0x01, 0x2C,
		0x00, 0x00,
	}
	if len(data) < len(want) || !bytes.Equal(data[:len(want)], want) {
		t.Errorf("jfif header = % x; want % x", data[:len(want)], want)
	}
}

func TestEncodeJPEGPreservesStream(t *testing.T) {
	img := solidImage(40, 30)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode reference jpeg: %v", err)
	}
	plain := buf.Bytes()

	data, err := EncodeJPEG(img, 95, 300)
	if err != nil {
		t.Fatalf("EncodeJPEG() error = %v", err)
	}

	if len(data) != len(plain)+18 {
		t.Fatalf("len = %d; want reference length %d plus 18 byte segment", len(data), len(plain))
	}
	if !bytes.Equal(data[20:], plain[2:]) {
		t.Error("stream after the spliced segment differs from the reference encoding")
	}
}

func TestEncodeJPEGDecodesBack(t *testing.T) {
	data, err := EncodeJPEG(solidImage(40, 30), 95, 300)
	if err != nil {
		t.Fatalf("EncodeJPEG() error = %v", err)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode spliced jpeg: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("decoded dimensions = %dx%d; want 40x30", b.Dx(), b.Dy())
	}
}

func TestApp0SegmentDensity(t *testing.T) {
	seg := app0Segment(72)

	if seg[11] != densityDPI {
		t.Errorf("density unit = %d; want %d", seg[11], densityDPI)
	}
	if seg[12] != 0 || seg[13] != 72 || seg[14] != 0 || seg[15] != 72 {
		t.Errorf("density = % x; want 72x72", seg[12:16])
	}
}

// Helper functions

func solidImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 180, G: 120, B: 60, A: 255}), image.Point{}, draw.Src)
	return img
}
