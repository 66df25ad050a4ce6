package caption

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceDPI is the resolution faces are sized at. At 72 DPI one point equals
// one pixel, so the configured font size is effectively a pixel height.
const faceDPI = 72

// FaceProvider loads a caption face at the requested point size.
type FaceProvider func(size float64) (font.Face, error)

// Source resolves caption faces through an ordered provider chain: any
// configured font file first, then the usual system faces, then the
// embedded Go Regular face. Resolve cannot fail because the chain ends in
// a built-in bitmap face.
type Source struct {
	providers []FaceProvider
}

// systemFontPaths lists the scalable faces tried on the usual platforms.
var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// NewSource builds the provider chain. Extra paths are tried first; empty
// strings are skipped so an unset configuration costs nothing. Missing
// files surface at resolve time, not here.
func NewSource(extraPaths ...string) *Source {
	var providers []FaceProvider
	for _, path := range extraPaths {
		if path != "" {
			providers = append(providers, fileFace(path))
		}
	}
	for _, path := range systemFontPaths {
		providers = append(providers, fileFace(path))
	}
	providers = append(providers, parsedFace(goregular.TTF))

	return &Source{providers: providers}
}

// Resolve returns a face for the given point size and reports whether it is
// scalable. When every provider fails the fixed 7x13 bitmap face is
// returned, which only covers ASCII and ignores the requested size.
func (s *Source) Resolve(size float64) (font.Face, bool) {
	for _, provide := range s.providers {
		face, err := provide(size)
		if err == nil {
			return face, true
		}
	}
	return basicfont.Face7x13, false
}

func fileFace(path string) FaceProvider {
	return func(size float64) (font.Face, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", path, err)
		}
		return newFace(data, size)
	}
}

func parsedFace(data []byte) FaceProvider {
	return func(size float64) (font.Face, error) {
		return newFace(data, size)
	}
}

func newFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     faceDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
