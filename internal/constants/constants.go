// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import (
	"path/filepath"
	"strings"
)

// Output naming constants
const (
	// OutputSuffix is appended to the source file stem when naming converted files
	OutputSuffix = "_postcard"

	// OutputExtension is the extension every converted file is written with
	OutputExtension = ".jpg"
)

// SupportedExtensions maps the source file extensions (lowercase, with dot)
// the converter accepts. Anything else is skipped without being counted.
var SupportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".nef":  true,
	".raw":  true,
	".tiff": true,
	".png":  true,
}

// RawExtensions maps the extensions that go through the raw decode path
// instead of a plain image decode.
var RawExtensions = map[string]bool{
	".nef": true,
	".raw": true,
}

// NormalizedExt returns the lowercased extension of path, including the dot.
func NormalizedExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// IsSupported reports whether path has a supported source extension.
// The comparison is case-insensitive.
func IsSupported(path string) bool {
	return SupportedExtensions[NormalizedExt(path)]
}

// IsRaw reports whether path must be decoded through the raw parser.
func IsRaw(path string) bool {
	return RawExtensions[NormalizedExt(path)]
}

// OutputName returns the converted file name for a source file name:
// the original stem with the postcard suffix and a .jpg extension.
func OutputName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return stem + OutputSuffix + OutputExtension
}
