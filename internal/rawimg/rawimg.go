// Package rawimg decodes camera raw files by extracting the full size JPEG
// preview the camera embeds in them.
package rawimg

import (
	"encoding/binary"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jeremytorres/rawparser"

	"github.com/9Echo/Postcards/internal/constants"
)

// extractQuality is the quality the embedded JPEG is re-encoded at while
// being pulled out of the raw container.
const extractQuality = 100

// Decoder turns raw files into decoded images. Parsers are looked up by
// lowercased extension without the dot.
type Decoder struct {
	parsers *rawparser.RawParsers
}

// NewDecoder registers the NEF parser for both raw extensions. Generic
// .raw files are TIFF based containers like NEF and share its parser.
func NewDecoder() *Decoder {
	nef, _ := rawparser.NewNefParser(hostIsLittleEndian())

	parsers := rawparser.NewRawParsers()
	for ext := range constants.RawExtensions {
		parsers.Register(strings.TrimPrefix(ext, "."), nef)
	}

	return &Decoder{parsers: parsers}
}

// Decode extracts the embedded JPEG from the raw file at path into a
// temporary directory, decodes it, and cleans the intermediate file up.
func (d *Decoder) Decode(path string) (image.Image, error) {
	key := strings.TrimPrefix(constants.NormalizedExt(path), ".")
	parser := d.parsers.GetParser(key)
	if parser == nil {
		return nil, fmt.Errorf("no raw parser registered for %q", key)
	}

	tmpDir, err := os.MkdirTemp("", "postcards-raw-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.Printf("warning: failed to remove %s: %v", tmpDir, err)
		}
	}()

	// The parser concatenates DestDir with the file name verbatim, so the
	// trailing separator is required.
	info := &rawparser.RawFileInfo{
		File:    path,
		DestDir: tmpDir + string(os.PathSeparator),
		Quality: extractQuality,
	}

	rawFile, err := parser.ProcessFile(info)
	if err != nil {
		return nil, fmt.Errorf("failed to parse raw file %s: %w", path, err)
	}

	img, err := imaging.Open(rawFile.JpegPath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedded jpeg of %s: %w", path, err)
	}
	return img, nil
}

// hostIsLittleEndian reports the byte order of the running machine, which
// the parser needs to interpret the raw container's TIFF values.
func hostIsLittleEndian() bool {
	return binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 1
}
