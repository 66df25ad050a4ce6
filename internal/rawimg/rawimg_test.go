package rawimg

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/jeremytorres/rawparser"
)

func TestDecodeExtractsEmbeddedJpeg(t *testing.T) {
	fake := &fakeParser{}
	d := newTestDecoder(fake)

	img, err := d.Decode("/photos/shot.NEF")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 40 || bounds.Dy() != 30 {
		t.Errorf("Decode() image = %dx%d; want 40x30", bounds.Dx(), bounds.Dy())
	}

	if !strings.HasSuffix(fake.gotInfo.DestDir, string(os.PathSeparator)) {
		t.Errorf("DestDir = %q; want trailing path separator", fake.gotInfo.DestDir)
	}
	if fake.gotInfo.Quality != extractQuality {
		t.Errorf("Quality = %d; want %d", fake.gotInfo.Quality, extractQuality)
	}

	// The intermediate file and its temp dir must be gone after decoding.
	if _, err := os.Stat(fake.jpegPath); !os.IsNotExist(err) {
		t.Errorf("extracted jpeg %s still exists after Decode", fake.jpegPath)
	}
}

func TestDecodeUnregisteredExtension(t *testing.T) {
	d := newTestDecoder(&fakeParser{})

	if _, err := d.Decode("/photos/shot.cr2"); err == nil {
		t.Error("Decode() with unregistered extension returned nil error; want error")
	}
}

func TestDecodeParserFailure(t *testing.T) {
	d := newTestDecoder(&fakeParser{fail: true})

	if _, err := d.Decode("/photos/shot.nef"); err == nil {
		t.Error("Decode() with failing parser returned nil error; want error")
	}
}

func TestNewDecoderRegistersRawExtensions(t *testing.T) {
	d := NewDecoder()

	for _, key := range []string{"nef", "raw"} {
		if d.parsers.GetParser(key) == nil {
			t.Errorf("GetParser(%q) = nil; want the NEF parser", key)
		}
	}
}

// Helper functions

// fakeParser stands in for the NEF parser: it writes a real 40x30 JPEG into
// the requested destination directory the way the real parser extracts the
// embedded preview.
type fakeParser struct {
	little   bool
	fail     bool
	jpegPath string
	gotInfo  *rawparser.RawFileInfo
}

func (f *fakeParser) ProcessFile(i *rawparser.RawFileInfo) (*rawparser.RawFile, error) {
	f.gotInfo = i
	if f.fail {
		return nil, errors.New("truncated raw file")
	}

	name := filepath.Base(i.File) + "_extracted.jpg"
	path := i.DestDir + name
	img := imaging.New(40, 30, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	if err := imaging.Save(img, path); err != nil {
		return nil, err
	}
	f.jpegPath = path

	return &rawparser.RawFile{FileName: name, JpegPath: path}, nil
}

func (f *fakeParser) SetHostIsLittleEndian(b bool) { f.little = b }
func (f *fakeParser) IsHostLittleEndian() bool     { return f.little }

func newTestDecoder(parser rawparser.RawParser) *Decoder {
	parsers := rawparser.NewRawParsers()
	parsers.Register("nef", parser)
	parsers.Register("raw", parser)
	return &Decoder{parsers: parsers}
}
