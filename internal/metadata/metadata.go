// Package metadata derives the caption text printed on a postcard from the
// EXIF block of the source photograph.
package metadata

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Tag names read from a decoded tag table.
const (
	tagDateTimeOriginal = string(exif.DateTimeOriginal)
	tagGPSPointer       = string(exif.GPSInfoIFDPointer)
	tagGPSLatitude      = string(exif.GPSLatitude)
	tagGPSLongitude     = string(exif.GPSLongitude)
)

// Fallback and placeholder caption values. The location placeholder marks
// photos that carry GPS data; resolving coordinates to a place name needs a
// geocoding service and is deliberately not done here.
const (
	FallbackDate     = "2024.01.01"
	FallbackLocation = "SHENZHEN"
	LocationWithGPS  = "拍摄地点"
)

// exifTimeLayout is the timestamp format cameras write, captionTimeLayout
// the human-readable form printed on the postcard.
const (
	exifTimeLayout    = "2006:01:02 15:04:05"
	captionTimeLayout = "Jan 02, 2006"
)

// TagTable maps EXIF tag names to their raw string values. A nil table
// means the source carried no readable metadata block at all.
type TagTable map[string]string

// CaptureMetadata is the formatted caption text derived from one source
// image. Fields hold fallback values when the underlying tags are absent,
// so both are always printable.
type CaptureMetadata struct {
	DateText     string `json:"date_text"`
	LocationText string `json:"location_text"`
}

// FromFile reads the caption metadata embedded in the image at path. Any
// read or parse failure degrades to the fallback values; missing metadata
// never fails a conversion.
func FromFile(path string) CaptureMetadata {
	f, err := os.Open(path)
	if err != nil {
		return Extract(nil)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return Extract(nil)
	}
	return Extract(TagsFromExif(x))
}

// TagsFromExif flattens a decoded EXIF block into a TagTable. A nil input
// yields a nil table.
func TagsFromExif(x *exif.Exif) TagTable {
	if x == nil {
		return nil
	}
	w := &tagWalker{tags: make(TagTable)}
	// Walk only propagates the walker's error and tagWalker never returns one.
	_ = x.Walk(w)
	return w.tags
}

type tagWalker struct {
	tags TagTable
}

// Walk implements exif.Walker. It prefers the plain string value of a tag
// and falls back to the verbose form for non-string formats.
func (w *tagWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if s, err := tag.StringVal(); err == nil {
		w.tags[string(name)] = s
	} else {
		w.tags[string(name)] = tag.String()
	}
	return nil
}

// Extract derives caption text from a tag table. It never fails: a missing
// or empty tag degrades to the fallback for that field only.
func Extract(tags TagTable) CaptureMetadata {
	return CaptureMetadata{
		DateText:     dateText(tags),
		LocationText: locationText(tags),
	}
}

func dateText(tags TagTable) string {
	raw := tags[tagDateTimeOriginal]
	if raw == "" {
		return FallbackDate
	}
	t, err := time.Parse(exifTimeLayout, raw)
	if err != nil {
		// Present but not in EXIF form, show it as-is.
		return raw
	}
	return t.Format(captionTimeLayout)
}

func locationText(tags TagTable) string {
	for _, name := range []string{tagGPSPointer, tagGPSLatitude, tagGPSLongitude} {
		if tags[name] != "" {
			return LocationWithGPS
		}
	}
	return FallbackLocation
}
