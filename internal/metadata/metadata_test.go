package metadata

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/rwcarlsen/goexif/exif"
)

func TestExtractDateText(t *testing.T) {
	tests := []struct {
		name string
		tags TagTable
		want string
	}{
		{"nil table", nil, FallbackDate},
		{"empty table", TagTable{}, FallbackDate},
		{"empty value", TagTable{tagDateTimeOriginal: ""}, FallbackDate},
		{"valid timestamp", TagTable{tagDateTimeOriginal: "2024:03:15 10:30:00"}, "Mar 15, 2024"},
		{"single digit day is padded", TagTable{tagDateTimeOriginal: "2023:12:05 08:00:01"}, "Dec 05, 2023"},
		{"unparseable passes through", TagTable{tagDateTimeOriginal: "2024-03-15 10:30"}, "2024-03-15 10:30"},
		{"garbage passes through", TagTable{tagDateTimeOriginal: "not a date"}, "not a date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.tags)
			if got.DateText != tt.want {
				t.Errorf("Extract(%v).DateText = %q; want %q", tt.tags, got.DateText, tt.want)
			}
		})
	}
}

func TestExtractLocationText(t *testing.T) {
	tests := []struct {
		name string
		tags TagTable
		want string
	}{
		{"nil table", nil, FallbackLocation},
		{"no gps tags", TagTable{tagDateTimeOriginal: "2024:03:15 10:30:00"}, FallbackLocation},
		{"gps ifd pointer", TagTable{tagGPSPointer: "26"}, LocationWithGPS},
		{"gps latitude", TagTable{tagGPSLatitude: `"31/1","10/1","0/1"`}, LocationWithGPS},
		{"gps longitude", TagTable{tagGPSLongitude: `"121/1","28/1","0/1"`}, LocationWithGPS},
		{"empty gps values", TagTable{tagGPSPointer: "", tagGPSLatitude: ""}, FallbackLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.tags)
			if got.LocationText != tt.want {
				t.Errorf("Extract(%v).LocationText = %q; want %q", tt.tags, got.LocationText, tt.want)
			}
		})
	}
}

func TestTagsFromExifNil(t *testing.T) {
	if got := TagsFromExif(nil); got != nil {
		t.Errorf("TagsFromExif(nil) = %v; want nil", got)
	}
}

func TestTagsFromExifDecodedBlock(t *testing.T) {
	x, err := exif.Decode(bytes.NewReader(buildExif("2024:03:15 10:30:00", true)))
	if err != nil {
		t.Fatalf("failed to decode test exif block: %v", err)
	}

	tags := TagsFromExif(x)
	if tags[tagDateTimeOriginal] != "2024:03:15 10:30:00" {
		t.Errorf("tags[%s] = %q; want %q", tagDateTimeOriginal, tags[tagDateTimeOriginal], "2024:03:15 10:30:00")
	}
	if tags[tagGPSPointer] == "" {
		t.Errorf("tags[%s] is empty; want the sub-IFD offset", tagGPSPointer)
	}

	meta := Extract(tags)
	if meta.DateText != "Mar 15, 2024" {
		t.Errorf("DateText = %q; want %q", meta.DateText, "Mar 15, 2024")
	}
	if meta.LocationText != LocationWithGPS {
		t.Errorf("LocationText = %q; want %q", meta.LocationText, LocationWithGPS)
	}
}

func TestTagsFromExifWithoutGPS(t *testing.T) {
	x, err := exif.Decode(bytes.NewReader(buildExif("2021:07:01 18:45:59", false)))
	if err != nil {
		t.Fatalf("failed to decode test exif block: %v", err)
	}

	meta := Extract(TagsFromExif(x))
	if meta.DateText != "Jul 01, 2021" {
		t.Errorf("DateText = %q; want %q", meta.DateText, "Jul 01, 2021")
	}
	if meta.LocationText != FallbackLocation {
		t.Errorf("LocationText = %q; want %q", meta.LocationText, FallbackLocation)
	}
}

func TestFromFileMissing(t *testing.T) {
	meta := FromFile("/does/not/exist.jpg")
	if meta.DateText != FallbackDate || meta.LocationText != FallbackLocation {
		t.Errorf("FromFile on missing file = %+v; want fallbacks", meta)
	}
}

// Helper functions

// buildExif assembles a minimal little-endian TIFF block the way cameras
// lay out their EXIF payloads: IFD0 holding pointers to an Exif sub-IFD
// with DateTimeOriginal and, optionally, a GPS sub-IFD.
func buildExif(dateTime string, withGPS bool) []byte {
	const (
		exifIFDPointerTag    = 0x8769
		gpsInfoIFDPointerTag = 0x8825
		dateTimeOriginalTag  = 0x9003
		gpsVersionIDTag      = 0x0000

		typeByte  = 1
		typeASCII = 2
		typeLong  = 4
	)

	entries := 1
	if withGPS {
		entries++
	}

	// IFD0 starts right after the 8 byte header.
	exifIFDOffset := 8 + 2 + entries*12 + 4
	dateOffset := exifIFDOffset + 2 + 12 + 4
	gpsIFDOffset := dateOffset + len(dateTime) + 1

	buf := new(bytes.Buffer)
	buf.WriteString("II")
	writeLE(buf, uint16(42))
	writeLE(buf, uint32(8))

	writeLE(buf, uint16(entries))
	writeEntry(buf, exifIFDPointerTag, typeLong, 1, uint32(exifIFDOffset))
	if withGPS {
		writeEntry(buf, gpsInfoIFDPointerTag, typeLong, 1, uint32(gpsIFDOffset))
	}
	writeLE(buf, uint32(0))

	writeLE(buf, uint16(1))
	writeEntry(buf, dateTimeOriginalTag, typeASCII, uint32(len(dateTime)+1), uint32(dateOffset))
	writeLE(buf, uint32(0))
	buf.WriteString(dateTime)
	buf.WriteByte(0)

	if withGPS {
		writeLE(buf, uint16(1))
		writeEntry(buf, gpsVersionIDTag, typeByte, 4, binary.LittleEndian.Uint32([]byte{2, 3, 0, 0}))
		writeLE(buf, uint32(0))
	}

	return buf.Bytes()
}

func writeEntry(buf *bytes.Buffer, tag, typ uint16, count, value uint32) {
	writeLE(buf, tag)
	writeLE(buf, typ)
	writeLE(buf, count)
	writeLE(buf, value)
}

func writeLE(buf *bytes.Buffer, v any) {
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
}
