// Package postcard composes finished postcard images from source
// photographs: decode, plan, composite, caption, encode.
package postcard

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"

	"github.com/disintegration/imaging"

	"github.com/9Echo/Postcards/internal/constants"
	"github.com/9Echo/Postcards/internal/layout"
	"github.com/9Echo/Postcards/internal/metadata"
)

// CaptionDrawer renders caption text onto a composed canvas.
type CaptionDrawer interface {
	Draw(dst draw.Image, plan layout.Plan, meta metadata.CaptureMetadata) error
}

// RawDecoder decodes camera raw files.
type RawDecoder interface {
	Decode(path string) (image.Image, error)
}

// Composer builds one postcard per source file.
type Composer struct {
	spec     layout.Spec
	captions CaptionDrawer
	raw      RawDecoder
}

func New(spec layout.Spec, captions CaptionDrawer, raw RawDecoder) *Composer {
	return &Composer{spec: spec, captions: captions, raw: raw}
}

// Inspection describes how one source file would be converted, without
// writing anything.
type Inspection struct {
	SourceWidth  int                      `json:"source_width"`
	SourceHeight int                      `json:"source_height"`
	Plan         layout.Plan              `json:"plan"`
	Metadata     metadata.CaptureMetadata `json:"metadata"`
}

// Compose converts the file at srcPath into a postcard JPEG at dstPath.
// Nothing is written when the source cannot be decoded or the result not
// encoded. A caption failure downgrades to a warning and the postcard is
// written without text.
func (c *Composer) Compose(srcPath, dstPath string) error {
	img, err := c.decode(srcPath)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", srcPath, err)
	}

	meta := metadata.FromFile(srcPath)

	bounds := img.Bounds()
	plan := c.plan(bounds.Dx(), bounds.Dy())
	if plan.Rotated {
		img = imaging.Rotate90(img)
	}

	content := imaging.Resize(img, plan.ContentWidth, plan.ContentHeight, imaging.Lanczos)

	canvas := imaging.New(plan.CanvasWidth, plan.CanvasHeight, c.spec.Background)
	canvas = imaging.Paste(canvas, content, image.Pt(plan.ContentOffsetX, plan.ContentOffsetY))

	if err := c.captions.Draw(canvas, plan, meta); err != nil {
		log.Printf("warning: skipping caption for %s: %v", srcPath, err)
	}

	encoded, err := EncodeJPEG(canvas, c.spec.JPEGQuality, c.spec.DPI)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", srcPath, err)
	}

	if err := os.WriteFile(dstPath, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dstPath, err)
	}
	return nil
}

// Inspect reports the layout plan and caption metadata for one source file.
func (c *Composer) Inspect(srcPath string) (*Inspection, error) {
	img, err := c.decode(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", srcPath, err)
	}

	bounds := img.Bounds()
	return &Inspection{
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
		Plan:         c.plan(bounds.Dx(), bounds.Dy()),
		Metadata:     metadata.FromFile(srcPath),
	}, nil
}

// plan computes the canvas placement for a source of the given dimensions,
// applying the rotation decision before fitting.
func (c *Composer) plan(width, height int) layout.Plan {
	rotated := c.spec.ShouldRotate(width, height)
	if rotated {
		width, height = height, width
	}

	contentW, contentH := c.spec.ContentSize(width, height)
	plan := c.spec.PlanCanvas(contentW, contentH)
	plan.Rotated = rotated
	return plan
}

func (c *Composer) decode(path string) (image.Image, error) {
	if constants.IsRaw(path) {
		return c.raw.Decode(path)
	}
	return imaging.Open(path, imaging.AutoOrientation(true))
}
