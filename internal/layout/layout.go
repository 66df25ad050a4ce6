// Package layout decides how a source photograph is placed on the fixed
// postcard canvas: whether it is rotated, how large the scaled content is,
// where it sits, and the geometry of the caption strip below it.
package layout

import (
	"fmt"
	"image/color"
	"math"
)

// Spec holds the immutable design parameters of the postcard. It is built
// once at startup from the embedded layout file and passed explicitly to
// every component that needs it.
type Spec struct {
	CanvasWidth  int
	CanvasHeight int

	// StripRatio is the fraction of the canvas height reserved for the
	// caption strip at the bottom.
	StripRatio float64

	// RotateGain is the factor by which the rotated fit must beat the
	// unrotated fit before a landscape source is turned 90 degrees.
	RotateGain float64

	Background color.NRGBA
	TextColor  color.NRGBA

	// TextMargin is the left inset of the caption lines, in pixels.
	TextMargin int

	// FontSize is the caption size in points at 72 DPI, i.e. pixels.
	FontSize float64

	JPEGQuality int
	DPI         int
}

// Validate checks the invariants the planner relies on.
func (s Spec) Validate() error {
	if s.CanvasWidth <= 0 || s.CanvasHeight <= 0 {
		return fmt.Errorf("canvas dimensions must be positive, got %dx%d", s.CanvasWidth, s.CanvasHeight)
	}
	if s.StripRatio <= 0 || s.StripRatio >= 1 {
		return fmt.Errorf("strip ratio must be in (0, 1), got %g", s.StripRatio)
	}
	if s.RotateGain < 1 {
		return fmt.Errorf("rotation gain must be at least 1, got %g", s.RotateGain)
	}
	if s.JPEGQuality < 1 || s.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be within [1, 100], got %d", s.JPEGQuality)
	}
	if s.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", s.DPI)
	}
	return nil
}

// Plan describes the placement of one source image on the canvas.
type Plan struct {
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`

	// Rotated records whether the source was turned 90 degrees before
	// scaling.
	Rotated bool `json:"rotated"`

	ContentWidth   int `json:"content_width"`
	ContentHeight  int `json:"content_height"`
	ContentOffsetX int `json:"content_offset_x"`
	ContentOffsetY int `json:"content_offset_y"`

	// StripTop is the y coordinate where the caption strip begins. The
	// strip sits directly below the content, so shorter content gives the
	// captions more room.
	StripTop    int `json:"strip_top"`
	StripHeight int `json:"strip_height"`
}

// ShouldRotate reports whether a landscape source (width > height) fills
// the content area meaningfully better when rotated 90 degrees. Portrait
// and square sources are never rotated. The rotated fit must exceed the
// unrotated fit by more than RotateGain, so a marginal win keeps the
// original orientation and near-square shots are not flipped unexpectedly.
func (s Spec) ShouldRotate(width, height int) bool {
	if width <= height {
		return false
	}

	availW := float64(s.CanvasWidth)
	availH := float64(s.CanvasHeight) * (1 - s.StripRatio)

	unrotated := math.Min(availW/float64(width), availH/float64(height))
	rotated := math.Min(availW/float64(height), availH/float64(width))

	return rotated > unrotated*s.RotateGain
}

// ContentSize computes the largest dimensions that fit the content area
// (the canvas minus the caption strip) while preserving the source aspect
// ratio. Results are floored and never smaller than 1x1.
func (s Spec) ContentSize(width, height int) (int, int) {
	availW := s.CanvasWidth
	availH := int(float64(s.CanvasHeight) * (1 - s.StripRatio))

	scale := math.Min(float64(availW)/float64(width), float64(availH)/float64(height))

	newW := int(float64(width) * scale)
	newH := int(float64(height) * scale)
	return max(newW, 1), max(newH, 1)
}

// PlanCanvas places content of the given size on the canvas: horizontally
// centered, flush with the top edge, with the caption strip starting at
// the content's bottom edge. The caller fills in Rotated.
func (s Spec) PlanCanvas(contentWidth, contentHeight int) Plan {
	return Plan{
		CanvasWidth:    s.CanvasWidth,
		CanvasHeight:   s.CanvasHeight,
		ContentWidth:   contentWidth,
		ContentHeight:  contentHeight,
		ContentOffsetX: (s.CanvasWidth - contentWidth) / 2,
		ContentOffsetY: 0,
		StripTop:       contentHeight,
		StripHeight:    int(float64(s.CanvasHeight) * s.StripRatio),
	}
}
