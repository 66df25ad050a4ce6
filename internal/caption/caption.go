// Package caption renders the date and location lines into the strip area
// of a postcard canvas.
package caption

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/9Echo/Postcards/internal/layout"
	"github.com/9Echo/Postcards/internal/metadata"
)

// Renderer draws caption text according to the postcard design parameters.
type Renderer struct {
	spec  layout.Spec
	fonts *Source
}

func NewRenderer(spec layout.Spec, fonts *Source) *Renderer {
	return &Renderer{spec: spec, fonts: fonts}
}

// Draw renders the capture date and location onto the caption strip. The
// date baseline sits a quarter of the way into the strip, the location
// halfway, both inset from the left by the configured margin. When only
// the bitmap fallback face is available the text is folded to ASCII first.
func (r *Renderer) Draw(dst draw.Image, plan layout.Plan, meta metadata.CaptureMetadata) error {
	if plan.StripHeight <= 0 {
		return fmt.Errorf("caption strip has no room: height %d", plan.StripHeight)
	}

	face, scalable := r.fonts.Resolve(r.spec.FontSize)
	defer face.Close()

	date, location := meta.DateText, meta.LocationText
	if !scalable {
		date, location = FoldASCII(date), FoldASCII(location)
	}

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.spec.TextColor),
		Face: face,
	}

	drawer.Dot = fixed.P(r.spec.TextMargin, plan.StripTop+plan.StripHeight/4)
	drawer.DrawString(date)

	drawer.Dot = fixed.P(r.spec.TextMargin, plan.StripTop+plan.StripHeight/2)
	drawer.DrawString(location)

	return nil
}
