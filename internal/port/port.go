// Package port binds host images to an effect's input slots.
package port

import (
	"image"

	"github.com/erinpentecost/wolffx/internal/raster"
)

// Binding is one input slot at invocation time. Image must not be read
// unless Valid is set.
type Binding struct {
	Image *raster.Image
	// Rect is where Image sits inside the output canvas.
	Rect  raster.Rect
	Valid bool
}

// Bind returns a valid binding with img at the canvas origin.
func Bind(img *raster.Image) Binding {
	if img == nil {
		return Binding{}
	}
	return Binding{
		Image: img,
		Rect:  raster.Rect{Width: float64(img.Width), Height: float64(img.Height)},
		Valid: true,
	}
}

// Args is the set of bindings for one invocation.
type Args struct {
	// Size of the output canvas. Zero means "same as the input".
	Size     image.Point
	Bindings []Binding
}

// NewArgs binds images to ports in order. Nil images leave the port
// unbound.
func NewArgs(images ...*raster.Image) Args {
	a := Args{Bindings: make([]Binding, len(images))}
	for i, img := range images {
		a.Bindings[i] = Bind(img)
	}
	return a
}

func (a Args) Len() int { return len(a.Bindings) }

// Invalid reports whether port i is out of range, unbound or flagged
// invalid.
func (a Args) Invalid(i int) bool {
	if i < 0 || i >= len(a.Bindings) {
		return true
	}
	b := a.Bindings[i]
	return !b.Valid || b.Image == nil
}

// Get returns the image bound to port i, or nil when Invalid(i).
func (a Args) Get(i int) *raster.Image {
	if a.Invalid(i) {
		return nil
	}
	return a.Bindings[i].Image
}

// Rect returns the placement of port i. Invalid ports report an empty rect.
func (a Args) Rect(i int) raster.Rect {
	if a.Invalid(i) {
		return raster.Rect{}
	}
	return a.Bindings[i].Rect
}

// CanvasSize resolves the output size: Size when set, else the size of the
// image on port i.
func (a Args) CanvasSize(i int) image.Point {
	if a.Size != (image.Point{}) {
		return a.Size
	}
	if img := a.Get(i); img != nil {
		return image.Pt(img.Width, img.Height)
	}
	return image.Point{}
}
