// Package roi infers how much input an effect must read to produce a
// requested output region.
package roi

import (
	"github.com/erinpentecost/wolffx/internal/raster"
)

// Rule maps a requested output region to the input region it depends on.
type Rule interface {
	Grow(requested raster.Rect) raster.Rect
}

// Identity is for effects that only read the pixels they write.
type Identity struct{}

func (Identity) Grow(requested raster.Rect) raster.Rect { return requested }

// Unbounded is for effects whose output pixels may depend on any input
// pixel.
type Unbounded struct{}

func (Unbounded) Grow(raster.Rect) raster.Rect { return raster.InfiniteRect() }

// Radius grows the region by a square kernel of 2r+1 pixels, where r is
// the largest of Radii. Negative radii count as zero.
type Radius struct {
	Radii []int
}

// MaxRadius returns the radius that drives the growth.
func (r Radius) MaxRadius() int {
	m := 0
	for _, v := range r.Radii {
		m = max(m, v)
	}
	return m
}

// KernelSize is the side of the square kernel, 2r+1.
func (r Radius) KernelSize() int {
	return 2*r.MaxRadius() + 1
}

func (r Radius) Grow(requested raster.Rect) raster.Rect {
	if r.MaxRadius() == 0 {
		return requested
	}
	k := r.KernelSize()
	return requested.Grow(k, k)
}
