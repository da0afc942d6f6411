package kernel

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/erinpentecost/wolffx/internal/raster"
)

// Translation is the affine matrix that moves content by (dx, dy).
func Translation(dx, dy float64) f64.Aff3 {
	return f64.Aff3{
		1, 0, dx,
		0, 1, dy,
	}
}

// ShiftPlane moves p by the integer part of m's translation. Samples that
// come in from outside the plane are zero.
func ShiftPlane(p *raster.Plane, m f64.Aff3) *raster.Plane {
	dx := int(math.Trunc(m[2]))
	dy := int(math.Trunc(m[5]))
	out := raster.NewPlane(p.Width, p.Height)
	for y := 0; y < p.Height; y++ {
		sy := y - dy
		if sy < 0 || sy >= p.Height {
			continue
		}
		for x := 0; x < p.Width; x++ {
			sx := x - dx
			if sx < 0 || sx >= p.Width {
				continue
			}
			out.Pix[y*p.Width+x] = p.Pix[sy*p.Width+sx]
		}
	}
	return out
}

// Separate pulls the red plane up-left by (h, v) pixels and pushes the
// blue plane down-right by the same amount. Green and alpha stay put.
func Separate(img *raster.Image, h, v int) *raster.Image {
	planes := Split(img)
	planes[raster.R] = ShiftPlane(planes[raster.R], Translation(float64(-h), float64(-v)))
	planes[raster.B] = ShiftPlane(planes[raster.B], Translation(float64(h), float64(v)))
	return Merge(planes)
}
