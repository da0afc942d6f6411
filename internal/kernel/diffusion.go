package kernel

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/erinpentecost/wolffx/internal/raster"
)

// Lighten returns the per-channel maximum of a and b, which must be the
// same size.
func Lighten(a, b *raster.Image) *raster.Image {
	out := raster.New(a.Width, a.Height)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			i := a.PixOffset(x, y)
			j := b.PixOffset(x, y)
			o := out.PixOffset(x, y)
			for c := 0; c < raster.Channels; c++ {
				out.Pix[o+c] = max(a.Pix[i+c], b.Pix[j+c])
			}
		}
	}
	return out
}

// Mix linearly interpolates from a (t=0) to b (t=1) per channel.
func Mix(a, b *raster.Image, t float64) *raster.Image {
	out := raster.New(a.Width, a.Height)
	n := a.Width * raster.Channels
	fa := make([]float64, n)
	fb := make([]float64, n)
	for y := 0; y < a.Height; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+n]
		rb := b.Pix[y*b.Stride : y*b.Stride+n]
		for i := range fa {
			fa[i] = float64(ra[i])
			fb[i] = float64(rb[i])
		}
		vecmath.ScaleBlock(fa, fa, 1-t)
		vecmath.ScaleBlock(fb, fb, t)
		vecmath.AddBlockInPlace(fa, fb)
		dst := out.Pix[y*out.Stride : y*out.Stride+n]
		for i, v := range fa {
			dst[i] = clampByte(v)
		}
	}
	return out
}

// Diffuse is a glow: the image is blurred, lighten-blended with itself and
// mixed back over the original by mix. A non-positive sigma or mix returns
// a copy of img.
func Diffuse(img *raster.Image, sigma, mix float64) *raster.Image {
	if sigma <= 0 || mix <= 0 {
		return img.Clone()
	}
	blurred := GaussianBlur(img, sigma)
	return Mix(img, Lighten(img, blurred), min(mix, 1))
}
