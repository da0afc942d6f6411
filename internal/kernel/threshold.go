package kernel

import (
	"github.com/erinpentecost/wolffx/internal/raster"
)

// Luma is the fixed-point Rec.601 luma of a BGR pixel, 14 bits of
// fraction, rounded.
func Luma(b, g, r uint8) uint8 {
	return uint8((int(b)*1868 + int(g)*9617 + int(r)*4899 + 1<<13) >> 14)
}

// LumaPlane converts img to a single luma plane.
func LumaPlane(img *raster.Image) *raster.Plane {
	p := raster.NewPlane(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := img.PixOffset(x, y)
			p.Pix[y*img.Width+x] = Luma(img.Pix[i+raster.B], img.Pix[i+raster.G], img.Pix[i+raster.R])
		}
	}
	return p
}

// LumaThreshold binarizes img by luma. Pixels with lo <= luma <= hi are
// white and the rest black; invert swaps the two. Alpha is copied from img
// when keepAlpha is set, otherwise it is opaque.
func LumaThreshold(img *raster.Image, lo, hi float64, invert, keepAlpha bool) *raster.Image {
	inBand, outBand := uint8(255), uint8(0)
	if invert {
		inBand, outBand = outBand, inBand
	}
	luma := LumaPlane(img)
	for i, v := range luma.Pix {
		if float64(v) >= lo && float64(v) <= hi {
			luma.Pix[i] = inBand
		} else {
			luma.Pix[i] = outBand
		}
	}
	alpha := raster.UniformPlane(img.Width, img.Height, 255)
	if keepAlpha {
		alpha = Split(img)[raster.A]
	}
	return Merge([raster.Channels]*raster.Plane{luma, luma, luma, alpha})
}
