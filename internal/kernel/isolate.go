package kernel

import (
	"github.com/erinpentecost/wolffx/internal/raster"
)

// ChannelIndex maps a 1-based logical channel (1=R, 2=G, 3=B, 4=A) to its
// storage index. Selectors outside [1, 4] are clamped.
func ChannelIndex(selector int) int {
	switch {
	case selector <= 1:
		return raster.R
	case selector == 2:
		return raster.G
	case selector == 3:
		return raster.B
	default:
		return raster.A
	}
}

// Isolate shows one channel of img as grayscale. Alpha is copied from img
// when keepAlpha is set, otherwise it is opaque.
func Isolate(img *raster.Image, selector int, keepAlpha bool) *raster.Image {
	planes := Split(img)
	c := planes[ChannelIndex(selector)]
	alpha := raster.UniformPlane(img.Width, img.Height, 255)
	if keepAlpha {
		alpha = planes[raster.A]
	}
	return Merge([raster.Channels]*raster.Plane{c, c, c, alpha})
}
