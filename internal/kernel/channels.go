package kernel

import (
	"github.com/erinpentecost/wolffx/internal/raster"
)

// Split separates img into its four planes, indexed by storage channel.
func Split(img *raster.Image) [raster.Channels]*raster.Plane {
	var planes [raster.Channels]*raster.Plane
	for c := range planes {
		planes[c] = raster.NewPlane(img.Width, img.Height)
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := img.PixOffset(x, y)
			j := y*img.Width + x
			for c := range planes {
				planes[c].Pix[j] = img.Pix[i+c]
			}
		}
	}
	return planes
}

// Merge interleaves four planes of equal size back into an image. The
// result takes its size from planes[0].
func Merge(planes [raster.Channels]*raster.Plane) *raster.Image {
	w, h := planes[0].Width, planes[0].Height
	img := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			j := y*w + x
			for c, p := range planes {
				img.Pix[i+c] = p.Pix[j]
			}
		}
	}
	return img
}

// ChannelOrder lists, for each storage slot, which logical channel
// (raster.B, G, R, A) it holds.
type ChannelOrder [raster.Channels]int

// BGRA is the storage order of raster.Image.
var BGRA = ChannelOrder{raster.B, raster.G, raster.R, raster.A}

// RGBA is the order used by image.RGBA and image.NRGBA.
var RGBA = ChannelOrder{raster.R, raster.G, raster.B, raster.A}

// FixChannelOrder rewrites an image whose pixels are laid out in order so
// that it follows the BGRA storage convention. BGRA input is copied as is.
func FixChannelOrder(img *raster.Image, order ChannelOrder) *raster.Image {
	out := raster.New(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := img.PixOffset(x, y)
			o := out.PixOffset(x, y)
			for slot, logical := range order {
				out.Pix[o+logical] = img.Pix[i+slot]
			}
		}
	}
	return out
}
