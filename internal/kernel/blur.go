package kernel

import (
	"github.com/erinpentecost/wolffx/internal/raster"
)

// BlurChannels blurs the red, green and blue planes with independent
// sigmas. Alpha is never touched.
func BlurChannels(img *raster.Image, sigmaR, sigmaG, sigmaB float64) *raster.Image {
	planes := Split(img)
	planes[raster.R] = GaussianBlurPlane(planes[raster.R], sigmaR)
	planes[raster.G] = GaussianBlurPlane(planes[raster.G], sigmaG)
	planes[raster.B] = GaussianBlurPlane(planes[raster.B], sigmaB)
	return FixChannelOrder(Merge(planes), BGRA)
}
