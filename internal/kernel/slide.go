package kernel

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/erinpentecost/wolffx/internal/raster"
)

// WrapTranslate moves img by the translation in m with bilinear
// resampling. Content leaving one edge re-enters at the opposite edge.
func WrapTranslate(img *raster.Image, m f64.Aff3) *raster.Image {
	w, h := img.Width, img.Height
	out := raster.New(w, h)
	if w == 0 || h == 0 {
		return out
	}
	// Reduce the offset first so huge shifts keep their precision.
	tx := math.Mod(m[2], float64(w))
	ty := math.Mod(m[5], float64(h))

	fx := math.Floor(-tx)
	fy := math.Floor(-ty)
	ax := -tx - fx
	ay := -ty - fy
	ix := int(fx)
	iy := int(fy)

	for y := 0; y < h; y++ {
		y0 := wrap(y+iy, h)
		y1 := wrap(y+iy+1, h)
		for x := 0; x < w; x++ {
			x0 := wrap(x+ix, w)
			x1 := wrap(x+ix+1, w)
			p00 := img.PixOffset(x0, y0)
			p01 := img.PixOffset(x1, y0)
			p10 := img.PixOffset(x0, y1)
			p11 := img.PixOffset(x1, y1)
			o := out.PixOffset(x, y)
			for c := 0; c < raster.Channels; c++ {
				top := float64(img.Pix[p00+c])*(1-ax) + float64(img.Pix[p01+c])*ax
				bottom := float64(img.Pix[p10+c])*(1-ax) + float64(img.Pix[p11+c])*ax
				out.Pix[o+c] = clampByte(top*(1-ay) + bottom*ay)
			}
		}
	}
	return out
}

// Slide wraps img around by xPercent of its width and yPercent of its
// height.
func Slide(img *raster.Image, xPercent, yPercent float64) *raster.Image {
	tx := float64(img.Width) * xPercent / 100
	ty := float64(img.Height) * yPercent / 100
	return WrapTranslate(img, Translation(tx, ty))
}
