package kernel

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/erinpentecost/wolffx/internal/raster"
)

// GaussianSize is the kernel length used for sigma: six standard
// deviations plus the center, rounded and forced odd.
func GaussianSize(sigma float64) int {
	if sigma <= 0 {
		return 1
	}
	return int(math.RoundToEven(sigma*6+1)) | 1
}

// GaussianKernel returns a normalized 1-D Gaussian kernel. sigma <= 0
// yields the identity kernel [1].
func GaussianKernel(sigma float64) []float64 {
	n := GaussianSize(sigma)
	if n == 1 {
		return []float64{1}
	}
	k := make([]float64, n)
	half := float64(n-1) / 2
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range k {
		x := float64(i) - half
		k[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += k[i]
	}
	vecmath.ScaleBlock(k, k, 1/sum)
	return k
}

// GaussianBlurPlane smooths p with a separable Gaussian of the given
// sigma. Borders are extended by reflect-101. sigma <= 0 returns a copy.
func GaussianBlurPlane(p *raster.Plane, sigma float64) *raster.Plane {
	if sigma <= 0 || p.Width == 0 || p.Height == 0 {
		return p.Clone()
	}
	k := GaussianKernel(sigma)
	half := len(k) / 2
	w, h := p.Width, p.Height

	// Horizontal pass into a float buffer, one row at a time.
	rows := make([]float64, w*h)
	padded := make([]float64, w+2*half)
	temp := make([]float64, w)
	for y := 0; y < h; y++ {
		src := p.Pix[y*w : (y+1)*w]
		for i := range padded {
			padded[i] = float64(src[reflect101(i-half, w)])
		}
		acc := rows[y*w : (y+1)*w]
		for j, weight := range k {
			vecmath.ScaleBlock(temp, padded[j:j+w], weight)
			vecmath.AddBlockInPlace(acc, temp)
		}
	}

	// Vertical pass works on whole rows.
	out := raster.NewPlane(w, h)
	acc := make([]float64, w)
	for y := 0; y < h; y++ {
		clear(acc)
		for j, weight := range k {
			yy := reflect101(y+j-half, h)
			vecmath.ScaleBlock(temp, rows[yy*w:(yy+1)*w], weight)
			vecmath.AddBlockInPlace(acc, temp)
		}
		dst := out.Pix[y*w : (y+1)*w]
		for x, v := range acc {
			dst[x] = clampByte(v)
		}
	}
	return out
}

// GaussianBlur smooths all four channels of img with the same sigma.
func GaussianBlur(img *raster.Image, sigma float64) *raster.Image {
	if sigma <= 0 {
		return img.Clone()
	}
	planes := Split(img)
	for c := range planes {
		planes[c] = GaussianBlurPlane(planes[c], sigma)
	}
	return Merge(planes)
}
