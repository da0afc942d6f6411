package kernel

import (
	"math/rand"

	"github.com/erinpentecost/wolffx/internal/raster"
)

// noise returns a deterministic random image.
func noise(w, h int, seed int64) *raster.Image {
	r := rand.New(rand.NewSource(seed))
	img := raster.New(w, h)
	r.Read(img.Pix)
	return img
}

func uniform(w, h int, px [raster.Channels]uint8) *raster.Image {
	img := raster.New(w, h)
	img.Fill(px)
	return img
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
