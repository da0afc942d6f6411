package dds

import (
	"encoding/binary"

	"github.com/erinpentecost/wolffx/internal/raster"
)

type rgb struct{ r, g, b int }

func to565(c rgb) uint16 {
	return uint16(c.r>>3)<<11 | uint16(c.g>>2)<<5 | uint16(c.b>>3)
}

func from565(v uint16) rgb {
	r := int(v>>11) & 0x1f
	g := int(v>>5) & 0x3f
	b := int(v) & 0x1f
	return rgb{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2}
}

func dist(a, b rgb) int {
	dr, dg, db := a.r-b.r, a.g-b.g, a.b-b.b
	return dr*dr + dg*dg + db*db
}

// compressBC1 packs the 4x4 block at (x0, y0) into one opaque BC1 block.
// Endpoints are the corners of the block's color bounding box. Pixels past
// the image edge repeat the last row or column.
func compressBC1(img *raster.Image, x0, y0 int) [8]byte {
	var px [16]rgb
	lo := rgb{255, 255, 255}
	hi := rgb{}
	for i := range px {
		x := min(x0+i%4, img.Width-1)
		y := min(y0+i/4, img.Height-1)
		p := img.At(x, y)
		c := rgb{int(p[raster.R]), int(p[raster.G]), int(p[raster.B])}
		px[i] = c
		lo = rgb{min(lo.r, c.r), min(lo.g, c.g), min(lo.b, c.b)}
		hi = rgb{max(hi.r, c.r), max(hi.g, c.g), max(hi.b, c.b)}
	}

	c0, c1 := to565(hi), to565(lo)
	if c0 < c1 {
		c0, c1 = c1, c0
	}
	var out [8]byte
	binary.LittleEndian.PutUint16(out[0:], c0)
	binary.LittleEndian.PutUint16(out[2:], c1)
	if c0 == c1 {
		// Every index 0 selects c0.
		return out
	}

	e0, e1 := from565(c0), from565(c1)
	palette := [4]rgb{
		e0,
		e1,
		{(2*e0.r + e1.r) / 3, (2*e0.g + e1.g) / 3, (2*e0.b + e1.b) / 3},
		{(e0.r + 2*e1.r) / 3, (e0.g + 2*e1.g) / 3, (e0.b + 2*e1.b) / 3},
	}
	var indices uint32
	for i, c := range px {
		best, bestDist := 0, dist(c, palette[0])
		for j := 1; j < len(palette); j++ {
			if d := dist(c, palette[j]); d < bestDist {
				best, bestDist = j, d
			}
		}
		indices |= uint32(best) << (2 * i)
	}
	binary.LittleEndian.PutUint32(out[4:], indices)
	return out
}
