package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// FromImage converts any image into a BGRA raster with its origin at the
// top-left of src's bounds. Colors are stored non-premultiplied.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}
	out := New(b.Dx(), b.Dy())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			i := nrgba.PixOffset(x, y)
			o := out.PixOffset(x, y)
			out.Pix[o+B] = nrgba.Pix[i+2]
			out.Pix[o+G] = nrgba.Pix[i+1]
			out.Pix[o+R] = nrgba.Pix[i+0]
			out.Pix[o+A] = nrgba.Pix[i+3]
		}
	}
	return out
}

// ToNRGBA converts m to a standard library image for encoding.
func (m *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i := m.PixOffset(x, y)
			o := out.PixOffset(x, y)
			out.Pix[o+0] = m.Pix[i+R]
			out.Pix[o+1] = m.Pix[i+G]
			out.Pix[o+2] = m.Pix[i+B]
			out.Pix[o+3] = m.Pix[i+A]
		}
	}
	return out
}
