// Package raster holds the pixel buffers effects read and write.
//
// Images are 8 bits per channel, 4 interleaved channels in storage order
// B, G, R, A, row-major. This is the host's native order and matches
// uncompressed 32-bit DDS and most framebuffers on little-endian machines.
package raster

import (
	"errors"
	"fmt"
)

// Storage indices of the channels inside a pixel.
const (
	B = 0
	G = 1
	R = 2
	A = 3

	Channels = 4
)

var ErrInvalidBuffer = errors.New("invalid raster buffer")

// Image is a BGRA raster.
type Image struct {
	Width  int
	Height int
	// Stride is the distance in bytes between vertically adjacent pixels.
	Stride int
	Pix    []uint8
}

// New allocates a zeroed (transparent black) image.
func New(width, height int) *Image {
	width = max(width, 0)
	height = max(height, 0)
	return &Image{
		Width:  width,
		Height: height,
		Stride: width * Channels,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// Validate checks that the buffer can hold Width x Height pixels.
func (m *Image) Validate() error {
	if m == nil {
		return fmt.Errorf("nil image: %w", ErrInvalidBuffer)
	}
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("negative size %dx%d: %w", m.Width, m.Height, ErrInvalidBuffer)
	}
	if m.Stride < m.Width*Channels {
		return fmt.Errorf("stride %d too small for width %d: %w", m.Stride, m.Width, ErrInvalidBuffer)
	}
	if m.Height > 0 && len(m.Pix) < (m.Height-1)*m.Stride+m.Width*Channels {
		return fmt.Errorf("pixel buffer of %d bytes too small for %dx%d: %w", len(m.Pix), m.Width, m.Height, ErrInvalidBuffer)
	}
	return nil
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (m *Image) PixOffset(x, y int) int {
	return y*m.Stride + x*Channels
}

// At returns the four channels of pixel (x, y) in storage order.
func (m *Image) At(x, y int) [Channels]uint8 {
	i := m.PixOffset(x, y)
	return [Channels]uint8{m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]}
}

// Set writes the four channels of pixel (x, y) in storage order.
func (m *Image) Set(x, y int, px [Channels]uint8) {
	i := m.PixOffset(x, y)
	copy(m.Pix[i:i+Channels], px[:])
}

// SetBGRA is Set with named channels.
func (m *Image) SetBGRA(x, y int, b, g, r, a uint8) {
	m.Set(x, y, [Channels]uint8{b, g, r, a})
}

// Clone returns a tightly packed deep copy.
func (m *Image) Clone() *Image {
	out := New(m.Width, m.Height)
	rowBytes := m.Width * Channels
	for y := 0; y < m.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+rowBytes], m.Pix[y*m.Stride:y*m.Stride+rowBytes])
	}
	return out
}

// Fill sets every pixel to px.
func (m *Image) Fill(px [Channels]uint8) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Set(x, y, px)
		}
	}
}

// CopyAt copies src into m with src's top-left corner at (dx, dy).
// Pixels falling outside m are dropped.
func (m *Image) CopyAt(src *Image, dx, dy int) {
	x0 := max(dx, 0)
	y0 := max(dy, 0)
	x1 := min(dx+src.Width, m.Width)
	y1 := min(dy+src.Height, m.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	n := (x1 - x0) * Channels
	for y := y0; y < y1; y++ {
		so := src.PixOffset(x0-dx, y-dy)
		do := m.PixOffset(x0, y)
		copy(m.Pix[do:do+n], src.Pix[so:so+n])
	}
}

// Equal reports whether both images have the same size and pixels.
func (m *Image) Equal(o *Image) bool {
	if m.Width != o.Width || m.Height != o.Height {
		return false
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) != o.At(x, y) {
				return false
			}
		}
	}
	return true
}
