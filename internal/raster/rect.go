package raster

import (
	"fmt"
	"image"
	"math"
)

// Rect is an axis-aligned region in image space. X and Y are the top-left
// corner; Width and Height grow right and down.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// InfiniteRect returns the sentinel for "whatever the consumer asks for".
func InfiniteRect() Rect {
	return Rect{
		X:      math.Inf(-1),
		Y:      math.Inf(-1),
		Width:  math.Inf(1),
		Height: math.Inf(1),
	}
}

// RectFromBounds converts an integer rectangle.
func RectFromBounds(b image.Rectangle) Rect {
	return Rect{
		X:      float64(b.Min.X),
		Y:      float64(b.Min.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

func (r Rect) IsInfinite() bool {
	return math.IsInf(r.Width, 1) || math.IsInf(r.Height, 1) ||
		math.IsInf(r.X, -1) || math.IsInf(r.Y, -1)
}

func (r Rect) Empty() bool {
	return !r.IsInfinite() && (r.Width <= 0 || r.Height <= 0)
}

func (r Rect) String() string {
	if r.IsInfinite() {
		return "infinite"
	}
	return fmt.Sprintf("%gx%g+%g+%g", r.Width, r.Height, r.X, r.Y)
}

// Grow enlarges r by a kernel of kw x kh pixels. The left and top margins
// get the floor of half the kernel, the right and bottom margins the rest.
func (r Rect) Grow(kw int, kh int) Rect {
	if r.IsInfinite() {
		return r
	}
	return Rect{
		X:      r.X - float64(kw/2),
		Y:      r.Y - float64(kh/2),
		Width:  r.Width + float64(kw),
		Height: r.Height + float64(kh),
	}
}

// Bounds rounds r outward to whole pixels. The infinite rect has no
// integer form and yields ok=false.
func (r Rect) Bounds() (b image.Rectangle, ok bool) {
	if r.IsInfinite() {
		return image.Rectangle{}, false
	}
	x0 := int(math.Floor(r.X))
	y0 := int(math.Floor(r.Y))
	x1 := int(math.Ceil(r.X + r.Width))
	y1 := int(math.Ceil(r.Y + r.Height))
	return image.Rect(x0, y0, x1, y1), true
}

// Contains reports whether b lies inside r.
func (r Rect) Contains(b Rect) bool {
	if r.IsInfinite() {
		return true
	}
	if b.IsInfinite() {
		return false
	}
	return b.X >= r.X && b.Y >= r.Y &&
		b.X+b.Width <= r.X+r.Width &&
		b.Y+b.Height <= r.Y+r.Height
}
