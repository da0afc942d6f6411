package raster

// Plane is a single 8-bit channel of an Image.
type Plane struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewPlane(width, height int) *Plane {
	width = max(width, 0)
	height = max(height, 0)
	return &Plane{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// UniformPlane returns a plane with every sample set to v.
func UniformPlane(width, height int, v uint8) *Plane {
	p := NewPlane(width, height)
	for i := range p.Pix {
		p.Pix[i] = v
	}
	return p
}

func (p *Plane) At(x, y int) uint8 { return p.Pix[y*p.Width+x] }

func (p *Plane) Set(x, y int, v uint8) { p.Pix[y*p.Width+x] = v }

func (p *Plane) Clone() *Plane {
	out := &Plane{Width: p.Width, Height: p.Height, Pix: make([]uint8, len(p.Pix))}
	copy(out.Pix, p.Pix)
	return out
}
