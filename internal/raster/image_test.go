package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageSetGet(t *testing.T) {
	img := New(2, 2)
	img.SetBGRA(0, 0, 10, 20, 30, 40)
	img.Set(1, 1, [Channels]uint8{50, 60, 70, 80})

	require.Equal(t, [Channels]uint8{10, 20, 30, 40}, img.At(0, 0))
	require.Equal(t, [Channels]uint8{50, 60, 70, 80}, img.At(1, 1))
	require.Equal(t, [Channels]uint8{}, img.At(1, 0))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		img   *Image
		valid bool
	}{
		{"nil", nil, false},
		{"fresh", New(3, 2), true},
		{"empty", New(0, 0), true},
		{"short stride", &Image{Width: 3, Height: 1, Stride: 8, Pix: make([]uint8, 12)}, false},
		{"short buffer", &Image{Width: 3, Height: 2, Stride: 12, Pix: make([]uint8, 20)}, false},
		{"padded stride", &Image{Width: 1, Height: 2, Stride: 8, Pix: make([]uint8, 12)}, true},
		{"negative", &Image{Width: -1, Height: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.img.Validate()
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidBuffer))
			}
		})
	}
}

func TestCloneRepacksStride(t *testing.T) {
	img := &Image{Width: 1, Height: 2, Stride: 8, Pix: []uint8{
		1, 2, 3, 4, 99, 99, 99, 99,
		5, 6, 7, 8,
	}}
	c := img.Clone()
	require.Equal(t, 4, c.Stride)
	require.Equal(t, []uint8{1, 2, 3, 4, 5, 6, 7, 8}, c.Pix)
	require.True(t, c.Equal(img))

	c.Pix[0] = 0
	require.Equal(t, uint8(1), img.Pix[0])
}

func TestCopyAtClips(t *testing.T) {
	dst := New(3, 3)
	src := New(2, 2)
	src.Fill([Channels]uint8{1, 1, 1, 1})

	dst.CopyAt(src, 2, -1)
	require.Equal(t, [Channels]uint8{1, 1, 1, 1}, dst.At(2, 0))
	require.Equal(t, [Channels]uint8{}, dst.At(2, 1))
	require.Equal(t, [Channels]uint8{}, dst.At(1, 0))

	dst.CopyAt(src, 10, 10)
	dst.CopyAt(src, -5, 0)
}

func TestConvertRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	src.SetNRGBA(6, 5, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	img := FromImage(src)
	require.Equal(t, 2, img.Width)
	require.Equal(t, 1, img.Height)
	require.Equal(t, [Channels]uint8{3, 2, 1, 4}, img.At(0, 0))
	require.Equal(t, [Channels]uint8{50, 100, 200, 255}, img.At(1, 0))

	back := img.ToNRGBA()
	require.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, back.NRGBAAt(1, 0))
	require.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, back.NRGBAAt(0, 0))
}

func TestPlane(t *testing.T) {
	p := UniformPlane(2, 3, 7)
	require.Len(t, p.Pix, 6)
	p.Set(1, 2, 9)
	c := p.Clone()
	require.Equal(t, uint8(9), c.At(1, 2))
	require.Equal(t, uint8(7), c.At(0, 0))
}
