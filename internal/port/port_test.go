package port

import (
	"image"
	"testing"

	"github.com/erinpentecost/wolffx/internal/raster"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	img := raster.New(4, 3)
	a := NewArgs(img, nil)

	require.Equal(t, 2, a.Len())
	require.False(t, a.Invalid(0))
	require.True(t, a.Invalid(1))
	require.True(t, a.Invalid(2))
	require.True(t, a.Invalid(-1))

	require.Same(t, img, a.Get(0))
	require.Nil(t, a.Get(1))
	require.Nil(t, a.Get(5))

	require.Equal(t, raster.Rect{Width: 4, Height: 3}, a.Rect(0))
	require.Equal(t, raster.Rect{}, a.Rect(1))
}

func TestInvalidFlagHidesImage(t *testing.T) {
	a := Args{Bindings: []Binding{{Image: raster.New(1, 1), Valid: false}}}
	require.True(t, a.Invalid(0))
	require.Nil(t, a.Get(0))
}

func TestCanvasSize(t *testing.T) {
	a := NewArgs(raster.New(7, 5))
	require.Equal(t, image.Pt(7, 5), a.CanvasSize(0))
	require.Equal(t, image.Point{}, a.CanvasSize(3))

	a.Size = image.Pt(2, 2)
	require.Equal(t, image.Pt(2, 2), a.CanvasSize(0))
}
