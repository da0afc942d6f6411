package kernel

import (
	"testing"

	"github.com/erinpentecost/wolffx/internal/raster"
	"github.com/stretchr/testify/require"
)

func TestChannelIndex(t *testing.T) {
	require.Equal(t, raster.R, ChannelIndex(1))
	require.Equal(t, raster.G, ChannelIndex(2))
	require.Equal(t, raster.B, ChannelIndex(3))
	require.Equal(t, raster.A, ChannelIndex(4))
	require.Equal(t, raster.R, ChannelIndex(-5))
	require.Equal(t, raster.A, ChannelIndex(99))
}

func TestIsolate(t *testing.T) {
	img := raster.New(1, 1)
	img.SetBGRA(0, 0, 10, 20, 30, 40)

	tests := []struct {
		selector  int
		keepAlpha bool
		want      [raster.Channels]uint8
	}{
		{1, false, [raster.Channels]uint8{30, 30, 30, 255}},
		{2, false, [raster.Channels]uint8{20, 20, 20, 255}},
		{3, true, [raster.Channels]uint8{10, 10, 10, 40}},
		{4, true, [raster.Channels]uint8{40, 40, 40, 40}},
		{0, false, [raster.Channels]uint8{30, 30, 30, 255}},
		{5, false, [raster.Channels]uint8{40, 40, 40, 255}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Isolate(img, tt.selector, tt.keepAlpha).At(0, 0), "selector %d", tt.selector)
	}
}

func TestIsolateDropsAlpha(t *testing.T) {
	img := noise(9, 9, 11)
	for sel := 1; sel <= 4; sel++ {
		out := Isolate(img, sel, false)
		for y := 0; y < 9; y++ {
			for x := 0; x < 9; x++ {
				require.Equal(t, uint8(255), out.At(x, y)[raster.A])
			}
		}
	}
}
