package kernel

import (
	"testing"

	"github.com/erinpentecost/wolffx/internal/raster"
	"github.com/stretchr/testify/require"
)

func TestSplitMerge(t *testing.T) {
	img := noise(5, 3, 1)
	planes := Split(img)
	require.Equal(t, img.At(2, 1)[raster.R], planes[raster.R].At(2, 1))
	require.Equal(t, img.At(4, 2)[raster.A], planes[raster.A].At(4, 2))
	require.True(t, Merge(planes).Equal(img))
}

func TestFixChannelOrder(t *testing.T) {
	img := raster.New(1, 1)
	img.Set(0, 0, [raster.Channels]uint8{1, 2, 3, 4})

	require.Equal(t, [raster.Channels]uint8{1, 2, 3, 4}, FixChannelOrder(img, BGRA).At(0, 0))
	require.Equal(t, [raster.Channels]uint8{3, 2, 1, 4}, FixChannelOrder(img, RGBA).At(0, 0))
}
