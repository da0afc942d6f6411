package kernel

import (
	"fmt"

	"github.com/erinpentecost/wolffx/internal/raster"
)

// Select returns a copy of images[index]. Any index outside the slice is
// rejected rather than read.
func Select(images []*raster.Image, index int) (*raster.Image, error) {
	if index < 0 || index >= len(images) {
		return nil, fmt.Errorf("select %d of %d inputs: %w", index, len(images), ErrIndexOutOfRange)
	}
	if images[index] == nil {
		return nil, fmt.Errorf("select %d: input is empty: %w", index, ErrIndexOutOfRange)
	}
	return images[index].Clone(), nil
}
