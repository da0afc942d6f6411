package effect

import (
	"errors"

	"github.com/erinpentecost/wolffx/internal/kernel"
	"github.com/erinpentecost/wolffx/internal/raster"
)

var (
	ErrUnknownEffect   = errors.New("unknown effect")
	ErrInvalidBuffer   = raster.ErrInvalidBuffer
	ErrIndexOutOfRange = kernel.ErrIndexOutOfRange
	// ErrKernel covers any failure inside a pixel kernel.
	ErrKernel = errors.New("kernel failed")
)
