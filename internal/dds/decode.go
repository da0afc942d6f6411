package dds

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/mauserzjeh/dxt"

	"github.com/erinpentecost/wolffx/internal/raster"
)

// maxSide guards against allocating for corrupt headers.
const maxSide = 1 << 15

// Decode reads a DDS file into a BGRA raster.
func Decode(r io.Reader) (*raster.Image, error) {
	hdr, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	w, h := int(hdr.width), int(hdr.height)
	if w <= 0 || h <= 0 || w > maxSide || h > maxSide {
		return nil, fmt.Errorf("size %dx%d: %w", w, h, ErrFormat)
	}

	if hdr.pfFlags&pfFourCC != 0 {
		return decodeCompressed(r, hdr)
	}
	return decodeMasked(r, hdr)
}

// DecodeConfig reads only the header and returns the image size.
func DecodeConfig(r io.Reader) (width, height int, err error) {
	hdr, err := readHeader(r)
	if err != nil {
		return 0, 0, err
	}
	return int(hdr.width), int(hdr.height), nil
}

func decodeCompressed(r io.Reader, hdr header) (*raster.Image, error) {
	blockBytes := 16
	decode := dxt.DecodeDXT5
	switch hdr.fourCC {
	case "DXT1":
		blockBytes = 8
		decode = dxt.DecodeDXT1
	case "DXT3":
		decode = dxt.DecodeDXT3
	case "DXT5":
	default:
		return nil, fmt.Errorf("fourCC %q: %w", hdr.fourCC, ErrFormat)
	}

	bw := (int(hdr.width) + 3) / 4
	bh := (int(hdr.height) + 3) / 4
	data := make([]byte, bw*bh*blockBytes)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read %s blocks: %w", hdr.fourCC, err)
	}
	rgba, err := decode(data, uint(hdr.width), uint(hdr.height))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", hdr.fourCC, err)
	}

	img := raster.New(int(hdr.width), int(hdr.height))
	if len(rgba) != len(img.Pix) {
		return nil, fmt.Errorf("decoded %d bytes, want %d: %w", len(rgba), len(img.Pix), ErrFormat)
	}
	for i := 0; i < len(rgba); i += raster.Channels {
		img.Pix[i+raster.R] = rgba[i]
		img.Pix[i+raster.G] = rgba[i+1]
		img.Pix[i+raster.B] = rgba[i+2]
		img.Pix[i+raster.A] = rgba[i+3]
	}
	return img, nil
}

// channelMask extracts one channel described by a bit mask and widens it
// to 8 bits.
type channelMask struct {
	mask  uint32
	shift int
	width int
}

func newChannelMask(mask uint32) channelMask {
	if mask == 0 {
		return channelMask{}
	}
	return channelMask{
		mask:  mask,
		shift: bits.TrailingZeros32(mask),
		width: bits.OnesCount32(mask),
	}
}

func (c channelMask) extract(px uint32, fallback uint8) uint8 {
	if c.mask == 0 {
		return fallback
	}
	v := (px & c.mask) >> c.shift
	switch {
	case c.width == 8:
		return uint8(v)
	case c.width > 8:
		return uint8(v >> (c.width - 8))
	default:
		// Rescale so that full scale maps to 255.
		full := uint32(1)<<c.width - 1
		return uint8((v*255 + full/2) / full)
	}
}

func decodeMasked(r io.Reader, hdr header) (*raster.Image, error) {
	if hdr.pfFlags&(pfRGB|pfLuminance) == 0 {
		return nil, fmt.Errorf("pixel format flags %#x: %w", hdr.pfFlags, ErrFormat)
	}
	bpp := int(hdr.bitCount) / 8
	if bpp < 1 || bpp > 4 || hdr.bitCount%8 != 0 {
		return nil, fmt.Errorf("%d bits per pixel: %w", hdr.bitCount, ErrFormat)
	}

	w, h := int(hdr.width), int(hdr.height)
	rowBytes := w * bpp
	pitch := rowBytes
	if hdr.flags&flagPitch != 0 && int(hdr.pitch) > rowBytes {
		// Rows are padded to at most a 4-byte boundary.
		if int(hdr.pitch) > rowBytes+3 {
			return nil, fmt.Errorf("pitch %d for %d-byte rows: %w", hdr.pitch, rowBytes, ErrFormat)
		}
		pitch = int(hdr.pitch)
	}

	masks := hdr.masks
	if hdr.pfFlags&pfLuminance != 0 {
		masks = [4]uint32{hdr.masks[0], hdr.masks[0], hdr.masks[0], hdr.masks[3]}
	}
	if hdr.pfFlags&pfAlphaPixels == 0 {
		masks[3] = 0
	}
	red, green, blue, alpha := newChannelMask(masks[0]), newChannelMask(masks[1]), newChannelMask(masks[2]), newChannelMask(masks[3])

	img := raster.New(w, h)
	row := make([]byte, pitch)
	for y := 0; y < h; y++ {
		// The last row may omit its padding.
		n := pitch
		if y == h-1 {
			n = rowBytes
		}
		if _, err := io.ReadFull(r, row[:n]); err != nil {
			return nil, fmt.Errorf("read row %d: %w", y, err)
		}
		for x := 0; x < w; x++ {
			var px uint32
			for b := bpp - 1; b >= 0; b-- {
				px = px<<8 | uint32(row[x*bpp+b])
			}
			img.SetBGRA(x, y,
				blue.extract(px, 0),
				green.extract(px, 0),
				red.extract(px, 0),
				alpha.extract(px, 255))
		}
	}
	return img, nil
}
