// Package dds reads and writes DirectDraw Surface files as BGRA rasters.
//
// Decoding covers DXT1, DXT3, DXT5 and uncompressed 16, 24 and 32 bit
// masked formats. Only the top mip level is read. Encoding writes
// uncompressed 32-bit BGRA or DXT1.
package dds

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrFormat = errors.New("dds: unsupported format")

const (
	magic      = "DDS "
	headerSize = 124
	pfSize     = 32
	// Offset of the pixel format inside the header.
	pfOffset = 72

	flagCaps        = 0x1
	flagHeight      = 0x2
	flagWidth       = 0x4
	flagPitch       = 0x8
	flagPixelFormat = 0x1000
	flagLinearSize  = 0x80000

	pfAlphaPixels = 0x1
	pfFourCC      = 0x4
	pfRGB         = 0x40
	pfLuminance   = 0x20000

	capsTexture = 0x1000
)

// header is the part of DDS_HEADER this package uses.
type header struct {
	flags  uint32
	height uint32
	width  uint32
	pitch  uint32

	pfFlags  uint32
	fourCC   string
	bitCount uint32
	masks    [4]uint32 // R, G, B, A
}

func readHeader(r io.Reader) (header, error) {
	var buf [len(magic) + headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return header{}, fmt.Errorf("read header: %w", err)
	}
	if string(buf[:len(magic)]) != magic {
		return header{}, fmt.Errorf("missing %q magic: %w", magic, ErrFormat)
	}
	h := buf[len(magic):]
	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(h[off:]) }
	if u32(0) != headerSize {
		return header{}, fmt.Errorf("header size %d: %w", u32(0), ErrFormat)
	}
	hdr := header{
		flags:    u32(4),
		height:   u32(8),
		width:    u32(12),
		pitch:    u32(16),
		pfFlags:  u32(pfOffset + 4),
		fourCC:   string(h[pfOffset+8 : pfOffset+12]),
		bitCount: u32(pfOffset + 12),
	}
	for i := range hdr.masks {
		hdr.masks[i] = u32(pfOffset + 16 + 4*i)
	}
	return hdr, nil
}

func writeHeader(w io.Writer, hdr header) error {
	var buf [len(magic) + headerSize]byte
	copy(buf[:], magic)
	h := buf[len(magic):]
	put := func(off int, v uint32) { binary.LittleEndian.PutUint32(h[off:], v) }

	put(0, headerSize)
	put(4, hdr.flags)
	put(8, hdr.height)
	put(12, hdr.width)
	put(16, hdr.pitch)
	put(pfOffset, pfSize)
	put(pfOffset+4, hdr.pfFlags)
	copy(h[pfOffset+8:pfOffset+12], hdr.fourCC)
	put(pfOffset+12, hdr.bitCount)
	for i, m := range hdr.masks {
		put(pfOffset+16+4*i, m)
	}
	put(104, capsTexture)

	_, err := w.Write(buf[:])
	return err
}
