package dds

import (
	"fmt"
	"io"

	"github.com/erinpentecost/wolffx/internal/raster"
)

type Codec int

const (
	// Lossless is uncompressed 32-bit BGRA.
	Lossless Codec = iota
	// DXT1 drops alpha.
	DXT1
)

func (c Codec) String() string {
	switch c {
	case Lossless:
		return "lossless"
	case DXT1:
		return "dxt1"
	default:
		return fmt.Sprintf("Codec(%d)", int(c))
	}
}

// ParseCodec is the inverse of Codec.String.
func ParseCodec(s string) (Codec, error) {
	for _, c := range []Codec{Lossless, DXT1} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("codec %q: %w", s, ErrFormat)
}

// Encode writes img to w as DDS.
func Encode(w io.Writer, img *raster.Image, codec Codec) error {
	if err := img.Validate(); err != nil {
		return err
	}
	if img.Width == 0 || img.Height == 0 {
		return fmt.Errorf("empty %dx%d image: %w", img.Width, img.Height, ErrFormat)
	}
	switch codec {
	case Lossless:
		return encodeLossless(w, img)
	case DXT1:
		return encodeDXT1(w, img)
	default:
		return fmt.Errorf("%v: %w", codec, ErrFormat)
	}
}

func encodeLossless(w io.Writer, img *raster.Image) error {
	rowBytes := img.Width * raster.Channels
	hdr := header{
		flags:    flagCaps | flagHeight | flagWidth | flagPixelFormat | flagPitch,
		height:   uint32(img.Height),
		width:    uint32(img.Width),
		pitch:    uint32(rowBytes),
		pfFlags:  pfRGB | pfAlphaPixels,
		bitCount: 32,
		// Little-endian 0xAARRGGBB puts the bytes on disk as B, G, R, A.
		masks: [4]uint32{0x00FF0000, 0x0000FF00, 0x000000FF, 0xFF000000},
	}
	if err := writeHeader(w, hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for y := 0; y < img.Height; y++ {
		off := y * img.Stride
		if _, err := w.Write(img.Pix[off : off+rowBytes]); err != nil {
			return fmt.Errorf("write row %d: %w", y, err)
		}
	}
	return nil
}

func encodeDXT1(w io.Writer, img *raster.Image) error {
	bw := (img.Width + 3) / 4
	bh := (img.Height + 3) / 4
	hdr := header{
		flags:   flagCaps | flagHeight | flagWidth | flagPixelFormat | flagLinearSize,
		height:  uint32(img.Height),
		width:   uint32(img.Width),
		pitch:   uint32(bw * bh * 8),
		pfFlags: pfFourCC,
		fourCC:  "DXT1",
	}
	if err := writeHeader(w, hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]byte, bw*8)
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			block := compressBC1(img, bx*4, by*4)
			copy(row[bx*8:], block[:])
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("write block row %d: %w", by, err)
		}
	}
	return nil
}
