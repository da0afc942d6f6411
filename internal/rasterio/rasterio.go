// Package rasterio loads and saves BGRA rasters as image files. The
// format is chosen by file extension.
package rasterio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dblezek/tga"
	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"github.com/erinpentecost/wolffx/internal/dds"
	"github.com/erinpentecost/wolffx/internal/raster"
)

var ErrUnsupported = errors.New("unsupported image format")

type Format int

const (
	PNG Format = iota
	JPEG
	GIF
	TIFF
	BMP
	TGA
	DDS
	// WEBP is read only.
	WEBP
)

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".tif":  TIFF,
	".tiff": TIFF,
	".bmp":  BMP,
	".tga":  TGA,
	".dds":  DDS,
	".webp": WEBP,
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case TIFF:
		return "tiff"
	case BMP:
		return "bmp"
	case TGA:
		return "tga"
	case DDS:
		return "dds"
	case WEBP:
		return "webp"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Writable reports whether Encode supports f.
func (f Format) Writable() bool {
	return f >= PNG && f <= DDS
}

// FormatFromPath picks the format from the file extension, ignoring case.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("extension %q: %w", ext, ErrUnsupported)
}

// Options tune Save.
type Options struct {
	// JPEGQuality is 1 to 100. Zero means the imaging default.
	JPEGQuality int
	DDSCodec    dds.Codec
}

// Load reads the image at path.
func Load(path string) (*raster.Image, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()

	img, err := Decode(bufio.NewReader(file), f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// Decode reads one image of format f from r.
func Decode(r io.Reader, f Format) (*raster.Image, error) {
	var (
		img image.Image
		err error
	)
	switch f {
	case DDS:
		return dds.Decode(r)
	case BMP:
		img, err = bmp.Decode(r)
	case TGA:
		img, err = tga.Decode(r)
	case WEBP:
		img, err = webp.Decode(r)
	case PNG, JPEG, GIF, TIFF:
		img, err = imaging.Decode(r, imaging.AutoOrientation(true))
	default:
		return nil, fmt.Errorf("%v: %w", f, ErrUnsupported)
	}
	if err != nil {
		return nil, err
	}
	return raster.FromImage(img), nil
}

// Save writes img to path, creating or truncating the file.
func Save(path string, img *raster.Image, opts Options) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if !f.Writable() {
		return fmt.Errorf("save %q as %v: %w", path, f, ErrUnsupported)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	w := bufio.NewWriter(file)
	if err := Encode(w, img, f, opts); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("write %q: %w", path, err)
	}
	return file.Close()
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img *raster.Image, f Format, opts Options) error {
	if err := img.Validate(); err != nil {
		return err
	}
	switch f {
	case DDS:
		return dds.Encode(w, img, opts.DDSCodec)
	case BMP:
		return bmp.Encode(w, img.ToNRGBA())
	case TGA:
		return tga.Encode(w, img.ToNRGBA())
	case PNG:
		return imaging.Encode(w, img.ToNRGBA(), imaging.PNG)
	case JPEG:
		var encOpts []imaging.EncodeOption
		if opts.JPEGQuality > 0 {
			encOpts = append(encOpts, imaging.JPEGQuality(opts.JPEGQuality))
		}
		return imaging.Encode(w, img.ToNRGBA(), imaging.JPEG, encOpts...)
	case GIF:
		return imaging.Encode(w, img.ToNRGBA(), imaging.GIF)
	case TIFF:
		return imaging.Encode(w, img.ToNRGBA(), imaging.TIFF)
	default:
		return fmt.Errorf("%v: %w", f, ErrUnsupported)
	}
}
