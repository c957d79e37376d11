package watermark

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used for JPEG exports unless overridden.
const DefaultJPEGQuality = 75

// FormatFromPath picks the export format from the file extension: JPEG for
// .jpg and .jpeg in any case, PNG for everything else.
func FormatFromPath(path string) imaging.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imaging.JPEG
	default:
		return imaging.PNG
	}
}

// Encode writes img to w. JPEG output drops the alpha channel and keeps the
// colour channels as they are; PNG output keeps all four channels.
func Encode(w io.Writer, img image.Image, format imaging.Format, opts ...imaging.EncodeOption) error {
	if img == nil {
		return ErrNilImage
	}

	switch format {
	case imaging.JPEG:
		opts = append([]imaging.EncodeOption{imaging.JPEGQuality(DefaultJPEGQuality)}, opts...)
		return imaging.Encode(w, dropAlpha(img), imaging.JPEG, opts...)
	case imaging.PNG:
		return imaging.Encode(w, img, imaging.PNG, opts...)
	default:
		return fmt.Errorf("unsupported export format %v", format)
	}
}

// Save writes img to path in the format implied by its extension. On failure
// the partially written file is removed and a *WriteError is returned.
func Save(img image.Image, path string, opts ...imaging.EncodeOption) (err error) {
	if img == nil {
		return &WriteError{Path: path, Err: ErrNilImage}
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := Encode(f, img, FormatFromPath(path), opts...); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// dropAlpha returns a copy of img with every pixel made opaque. The colour
// channels are not premultiplied first, so transparent areas keep whatever
// colour they stored instead of turning black.
func dropAlpha(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}
