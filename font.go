package watermark

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	// DefaultFontPath is the preferred font file, resolved relative to the
	// working directory.
	DefaultFontPath = "arial.ttf"
	// DefaultFontSize is the watermark size in points at 72 DPI.
	DefaultFontSize = 36.0
)

// FontSource tells which face the engine ended up rendering with.
type FontSource string

const (
	FontFromFile  FontSource = "file"
	FontGoRegular FontSource = "goregular"
	FontBasic     FontSource = "basicfont"
)

// loadFace resolves the watermark face. A missing or broken font file is not
// an error: the embedded Go Regular font is used at the same size, and the
// fixed 7x13 bitmap face if even that cannot be parsed.
func loadFace(path string, size float64, log logrus.FieldLogger) (font.Face, FontSource) {
	if path != "" {
		face, err := faceFromFile(path, size)
		if err == nil {
			return face, FontFromFile
		}
		log.WithError(err).WithField("font", path).Debug("falling back to embedded font")
	}

	face, err := faceFromTTF(goregular.TTF, size)
	if err == nil {
		return face, FontGoRegular
	}
	log.WithError(err).Debug("falling back to basicfont")

	return basicfont.Face7x13, FontBasic
}

func faceFromFile(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return faceFromTTF(data, size)
}

func faceFromTTF(data []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}
