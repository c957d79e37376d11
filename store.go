package watermark

import (
	"image"

	"github.com/sirupsen/logrus"
)

// Store holds the loaded source image and the latest watermarked result.
// It is meant to be used from a single goroutine.
type Store struct {
	source      image.Image
	sourcePath  string
	watermarked *image.NRGBA
	log         logrus.FieldLogger
}

// NewStore returns an empty store logging through l, or the standard logger
// when l is nil.
func NewStore(l logrus.FieldLogger) *Store {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Store{log: l}
}

// Load decodes path and makes it the current source. On failure the store
// keeps its previous contents and the *DecodeError is returned. The
// watermarked image is left as is; reapplying after a load is up to the
// caller.
func (s *Store) Load(path string) (image.Image, error) {
	img, format, err := Open(path)
	if err != nil {
		return nil, err
	}

	s.source = img
	s.sourcePath = path

	b := img.Bounds()
	s.log.WithFields(logrus.Fields{
		"path":   path,
		"format": format,
		"width":  b.Dx(),
		"height": b.Dy(),
	}).Info("image loaded")

	return img, nil
}

// Source returns the current source image, or nil.
func (s *Store) Source() image.Image { return s.source }

// SourcePath returns the file the current source was loaded from.
func (s *Store) SourcePath() string { return s.sourcePath }

// SetWatermarked replaces the watermarked image.
func (s *Store) SetWatermarked(img *image.NRGBA) { s.watermarked = img }

// Watermarked returns the latest watermarked image, or nil.
func (s *Store) Watermarked() *image.NRGBA { return s.watermarked }
