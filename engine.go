package watermark

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DefaultMargin is the gap in pixels between the text's ink box and the
// right and bottom edges of the image.
const DefaultMargin = 20

// Placement is where the watermark text lands in image coordinates.
type Placement struct {
	// Dot is the baseline origin handed to the font drawer.
	Dot image.Point
	// Rect is the ink bounding box of the rendered text.
	Rect image.Rectangle
}

// Engine renders text watermarks. The font face is resolved lazily on first
// use and reused afterwards.
type Engine struct {
	fontPath string
	fontSize float64
	margin   int
	log      logrus.FieldLogger

	faceOnce sync.Once
	face     font.Face
	source   FontSource
}

// Option configures an Engine.
type Option func(*Engine)

// WithFontPath sets the preferred font file. An empty path skips straight to
// the embedded font.
func WithFontPath(path string) Option {
	return func(e *Engine) { e.fontPath = path }
}

// WithFontSize sets the text size in points.
func WithFontSize(size float64) Option {
	return func(e *Engine) {
		if size > 0 {
			e.fontSize = size
		}
	}
}

// WithMargin sets the bottom-right margin in pixels.
func WithMargin(margin int) Option {
	return func(e *Engine) { e.margin = margin }
}

// WithLogger routes engine logging to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine constructs an Engine with the default font, size and margin
// unless overridden by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		fontPath: DefaultFontPath,
		fontSize: DefaultFontSize,
		margin:   DefaultMargin,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine struct {
	once sync.Once
	eng  *Engine
}

// Apply watermarks img using the default engine.
func Apply(img image.Image, text string, opacity uint8) (*image.NRGBA, error) {
	defaultEngine.once.Do(func() {
		defaultEngine.eng = NewEngine()
	})

	return defaultEngine.eng.Apply(img, text, opacity)
}

// Apply renders text in white with the given opacity onto a transparent layer
// and composites it over a copy of img. img itself is never modified. The
// result always has its origin at (0, 0).
func (e *Engine) Apply(img image.Image, text string, opacity uint8) (*image.NRGBA, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if text == "" {
		return nil, ErrEmptyText
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	base := imaging.Clone(img)
	layer := image.NewNRGBA(base.Bounds())

	place := e.Layout(base.Bounds(), text)
	drawer := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: opacity}),
		Face: e.fontFace(),
		Dot:  fixed.P(place.Dot.X, place.Dot.Y),
	}
	drawer.DrawString(text)

	compositeOver(base, layer)

	e.log.WithFields(logrus.Fields{
		"width":   width,
		"height":  height,
		"opacity": opacity,
		"box":     place.Rect.String(),
	}).Info("watermark applied")

	return base, nil
}

// Layout computes where text goes inside bounds: the right and bottom edges
// of its ink box sit exactly margin pixels inside the image. Nothing is
// clamped, so text wider than the image starts at a negative x.
func (e *Engine) Layout(bounds image.Rectangle, text string) Placement {
	ink, _ := font.BoundString(e.fontFace(), text)

	minX, minY := ink.Min.X.Floor(), ink.Min.Y.Floor()
	w := ink.Max.X.Ceil() - minX
	h := ink.Max.Y.Ceil() - minY

	x := bounds.Max.X - e.margin - w
	y := bounds.Max.Y - e.margin - h

	return Placement{
		Dot:  image.Pt(x-minX, y-minY),
		Rect: image.Rect(x, y, x+w, y+h),
	}
}

// FontSource reports which face the engine renders with, loading it if
// needed.
func (e *Engine) FontSource() FontSource {
	e.fontFace()
	return e.source
}

func (e *Engine) fontFace() font.Face {
	e.faceOnce.Do(func() {
		e.face, e.source = loadFace(e.fontPath, e.fontSize, e.log)
	})
	return e.face
}

// compositeOver blends layer onto dst in place with the straight-alpha
// source-over operator. Pixels where layer is fully transparent are left
// untouched.
func compositeOver(dst, layer *image.NRGBA) {
	bounds := dst.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			lo := layer.PixOffset(x, y)
			ta := uint32(layer.Pix[lo+3])
			if ta == 0 {
				continue
			}

			do := dst.PixOffset(x, y)
			ba := uint32(dst.Pix[do+3])

			// Both terms carry an extra factor of 255.
			outA := ta*255 + ba*(255-ta)
			for c := 0; c < 3; c++ {
				num := uint32(layer.Pix[lo+c])*ta*255 + uint32(dst.Pix[do+c])*ba*(255-ta)
				dst.Pix[do+c] = uint8((num + outA/2) / outA)
			}
			dst.Pix[do+3] = uint8((outA + 127) / 255)
		}
	}
}
