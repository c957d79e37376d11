// Package app wires the image store, the watermark engine and the exporter
// to the user's actions. It knows nothing about widgets; everything visual
// goes through Platform.
package app

import (
	"image"
	"math"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	watermark "github.com/gcslaoli/text-watermark-go"
	"github.com/gcslaoli/text-watermark-go/internal/config"
)

const (
	warningTitle = "Warning"
	successTitle = "Success"

	defaultSaveExt = ".png"
)

// State is how far the user has got: nothing loaded, a source loaded, or a
// watermarked result ready to save.
type State int

const (
	StateEmpty State = iota
	StateLoaded
	StateWatermarked
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateWatermarked:
		return "watermarked"
	default:
		return "unknown"
	}
}

// App is the application state owned by main and shared by every handler.
type App struct {
	cfg      *config.Config
	store    *watermark.Store
	engine   *watermark.Engine
	platform Platform
	log      logrus.FieldLogger
}

// New builds an App from cfg. The platform may be nil at first and set with
// SetPlatform once the window exists.
func New(cfg *config.Config, platform Platform, log logrus.FieldLogger) *App {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &App{
		cfg:   cfg,
		store: watermark.NewStore(log),
		engine: watermark.NewEngine(
			watermark.WithFontPath(cfg.Font.Path),
			watermark.WithFontSize(cfg.Font.Size),
			watermark.WithMargin(cfg.Watermark.Margin),
			watermark.WithLogger(log),
		),
		platform: platform,
		log:      log,
	}
}

// SetPlatform attaches the windowing layer.
func (a *App) SetPlatform(p Platform) { a.platform = p }

// Store exposes the image store.
func (a *App) Store() *watermark.Store { return a.store }

// Engine exposes the watermark engine.
func (a *App) Engine() *watermark.Engine { return a.engine }

// InitialOpacity is the opacity the slider starts at.
func (a *App) InitialOpacity() float64 { return float64(a.cfg.Watermark.Opacity) }

// State reports what the user can do next.
func (a *App) State() State {
	switch {
	case a.store.Watermarked() != nil:
		return StateWatermarked
	case a.store.Source() != nil:
		return StateLoaded
	default:
		return StateEmpty
	}
}

// Upload asks for an image file and loads it.
func (a *App) Upload() {
	a.platform.OpenImage(openFilters, func(path string) {
		if path == "" {
			return
		}
		a.LoadImage(path)
	})
}

// LoadImage makes path the current source and previews it. Decode failures
// are shown to the user and leave the store untouched.
func (a *App) LoadImage(path string) error {
	img, err := a.store.Load(path)
	if err != nil {
		a.log.WithError(err).WithField("path", path).Warn("load failed")
		a.platform.Error(err)
		return err
	}

	a.preview(img)
	return nil
}

// ApplyWatermark stamps text onto the current source with the given slider
// opacity and previews the result.
func (a *App) ApplyWatermark(text string, opacity float64) error {
	src := a.store.Source()
	if src == nil {
		return a.reject(userInput(ErrNoImage, "Upload an image first."))
	}
	if text == "" {
		return a.reject(userInput(ErrNoText, "Enter watermark text."))
	}

	marked, err := a.engine.Apply(src, text, clampOpacity(opacity))
	if err != nil {
		a.platform.Error(err)
		return err
	}

	a.store.SetWatermarked(marked)
	a.preview(marked)
	return nil
}

// SaveImage asks for a destination and exports the watermarked image there.
func (a *App) SaveImage() {
	if a.store.Watermarked() == nil {
		a.reject(userInput(ErrNotApplied, "Apply watermark first."))
		return
	}

	a.platform.SaveImage(defaultSaveExt, saveFilters, func(path string) {
		if path == "" {
			return
		}
		a.Export(path)
	})
}

// Export writes the watermarked image to path. A path without an extension
// gets .png.
func (a *App) Export(path string) error {
	marked := a.store.Watermarked()
	if marked == nil {
		return a.reject(userInput(ErrNotApplied, "Apply watermark first."))
	}

	if filepath.Ext(path) == "" {
		path += defaultSaveExt
	}

	if err := watermark.Save(marked, path, imaging.JPEGQuality(a.cfg.Export.JPEGQuality)); err != nil {
		a.log.WithError(err).WithField("path", path).Error("save failed")
		a.platform.Error(err)
		return err
	}

	a.log.WithField("path", path).Info("image saved")
	a.platform.Info(successTitle, "Image saved successfully.")
	return nil
}

func (a *App) reject(err *UserInputError) error {
	a.log.WithField("reason", err.Err).Debug("action rejected")
	a.platform.Warn(warningTitle, err.Message)
	return err
}

func (a *App) preview(img image.Image) {
	a.platform.Show(watermark.Frame(img, a.cfg.Preview.Width, a.cfg.Preview.Height, watermark.PreviewBackground))
}

// clampOpacity rounds a slider value into the 0..255 alpha range.
func clampOpacity(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
