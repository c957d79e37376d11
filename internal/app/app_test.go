package app

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	watermark "github.com/gcslaoli/text-watermark-go"
	"github.com/gcslaoli/text-watermark-go/internal/config"
)

// fakePlatform records every call and answers file dialogs with a canned
// path, synchronously.
type fakePlatform struct {
	mock.Mock
	openPath string
	savePath string
}

func (f *fakePlatform) OpenImage(filters []FileFilter, onChosen func(path string)) {
	f.Called(filters)
	onChosen(f.openPath)
}

func (f *fakePlatform) SaveImage(defaultExt string, filters []FileFilter, onChosen func(path string)) {
	f.Called(defaultExt, filters)
	onChosen(f.savePath)
}

func (f *fakePlatform) Warn(title, message string) { f.Called(title, message) }
func (f *fakePlatform) Info(title, message string) { f.Called(title, message) }
func (f *fakePlatform) Error(err error)            { f.Called(err) }
func (f *fakePlatform) Show(img image.Image)       { f.Called(img) }

func testConfig() *config.Config {
	return &config.Config{
		Font:      config.FontConfig{Path: "", Size: 36},
		Watermark: config.WatermarkConfig{Margin: 20, Opacity: 120},
		Preview:   config.PreviewConfig{Width: 500, Height: 400},
		Export:    config.ExportConfig{JPEGQuality: 75},
		Log:       config.LogConfig{Level: "info", Format: "text"},
	}
}

func newTestApp(t *testing.T) (*App, *fakePlatform) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	p := &fakePlatform{}
	return New(testConfig(), p, log), p
}

func writeSource(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 30, G: 60, B: 90, A: 255}), image.Point{}, draw.Src)

	path := filepath.Join(t.TempDir(), "source.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestApplyWithoutImageWarns(t *testing.T) {
	a, p := newTestApp(t)
	p.On("Warn", "Warning", "Upload an image first.").Once()

	err := a.ApplyWatermark("hello", 120)

	var uerr *UserInputError
	require.ErrorAs(t, err, &uerr)
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Nil(t, a.Store().Watermarked())
	assert.Equal(t, StateEmpty, a.State())
	p.AssertExpectations(t)
}

func TestApplyWithoutTextWarns(t *testing.T) {
	a, p := newTestApp(t)
	p.On("Show", mock.Anything)
	p.On("Warn", "Warning", "Enter watermark text.").Once()

	require.NoError(t, a.LoadImage(writeSource(t, 100, 80)))
	err := a.ApplyWatermark("", 120)

	assert.ErrorIs(t, err, ErrNoText)
	assert.Nil(t, a.Store().Watermarked())
	assert.Equal(t, StateLoaded, a.State())
	p.AssertExpectations(t)
}

func TestSaveBeforeApplyWarns(t *testing.T) {
	a, p := newTestApp(t)
	p.On("Warn", "Warning", "Apply watermark first.").Twice()

	a.SaveImage()
	err := a.Export(filepath.Join(t.TempDir(), "out.png"))

	assert.ErrorIs(t, err, ErrNotApplied)
	p.AssertExpectations(t)
	p.AssertNotCalled(t, "SaveImage", mock.Anything, mock.Anything)
}

func TestUploadApplySave(t *testing.T) {
	a, p := newTestApp(t)
	p.openPath = writeSource(t, 320, 240)
	p.savePath = filepath.Join(t.TempDir(), "result.jpg")

	p.On("OpenImage", openFilters).Once()
	p.On("Show", mock.MatchedBy(func(img image.Image) bool {
		return img.Bounds().Dx() == 500 && img.Bounds().Dy() == 400
	})).Twice()
	p.On("SaveImage", ".png", saveFilters).Once()
	p.On("Info", "Success", "Image saved successfully.").Once()

	a.Upload()
	require.Equal(t, StateLoaded, a.State())

	require.NoError(t, a.ApplyWatermark("Lorem ipsum dolor", 255))
	require.Equal(t, StateWatermarked, a.State())

	marked := a.Store().Watermarked()
	require.NotNil(t, marked)
	assert.Equal(t, 320, marked.Bounds().Dx())
	assert.Equal(t, 240, marked.Bounds().Dy())

	a.SaveImage()

	img, format, err := watermark.Open(p.savePath)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 320, img.Bounds().Dx())
	p.AssertExpectations(t)
}

func TestCancelledDialogsDoNothing(t *testing.T) {
	a, p := newTestApp(t)
	p.On("OpenImage", mock.Anything).Once()

	a.Upload()

	assert.Equal(t, StateEmpty, a.State())
	p.AssertExpectations(t)
	p.AssertNotCalled(t, "Show", mock.Anything)
	p.AssertNotCalled(t, "Error", mock.Anything)
}

func TestLoadFailureShowsError(t *testing.T) {
	a, p := newTestApp(t)
	p.On("Error", mock.MatchedBy(func(err error) bool {
		var derr *watermark.DecodeError
		return errors.As(err, &derr)
	})).Once()

	err := a.LoadImage(filepath.Join(t.TempDir(), "missing.png"))

	assert.Error(t, err)
	assert.Nil(t, a.Store().Source())
	p.AssertExpectations(t)
}

func TestExportAddsDefaultExtension(t *testing.T) {
	a, p := newTestApp(t)
	p.On("Show", mock.Anything)
	p.On("Info", "Success", "Image saved successfully.").Once()

	require.NoError(t, a.LoadImage(writeSource(t, 64, 64)))
	require.NoError(t, a.ApplyWatermark("x", 100))

	base := filepath.Join(t.TempDir(), "result")
	require.NoError(t, a.Export(base))

	_, format, err := watermark.Open(base + ".png")
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	p.AssertExpectations(t)
}

func TestExportFailureShowsError(t *testing.T) {
	a, p := newTestApp(t)
	p.On("Show", mock.Anything)
	p.On("Error", mock.MatchedBy(func(err error) bool {
		var werr *watermark.WriteError
		return errors.As(err, &werr)
	})).Once()

	require.NoError(t, a.LoadImage(writeSource(t, 64, 64)))
	require.NoError(t, a.ApplyWatermark("x", 100))

	err := a.Export(filepath.Join(t.TempDir(), "no-dir", "out.png"))

	assert.Error(t, err)
	p.AssertExpectations(t)
	p.AssertNotCalled(t, "Info", mock.Anything, mock.Anything)
}

func TestClampOpacity(t *testing.T) {
	cases := map[float64]uint8{
		-5:    0,
		0:     0,
		119.6: 120,
		255:   255,
		300:   255,
	}
	for in, want := range cases {
		assert.Equal(t, want, clampOpacity(in), "input %v", in)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "watermarked", StateWatermarked.String())
}
