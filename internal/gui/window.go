// Package gui is the fyne front end. It lays out the single window and
// implements app.Platform on top of fyne dialogs.
package gui

import (
	"image"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	watermark "github.com/gcslaoli/text-watermark-go"
	"github.com/gcslaoli/text-watermark-go/internal/app"
)

const windowTitle = "Watermarking App"

// Window is the main window. It satisfies app.Platform.
type Window struct {
	win     fyne.Window
	preview *canvas.Image
	log     logrus.FieldLogger
}

var _ app.Platform = (*Window)(nil)

// NewWindow builds the window for ctl inside fa and attaches itself as the
// controller's platform.
func NewWindow(fa fyne.App, ctl *app.App, previewW, previewH int, log logrus.FieldLogger) *Window {
	w := &Window{
		win: fa.NewWindow(windowTitle),
		log: log,
	}

	size := fyne.NewSize(float32(previewW), float32(previewH))
	w.preview = canvas.NewImageFromImage(watermark.Frame(nil, previewW, previewH, watermark.PreviewBackground))
	w.preview.FillMode = canvas.ImageFillContain
	w.preview.SetMinSize(size)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Black
	border.StrokeWidth = 1

	upload := widget.NewButton("Upload Image", ctl.Upload)

	text := widget.NewEntry()
	text.SetPlaceHolder("Watermark Text")

	opacity := widget.NewSlider(0, 255)
	opacity.Step = 1
	opacity.SetValue(ctl.InitialOpacity())

	apply := widget.NewButton("Apply Watermark", func() {
		ctl.ApplyWatermark(text.Text, opacity.Value)
	})
	save := widget.NewButton("Save Image", ctl.SaveImage)

	form := container.NewGridWithColumns(2,
		widget.NewLabel("Watermark Text:"), text,
		widget.NewLabel("Opacity:"), opacity,
		apply, save,
	)

	w.win.SetContent(container.NewPadded(container.NewVBox(
		container.NewCenter(upload),
		container.NewCenter(container.NewStack(w.preview, border)),
		form,
	)))
	w.win.SetFixedSize(true)

	ctl.SetPlatform(w)
	return w
}

// ShowAndRun shows the window and blocks in the fyne event loop.
func (w *Window) ShowAndRun() { w.win.ShowAndRun() }

func (w *Window) OpenImage(filters []app.FileFilter, onChosen func(path string)) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			w.Error(err)
			return
		}
		if r == nil {
			onChosen("")
			return
		}
		path := r.URI().Path()
		r.Close()
		onChosen(path)
	}, w.win)
	d.SetFilter(storage.NewExtensionFileFilter(extensions(filters)))
	d.Show()
}

func (w *Window) SaveImage(defaultExt string, filters []app.FileFilter, onChosen func(path string)) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			w.Error(err)
			return
		}
		if wc == nil {
			onChosen("")
			return
		}
		path := wc.URI().Path()
		wc.Close()
		onChosen(path)
	}, w.win)
	d.SetFileName("watermarked" + defaultExt)
	d.SetFilter(storage.NewExtensionFileFilter(extensions(filters)))
	d.Show()
}

func (w *Window) Warn(title, message string) {
	dialog.ShowInformation(title, message, w.win)
}

func (w *Window) Info(title, message string) {
	dialog.ShowInformation(title, message, w.win)
}

func (w *Window) Error(err error) {
	w.log.WithError(err).Debug("showing error dialog")
	dialog.ShowError(err, w.win)
}

func (w *Window) Show(img image.Image) {
	w.preview.Image = img
	w.preview.Refresh()
}

// extensions flattens the filter groups, since a fyne dialog takes a single
// extension list.
func extensions(filters []app.FileFilter) []string {
	var exts []string
	seen := make(map[string]bool)
	for _, f := range filters {
		for _, ext := range f.Extensions {
			ext = strings.ToLower(ext)
			if !seen[ext] {
				seen[ext] = true
				exts = append(exts, ext)
			}
		}
	}
	return exts
}
