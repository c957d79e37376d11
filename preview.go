package watermark

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	// PreviewWidth and PreviewHeight bound the preview canvas.
	PreviewWidth  = 500
	PreviewHeight = 400
)

// PreviewBackground is the colour of the canvas around a preview.
var PreviewBackground = color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}

// Preview returns a copy of img scaled down to fit within maxW x maxH with
// its aspect ratio kept. Images that already fit are copied unscaled.
func Preview(img image.Image, maxW, maxH int) *image.NRGBA {
	if img == nil {
		return nil
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// Frame renders the preview of img centered on a w x h canvas filled with bg.
func Frame(img image.Image, w, h int, bg color.Color) *image.NRGBA {
	canvas := imaging.New(w, h, bg)
	if img == nil {
		return canvas
	}
	return imaging.OverlayCenter(canvas, Preview(img, w, h), 1.0)
}
