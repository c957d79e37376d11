// Package watermark stamps a text watermark onto an image.
//
// The text is rendered in white at a fixed size onto a transparent layer and
// alpha-composited onto the source so that its ink box ends a fixed margin
// inside the bottom-right corner. The package also holds the loaded images
// (Store), produces downscaled previews and writes the result as PNG or JPEG.
// Everything works in memory; nothing here needs a display.
package watermark
