package app

import "image"

// FileFilter is a named group of file extensions offered by a file dialog.
type FileFilter struct {
	Name       string
	Extensions []string
}

var (
	openFilters = []FileFilter{
		{Name: "Image Files", Extensions: []string{".png", ".jpg", ".jpeg"}},
	}
	saveFilters = []FileFilter{
		{Name: "PNG Image", Extensions: []string{".png"}},
		{Name: "JPEG Image", Extensions: []string{".jpg"}},
	}
)

// Platform is everything the controller needs from the windowing system.
// Dialog results arrive through callbacks; an empty path means the user
// cancelled.
type Platform interface {
	OpenImage(filters []FileFilter, onChosen func(path string))
	SaveImage(defaultExt string, filters []FileFilter, onChosen func(path string))
	Warn(title, message string)
	Info(title, message string)
	Error(err error)
	Show(img image.Image)
}
