package watermark

import (
	"errors"
	"fmt"
)

var (
	// ErrNilImage is returned when an operation receives no image.
	ErrNilImage = errors.New("nil image provided")
	// ErrEmptyText is returned by Apply when the watermark text is empty.
	ErrEmptyText = errors.New("empty watermark text")
)

// DecodeError reports an image file that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError reports an image that could not be written to Path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
