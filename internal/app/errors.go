package app

import "errors"

var (
	ErrNoImage    = errors.New("no image loaded")
	ErrNoText     = errors.New("no watermark text entered")
	ErrNotApplied = errors.New("no watermark applied yet")
)

// UserInputError is an action rejected because of what the user did or did
// not do. It is shown as a warning and the program carries on.
type UserInputError struct {
	Err     error
	Message string
}

func (e *UserInputError) Error() string { return e.Err.Error() }

func (e *UserInputError) Unwrap() error { return e.Err }

func userInput(err error, message string) *UserInputError {
	return &UserInputError{Err: err, Message: message}
}
