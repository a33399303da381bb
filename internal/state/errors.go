package state

import "errors"

// Domain errors for the state package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, state.ErrTemplateNotFound) {
//	    // handle not found case
//	}
var (
	// ErrTemplateNotFound is returned when a template name does not exist.
	ErrTemplateNotFound = errors.New("state: template not found")

	// ErrBitmapNotFound is returned when a bitmap filename does not exist.
	ErrBitmapNotFound = errors.New("state: bitmap not found")

	// ErrInvalidTemplate is returned when a template fails validation.
	ErrInvalidTemplate = errors.New("state: invalid template")

	// ErrInvalidBitmap is returned when a bitmap upload fails validation.
	ErrInvalidBitmap = errors.New("state: invalid bitmap")
)
