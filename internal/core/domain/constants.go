package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrIOFailure    = errors.New("io failure")
	ErrExternalTool = errors.New("external tool failure")
)

// ImageExtensions lists the lower-cased extensions, without dot, that are picked up from source directories.
var ImageExtensions = []string{"jpg", "jpeg", "png", "gif"}
