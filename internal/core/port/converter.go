package port

import (
	"context"
	"sizemic/internal/core/domain"
)

type ImageConverter interface {
	// Identify probes the image at path and returns its pixel dimensions.
	Identify(ctx context.Context, path string) (domain.Dimensions, error)
	// Resize writes the source image scaled to the exact requested size into the destination in the given format.
	Resize(ctx context.Context, opts domain.ResizeOptions) error
}

// ConverterFactory builds a converter backend, failing when the backend is unavailable on this machine.
type ConverterFactory func() (ImageConverter, error)

type ConverterRegistry interface {
	// Register adds a named converter backend factory to the registry.
	Register(name string, factory ConverterFactory)
	// Get builds the converter backend registered under name or returns an error if not found.
	Get(name string) (ImageConverter, error)
	// ListConverters returns the names of all registered converter backends.
	ListConverters() []string
}
