package converter

import (
	"errors"
	"sizemic/internal/core/port"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	Magick  = "magick"
	Imaging = "imaging"
)

type Registry struct {
	factories map[string]port.ConverterFactory
}

// NewDefaultRegistry returns a registry holding every built-in backend.
func NewDefaultRegistry() *Registry {
	r := &Registry{}
	r.Register(Magick, func() (port.ImageConverter, error) {
		return NewMagickConverter()
	})
	r.Register(Imaging, func() (port.ImageConverter, error) {
		return NewImagingConverter(), nil
	})

	return r
}

func (r *Registry) Register(name string, factory port.ConverterFactory) {
	if r.factories == nil {
		r.factories = make(map[string]port.ConverterFactory)
	}

	log.Debug().Str("converter", name).Msg("adding converter to registry")
	r.factories[name] = factory
}

func (r *Registry) Get(name string) (port.ImageConverter, error) {
	log.Debug().Str("converter", name).Msg("fetching converter from registry")

	if r.factories == nil {
		return nil, errors.New("can't fetch converter, registry not initialized")
	}

	factory, ok := r.factories[name]
	if !ok {
		return nil, errors.New("converter not found")
	}

	return factory()
}

func (r *Registry) ListConverters() []string {
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Resolve returns the named converter. When ImageMagick was asked for but is not installed, the in-process
// imaging backend is used instead.
func Resolve(registry port.ConverterRegistry, name string) (port.ImageConverter, error) {
	c, err := registry.Get(name)
	if err == nil {
		return c, nil
	}

	if name != Magick {
		return nil, err
	}

	log.Warn().Err(err).Str("fallback", Imaging).Msg("magick converter unavailable, falling back")

	return registry.Get(Imaging)
}
