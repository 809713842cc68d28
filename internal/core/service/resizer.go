package service

import (
	"context"
	"fmt"
	"sizemic/internal/core/domain"
	"sizemic/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Resizer struct {
	converter port.ImageConverter
}

func NewResizer(converter port.ImageConverter) *Resizer {
	return &Resizer{converter: converter}
}

// Resize probes the input, computes its target size and hands it to the converter. It returns the input on success.
func (r *Resizer) Resize(ctx context.Context, req domain.ResizeRequest) (string, error) {
	l := log.With().Str("input", req.Input).Logger()

	src, err := r.converter.Identify(ctx, req.Input)
	if err != nil {
		return "", fmt.Errorf("%w: identify %s: %w", domain.ErrExternalTool, req.Input, err)
	}

	target := domain.TargetDimensions(src, req.Scale, req.Width, req.Height)
	if target.Width < 1 || target.Height < 1 {
		return "", fmt.Errorf("%w: target size %dx%d for %s", domain.ErrInvalidInput, target.Width, target.Height,
			req.Input)
	}

	if req.Scale == 1.0 && req.Width < 1 && req.Height < 1 {
		l.Warn().Msg("no scale, width or height set, keeping source size")
	}

	opts := domain.ResizeOptions{
		SrcPath: req.Input,
		DstPath: domain.OutputName(req.Output, req.Input),
		Quality: domain.Quality,
		Format:  domain.Format(req.Input),
		Width:   target.Width,
		Height:  target.Height,
	}

	if err := r.converter.Resize(ctx, opts); err != nil {
		return "", fmt.Errorf("%w: resize %s: %w", domain.ErrExternalTool, req.Input, err)
	}

	l.Info().
		Int("width", opts.Width).
		Int("height", opts.Height).
		Str("output", opts.DstPath).
		Msg("resized image")

	return req.Input, nil
}

// ResizeWithCallbacks runs Resize and reports the outcome through exactly one of the callbacks. Nil callbacks are
// skipped.
func (r *Resizer) ResizeWithCallbacks(ctx context.Context, req domain.ResizeRequest, onError func(error),
	onDone func(string)) {
	input, err := r.Resize(ctx, req)
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return
	}

	if onDone != nil {
		onDone(input)
	}
}
