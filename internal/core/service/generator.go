package service

import (
	"fmt"
	"sizemic/internal/core/domain"
	"sizemic/internal/core/port"
	"strings"

	"github.com/rs/zerolog/log"
)

type Generator struct {
	dirs port.Directory
}

func NewGenerator(dirs port.Directory) *Generator {
	return &Generator{dirs: dirs}
}

// GenerateManifest describes a batch job over the images in source. Exactly one sizing mode ends up in the manifest,
// picked in the order scale, width, height.
func (g *Generator) GenerateManifest(source string, scale float64, width, height int, output string,
	verbose bool) (*domain.Manifest, error) {
	l := log.With().Str("source", source).Logger()

	l.Info().Msg("generating manifest")

	if !g.dirs.IsDir(source) {
		return nil, fmt.Errorf("%w: '%s' is not a directory", domain.ErrInvalidInput, source)
	}

	m := &domain.Manifest{
		Description: domain.ManifestDescription,
		SourceDir:   domain.DefaultSourceDir,
		Verbose:     verbose,
	}

	switch {
	case scale != 1.0:
		m.Scale = scale
	case width > 0:
		m.Scale = 1.0
		m.Width = width
	case height > 0:
		m.Scale = 1.0
		m.Height = height
	default:
		return nil, fmt.Errorf("%w: you must set either 'scale', 'width' or 'height'", domain.ErrInvalidInput)
	}

	files, err := g.dirs.ListImages(source)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		l.Info().Str("file", f).Msg("adding file")
	}

	m.Files = files

	m.OutputDir = strings.TrimSpace(output)
	if m.OutputDir == "" {
		m.OutputDir = domain.DefaultOutputDir
	}

	return m, nil
}
