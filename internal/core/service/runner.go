package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sizemic/internal/core/domain"
	"sizemic/internal/core/port"
	"strings"

	"github.com/rs/zerolog/log"
)

// Runner processes manifests one file at a time.
type Runner struct {
	resizer    *Resizer
	dirs       port.Directory
	newTracker func(total int) Tracker
	// OnResized is called with the input path of every successfully resized file.
	OnResized func(input string)
	// OnFailed is called with the input path and error of every file that could not be resized.
	OnFailed func(input string, err error)
}

func NewRunner(resizer *Resizer, dirs port.Directory) *Runner {
	return &Runner{resizer: resizer, dirs: dirs, newTracker: func(total int) Tracker {
		return NewBatchTracker(total)
	}}
}

// WithTracker replaces the tracker each run records its outcomes in.
func (r *Runner) WithTracker(newTracker func(total int) Tracker) *Runner {
	r.newTracker = newTracker
	return r
}

// Run resizes every image the manifest refers to. Paths in the manifest are relative to the directory holding the
// manifest file. Failures of single files are recorded in the report and do not stop the run. An error is only
// returned if the source directory cannot be listed or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, manifest *domain.Manifest, manifestPath string) (*domain.BatchReport,
	error) {
	base := filepath.Dir(manifestPath)

	outputDir := manifest.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = domain.DefaultOutputDir
	}
	outputDir = resolve(base, outputDir)

	sourceDir := base
	if manifest.SourceDir != "" {
		sourceDir = resolve(base, manifest.SourceDir)
	}

	if contains(outputDir, base) || contains(outputDir, sourceDir) {
		return nil, fmt.Errorf("%w: output directory '%s' would replace the source", domain.ErrInvalidInput,
			outputDir)
	}

	l := log.With().Str("manifest", manifestPath).Str("outputDir", outputDir).Logger()

	if err := r.dirs.Clear(outputDir); err != nil {
		l.Error().Err(err).Msgf("unable to remove '%s'", outputDir)
	}

	if err := r.dirs.Create(outputDir); err != nil {
		l.Error().Err(err).Msgf("unable to create '%s'", outputDir)
	}

	files, err := r.collectFiles(sourceDir, manifest)
	if err != nil {
		return nil, err
	}

	tracker := r.newTracker(len(files))

	if len(files) == 0 {
		l.Debug().Msg("no files to process")
		return tracker.Report(), nil
	}

	l.Info().Int("files", len(files)).Msg("starting batch")

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			l.Warn().Int("remaining", len(files)-i).Msg("batch cancelled")
			return tracker.Report(), err
		}

		req := domain.ResizeRequest{
			Input:  filepath.Join(sourceDir, file),
			Scale:  manifest.Scale,
			Width:  manifest.Width,
			Height: manifest.Height,
			Output: filepath.Join(outputDir, file),
		}

		l.Debug().Str("file", file).Int("index", i+1).Int("total", len(files)).Msg("processing file")

		r.resizer.ResizeWithCallbacks(ctx, req,
			func(err error) {
				l.Error().Err(err).Str("file", file).Msg("could not resize file")
				tracker.Failed(req.Input, err)
				if r.OnFailed != nil {
					r.OnFailed(req.Input, err)
				}
			},
			func(input string) {
				l.Info().Str("file", file).Msg("file resized")
				tracker.Resized(input)
				if r.OnResized != nil {
					r.OnResized(input)
				}
			})
	}

	report := tracker.Report()

	l.Info().
		Int("resized", len(report.Resized)).
		Int("failed", len(report.Failed)).
		Msg("batch finished")

	return report, nil
}

// collectFiles lists the source directory, or falls back to the file list of manifests that predate sourceDir.
func (r *Runner) collectFiles(sourceDir string, manifest *domain.Manifest) ([]string, error) {
	if manifest.SourceDir == "" {
		return domain.FilterImages(manifest.Files), nil
	}

	files, err := r.dirs.ListImages(sourceDir)
	if err != nil {
		log.Error().Err(err).Str("sourceDir", sourceDir).Msg("could not list source directory")
		return nil, err
	}

	return files, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(base, path)
}

// contains reports whether path is dir itself or lies below it.
func contains(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		absDir = filepath.Clean(dir)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = filepath.Clean(path)
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
