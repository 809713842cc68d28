package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"sizemic/internal/adapters/file"
	"sizemic/internal/config"
	"sizemic/internal/core/domain"
	"sizemic/internal/core/port"
	"sizemic/internal/core/service"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	defaultManifestName = "sizemic-manifest"
	manifestExt         = ".json"
)

// storage holds manifests and the directories they describe.
type storage interface {
	port.ManifestStore
	port.Directory
}

type batchFlags struct {
	manifest string
	generate bool
	source   string
	scale    float64
	width    int
	height   int
	output   string
	name     string
	verbose  bool
}

// NewBatchCommand returns the sizemic-batch command, which generates and runs manifests.
func NewBatchCommand() *cobra.Command {
	f := &batchFlags{}
	local := file.NewLocal()

	cmd := newCommand("sizemic-batch", "Generate a manifest for a folder of images, or resize every image in one.",
		&f.verbose)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if f.generate {
			return generate(f, local)
		}

		return run(cmd, f, local)
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.manifest, "manifest", "m", defaultManifestName+manifestExt,
		"Manifest file to use for batch processing.")
	flags.BoolVarP(&f.generate, "generate", "g", false, "Generate a manifest.")
	flags.StringVarP(&f.source, "source", "r", domain.CurrentDir, "Folder holding the images to add to the manifest.")
	flags.Float64VarP(&f.scale, "scale", "s", 1.0, "Amount to scale the image e.g., 0.5.")
	flags.IntVarP(&f.width, "width", "w", 0, "Resize width to this (in pixels).")
	flags.IntVarP(&f.height, "height", "h", 0, "Resize height to this (in pixels).")
	flags.StringVarP(&f.output, "output", "o", "", "Folder to save resized images to, relative to the source.")
	flags.StringVarP(&f.name, "name", "n", defaultManifestName, "Name of the manifest.")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Barf extra output to console.")
	addConverterFlag(flags)

	return cmd
}

func generate(f *batchFlags, store storage) error {
	m, err := service.NewGenerator(store).GenerateManifest(f.source, f.scale, f.width, f.height, f.output, f.verbose)
	if err != nil {
		return err
	}

	path := filepath.Join(f.source, f.name+manifestExt)
	if err := store.WriteManifest(path, m); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("files", len(m.Files)).Msg("manifest written")

	return nil
}

func run(cmd *cobra.Command, f *batchFlags, store storage) error {
	if strings.TrimSpace(f.manifest) == "" {
		return fmt.Errorf("%w: no manifest given, use --manifest or --generate", domain.ErrInvalidInput)
	}

	m, err := store.ReadManifest(f.manifest)
	if err != nil {
		return err
	}

	if m.Verbose && !f.verbose {
		config.SetupLogging(cmd.OutOrStdout(), true)
	}

	conv, err := resolveConverter()
	if err != nil {
		return err
	}

	report, err := service.NewRunner(service.NewResizer(conv), store).Run(cmd.Context(), m, f.manifest)
	if err != nil {
		return err
	}

	if len(report.Failed) > 0 {
		errs := make([]error, len(report.Failed))
		for i, fe := range report.Failed {
			errs[i] = fe
		}

		log.Warn().
			Err(errors.Join(errs...)).
			Int("failed", len(report.Failed)).
			Int("total", report.Total).
			Msg("some files could not be resized")
	}

	return nil
}
