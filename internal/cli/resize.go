package cli

import (
	"sizemic/internal/core/domain"
	"sizemic/internal/core/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type resizeFlags struct {
	input   string
	scale   float64
	width   int
	height  int
	output  string
	verbose bool
}

// NewResizeCommand returns the sizemic command, which resizes a single image.
func NewResizeCommand() *cobra.Command {
	f := &resizeFlags{}

	cmd := newCommand("sizemic", "Resize a single image by scale, width or height.", &f.verbose)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		conv, err := resolveConverter()
		if err != nil {
			return err
		}

		input, err := service.NewResizer(conv).Resize(cmd.Context(), domain.ResizeRequest{
			Input:  f.input,
			Scale:  f.scale,
			Width:  f.width,
			Height: f.height,
			Output: f.output,
		})
		if err != nil {
			return err
		}

		log.Info().Str("input", input).Msg("file resized")

		return nil
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "Image to process. Use relative paths.")
	flags.Float64VarP(&f.scale, "scale", "s", 1.0, "Amount to scale the image e.g., 0.5.")
	flags.IntVarP(&f.width, "width", "w", 0, "Resize width to this (in pixels).")
	flags.IntVarP(&f.height, "height", "h", 0, "Resize height to this (in pixels).")
	flags.StringVarP(&f.output, "output", "o", domain.CurrentDir,
		"File to save the resized image as. Use relative paths.")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Barf extra output to console.")
	addConverterFlag(flags)

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
