package cli

import (
	"sizemic/internal/adapters/converter"
	"sizemic/internal/config"
	"sizemic/internal/core/port"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// newCommand builds a root command that loads the config and sets up logging before it runs.
func newCommand(use, short string, verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(config.DefaultPaths()...); err != nil {
				return err
			}

			config.SetupLogging(cmd.OutOrStdout(), *verbose)

			return nil
		},
	}

	// -h is taken by --height, so help only gets the long form.
	cmd.Flags().Bool("help", false, "Show help for "+use+".")

	return cmd
}

func addConverterFlag(flags *pflag.FlagSet) {
	flags.StringP("converter", "c", converter.Magick, "Image backend to use: "+
		strings.Join(converter.NewDefaultRegistry().ListConverters(), ", ")+".")
	_ = viper.BindPFlag(config.KeyConverterBackend, flags.Lookup("converter"))
}

func resolveConverter() (port.ImageConverter, error) {
	return converter.Resolve(converter.NewDefaultRegistry(), viper.GetString(config.KeyConverterBackend))
}
