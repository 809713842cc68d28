package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyConverterBackend = "converter.backend"

	envPrefix  = "SIZEMIC"
	configName = "sizemic"
)

// DefaultPaths returns the directories searched for sizemic.toml.
func DefaultPaths() []string {
	paths := []string{"."}

	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, configName))
	}

	return paths
}

// Load reads the optional config file from the first of paths that has one, along with SIZEMIC_ environment
// variables. A missing config file is not an error.
func Load(paths ...string) error {
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "console")
	viper.SetDefault(KeyConverterBackend, "magick")

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	for _, path := range paths {
		viper.AddConfigPath(path)
	}

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Debug().Msg("no config file found, using defaults")
			return nil
		}

		return err
	}

	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("read config file")

	return nil
}

// SetupLogging points the global logger at out. Verbose raises the configured level to at least info.
func SetupLogging(out io.Writer, verbose bool) {
	var logLevel zerolog.Level

	switch viper.GetString(KeyLogLevel) {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.WarnLevel
	}

	if verbose && logLevel > zerolog.InfoLevel {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if viper.GetString(KeyLogFormat) == "json" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
}
