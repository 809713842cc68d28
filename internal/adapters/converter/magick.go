package converter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"sizemic/internal/core/domain"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

type magickBinary struct {
	probe    []string
	identify []string
	convert  []string
}

// ImageMagick 7 ships a single magick binary, older releases ship identify and convert.
var magickBinaries = []magickBinary{
	{
		probe:    []string{"magick", "-version"},
		identify: []string{"magick", "identify"},
		convert:  []string{"magick"},
	},
	{
		probe:    []string{"convert", "-version"},
		identify: []string{"identify"},
		convert:  []string{"convert"},
	},
}

type MagickConverter struct {
	identifyBinary []string
	convertBinary  []string
	run            runFunc
}

func NewMagickConverter() (*MagickConverter, error) {
	return newMagickConverter(execRun)
}

func newMagickConverter(run runFunc) (*MagickConverter, error) {
	m := &MagickConverter{run: run}

	for _, binary := range magickBinaries {
		_, err := run(context.Background(), binary.probe[0], binary.probe[1:]...)
		if err != nil {
			log.Debug().Strs("command", binary.probe).Msg("binary not found")
			continue
		}

		log.Debug().Strs("command", binary.probe).Msg("binary found")
		m.identifyBinary = binary.identify
		m.convertBinary = binary.convert
		break
	}

	if len(m.convertBinary) == 0 {
		return nil, errors.New("magick binary not available")
	}

	return m, nil
}

func (m *MagickConverter) Identify(ctx context.Context, path string) (domain.Dimensions, error) {
	// [0] limits animated images to their first frame.
	args := append(append([]string{}, m.identifyBinary[1:]...), "-format", "%w %h", path+"[0]")

	out, err := m.run(ctx, m.identifyBinary[0], args...)
	if err != nil {
		log.Error().Err(err).Bytes("magickOutput", out).Str("path", path).Msg("magick identify failed")
		return domain.Dimensions{}, fmt.Errorf("identify %s: %w", path, err)
	}

	return parseDimensions(out)
}

func (m *MagickConverter) Resize(ctx context.Context, opts domain.ResizeOptions) error {
	args := append(append([]string{}, m.convertBinary[1:]...), resizeArgs(opts)...)

	out, err := m.run(ctx, m.convertBinary[0], args...)
	if err != nil {
		log.Error().Err(err).Bytes("magickOutput", out).Str("path", opts.SrcPath).Msg("magick resize failed")
		return fmt.Errorf("resize %s: %w", opts.SrcPath, err)
	}

	log.Debug().Str("dst", opts.DstPath).Msg("magick resize finished")

	return nil
}

func resizeArgs(opts domain.ResizeOptions) []string {
	// ! forces the exact geometry instead of fitting into the box.
	geometry := fmt.Sprintf("%dx%d!", opts.Width, opts.Height)
	quality := strconv.Itoa(int(math.Round(opts.Quality * 100)))

	dst := opts.DstPath
	if opts.Format != "" {
		dst = opts.Format + ":" + dst
	}

	return []string{opts.SrcPath, "-resize", geometry, "-quality", quality, dst}
}

func parseDimensions(out []byte) (domain.Dimensions, error) {
	fields := strings.Fields(string(out))
	if len(fields) < 2 {
		return domain.Dimensions{}, fmt.Errorf("unexpected identify output %q", string(out))
	}

	width, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Dimensions{}, fmt.Errorf("invalid width in identify output: %w", err)
	}

	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return domain.Dimensions{}, fmt.Errorf("invalid height in identify output: %w", err)
	}

	return domain.Dimensions{Width: width, Height: height}, nil
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
