package converter

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"sizemic/internal/core/domain"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

type encodeFunc func(w io.Writer, img image.Image, format imaging.Format, opts ...imaging.EncodeOption) error

// ImagingConverter resizes in process with the imaging package. It needs no external binaries.
//
// Like the magick backend it ignores EXIF orientation, so Identify and Resize agree on which side is the width.
type ImagingConverter struct {
	filter imaging.ResampleFilter
	encode encodeFunc
}

func NewImagingConverter() *ImagingConverter {
	return &ImagingConverter{filter: imaging.Lanczos, encode: imaging.Encode}
}

func (c *ImagingConverter) Identify(ctx context.Context, path string) (domain.Dimensions, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dimensions{}, err
	}

	img, err := imaging.Open(path)
	if err != nil {
		return domain.Dimensions{}, fmt.Errorf("failed to open image: %w", err)
	}

	bounds := img.Bounds()

	return domain.Dimensions{Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

func (c *ImagingConverter) Resize(ctx context.Context, opts domain.ResizeOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format, err := imaging.FormatFromExtension(opts.Format)
	if err != nil {
		return fmt.Errorf("unsupported format %q: %w", opts.Format, err)
	}

	src, err := imaging.Open(opts.SrcPath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}

	dst := imaging.Resize(src, opts.Width, opts.Height, c.filter)

	f, err := os.Create(opts.DstPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	quality := int(math.Round(opts.Quality * 100))
	if err := c.encode(f, dst, format, imaging.JPEGQuality(quality)); err != nil {
		f.Close()
		removePartial(opts.DstPath)
		return fmt.Errorf("failed to encode image %s: %w", opts.DstPath, err)
	}

	if err := f.Close(); err != nil {
		removePartial(opts.DstPath)
		return fmt.Errorf("failed to close output: %w", err)
	}

	log.Debug().Str("dst", opts.DstPath).Int("width", opts.Width).Int("height", opts.Height).
		Msg("imaging resize finished")

	return nil
}

// removePartial deletes an output that could not be written completely.
func removePartial(path string) {
	if err := os.Remove(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not clean up partial output")
	}
}
