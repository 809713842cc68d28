package domain

import (
	"math"
	"path/filepath"
	"slices"
	"strings"
)

// TargetDimensions picks the resize target for an image of size src.
//
// A scale other than 1.0 always wins, as does the case where neither width nor height is usable. Otherwise a
// positive width constrains the width and keeps the source height, and anything else constrains the height and
// keeps the source width.
func TargetDimensions(src Dimensions, scale float64, width, height int) Dimensions {
	if scale != 1.0 || (width < 1 && height < 1) {
		return Dimensions{
			Width:  int(math.Ceil(float64(src.Width) * scale)),
			Height: int(math.Ceil(float64(src.Height) * scale)),
		}
	}

	if width > 0 && height < 1 {
		return Dimensions{Width: width, Height: src.Height}
	}

	return Dimensions{Width: src.Width, Height: height}
}

// OutputName returns the file a resized input is written to.
func OutputName(output, input string) string {
	if output != CurrentDir {
		return output
	}

	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + OutputSuffix + ext
}

// Format derives the output format from the input extension.
func Format(input string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input), "."))
	if ext == "jpeg" {
		return "jpg"
	}

	return ext
}

// IsImageFile reports whether name carries one of the ImageExtensions, ignoring case.
func IsImageFile(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return slices.Contains(ImageExtensions, ext)
}

// FilterImages keeps the names accepted by IsImageFile, preserving order.
func FilterImages(names []string) []string {
	var images []string
	for _, name := range names {
		if IsImageFile(name) {
			images = append(images, name)
		}
	}

	return images
}
