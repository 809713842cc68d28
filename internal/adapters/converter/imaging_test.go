package converter

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sizemic/internal/core/domain"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	switch filepath.Ext(path) {
	case ".png":
		require.NoError(t, png.Encode(f, img))
	case ".gif":
		require.NoError(t, gif.Encode(f, img, nil))
	default:
		require.NoError(t, jpeg.Encode(f, img, nil))
	}
}

func TestImagingIdentify(t *testing.T) {
	dir := t.TempDir()
	c := NewImagingConverter()

	for _, name := range []string{"a.png", "b.jpeg", "c.gif"} {
		path := filepath.Join(dir, name)
		writeImage(t, path, 30, 17)

		got, err := c.Identify(t.Context(), path)
		require.NoError(t, err, name)
		assert.Equal(t, domain.Dimensions{Width: 30, Height: 17}, got, name)
	}
}

func TestImagingIdentifyNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := NewImagingConverter().Identify(t.Context(), path)
	require.Error(t, err)
}

func TestImagingResize(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format string
		width  int
		height int
	}{
		{name: "png", src: "a.png", format: "png", width: 10, height: 4},
		{name: "jpeg normalized", src: "b.jpeg", format: "jpg", width: 15, height: 30},
		{name: "gif", src: "c.gif", format: "gif", width: 7, height: 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, tc.src)
			dst := filepath.Join(dir, "out"+filepath.Ext(tc.src))
			writeImage(t, src, 20, 20)

			c := NewImagingConverter()
			err := c.Resize(t.Context(), domain.ResizeOptions{
				SrcPath: src,
				DstPath: dst,
				Quality: domain.Quality,
				Format:  tc.format,
				Width:   tc.width,
				Height:  tc.height,
			})
			require.NoError(t, err)

			got, err := c.Identify(t.Context(), dst)
			require.NoError(t, err)
			assert.Equal(t, domain.Dimensions{Width: tc.width, Height: tc.height}, got)
		})
	}
}

func TestImagingResizeErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writeImage(t, src, 4, 4)

	tests := []struct {
		name string
		opts domain.ResizeOptions
	}{
		{
			name: "unknown format",
			opts: domain.ResizeOptions{SrcPath: src, DstPath: filepath.Join(dir, "a.xyz"), Format: "xyz", Width: 2, Height: 2},
		},
		{
			name: "missing source",
			opts: domain.ResizeOptions{SrcPath: filepath.Join(dir, "missing.png"), DstPath: filepath.Join(dir, "b.png"),
				Format: "png", Width: 2, Height: 2},
		},
		{
			name: "missing output directory",
			opts: domain.ResizeOptions{SrcPath: src, DstPath: filepath.Join(dir, "nope", "b.png"), Format: "png",
				Width: 2, Height: 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewImagingConverter().Resize(t.Context(), tc.opts)
			require.Error(t, err)
		})
	}
}

// exifOrientation6 is an APP1 segment holding a big-endian TIFF header with a single Orientation=6 entry.
var exifOrientation6 = []byte{
	0xFF, 0xE1, 0x00, 0x22,
	'E', 'x', 'i', 'f', 0x00, 0x00,
	'M', 'M', 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08,
	0x00, 0x01,
	0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x06, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

// writeRotatedJPEG stores a red-left, blue-right image tagged as rotated by 90 degrees.
func writeRotatedJPEG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			if x < width/2 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))

	data := buf.Bytes()
	tagged := append(append(append([]byte{}, data[:2]...), exifOrientation6...), data[2:]...)
	require.NoError(t, os.WriteFile(path, tagged, 0o644))
}

func TestImagingResizeIgnoresEXIFOrientation(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "phone.jpg")
	dst := filepath.Join(dir, "phone_small.jpg")
	writeRotatedJPEG(t, src, 40, 20)

	c := NewImagingConverter()

	got, err := c.Identify(t.Context(), src)
	require.NoError(t, err)
	require.Equal(t, domain.Dimensions{Width: 40, Height: 20}, got)

	err = c.Resize(t.Context(), domain.ResizeOptions{
		SrcPath: src,
		DstPath: dst,
		Quality: domain.Quality,
		Format:  "jpg",
		Width:   20,
		Height:  10,
	})
	require.NoError(t, err)

	out, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), out.Bounds())

	r, _, b, _ := out.At(0, 0).RGBA()
	assert.Greater(t, r, b, "top-left should stay red")

	r, _, b, _ = out.At(19, 0).RGBA()
	assert.Greater(t, b, r, "top-right should stay blue")
}

func TestImagingResizeEncodeFailedRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	dst := filepath.Join(dir, "b.png")
	writeImage(t, src, 8, 8)

	c := NewImagingConverter()
	c.encode = func(w io.Writer, _ image.Image, _ imaging.Format, _ ...imaging.EncodeOption) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("mock error")
	}

	err := c.Resize(t.Context(), domain.ResizeOptions{SrcPath: src, DstPath: dst, Format: "png", Width: 4, Height: 4})
	require.ErrorContains(t, err, "mock error")

	assert.NoFileExists(t, dst)
}
