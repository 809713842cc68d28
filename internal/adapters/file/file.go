package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sizemic/internal/core/domain"
	"sizemic/internal/core/port"
	"slices"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Local implements the storage ports on the local filesystem.
type Local struct{}

var (
	_ port.ManifestStore = (*Local)(nil)
	_ port.Directory     = (*Local)(nil)
)

func NewLocal() *Local {
	return &Local{}
}

func (l *Local) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (l *Local) ListImages(dir string) ([]string, error) {
	return ListImages(dir)
}

func (l *Local) Clear(dir string) error {
	return ClearDir(dir)
}

func (l *Local) Create(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: error creating directory %w", domain.ErrIOFailure, err)
	}

	return nil
}

func (l *Local) ReadManifest(path string) (*domain.Manifest, error) {
	return ReadManifest(path)
}

func (l *Local) WriteManifest(path string, manifest *domain.Manifest) error {
	data, err := manifest.Marshal()
	if err != nil {
		return fmt.Errorf("error encoding manifest %w", err)
	}

	return WriteFile(path, data)
}

// ListImages returns the sorted names of regular files in dir carrying an image extension.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		err = fmt.Errorf("%w: error listing directory %w", domain.ErrIOFailure, err)
		log.Error().Err(err).Str("dir", dir).Send()
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		if !domain.IsImageFile(entry.Name()) {
			log.Debug().Str("file", entry.Name()).Msg("skipping non-image file")
			continue
		}

		names = append(names, entry.Name())
	}

	slices.Sort(names)

	return names, nil
}

// ClearDir removes dir recursively. The directory is first renamed to a hidden sibling so that dir itself is gone
// as soon as ClearDir returns, even if the recursive removal is slow.
func ClearDir(dir string) error {
	if _, err := os.Lstat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	target := dir
	stale := filepath.Join(filepath.Dir(dir), fmt.Sprintf(".%s-%s", filepath.Base(dir), id.String()))

	if err := os.Rename(dir, stale); err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("could not move directory aside, removing in place")
	} else {
		target = stale
	}

	if err := os.RemoveAll(target); err != nil {
		err = fmt.Errorf("%w: error removing directory %w", domain.ErrIOFailure, err)
		log.Warn().Err(err).Str("dir", dir).Send()
		return err
	}

	log.Debug().Str("dir", dir).Msg("removed directory")

	return nil
}

// ReadManifest reads and parses the manifest at path.
func ReadManifest(path string) (*domain.Manifest, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("%w: error reading manifest %w", domain.ErrIOFailure, err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	m, err := domain.UnmarshalManifest(buf)
	if err != nil {
		err = fmt.Errorf("%w: error parsing manifest %w", domain.ErrInvalidInput, err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	return m, nil
}

// WriteFile saves data next to path under a temporary name and renames it into place.
func WriteFile(path string, data []byte) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	log.Debug().Int("bytes", len(data)).Str("path", path).Msg("writing file")

	tmp := fmt.Sprintf("%s.%s.tmp", path, id.String())

	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		err = fmt.Errorf("%w: error writing temp file %w", domain.ErrIOFailure, err)
		log.Error().Err(err).Send()
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		RemoveTempFile(tmp)
		err = fmt.Errorf("%w: error renaming temp file %w", domain.ErrIOFailure, err)
		log.Error().Err(err).Send()
		return err
	}

	log.Debug().Str("path", path).Msg("wrote file")

	return nil
}

// RemoveTempFile removes a specified temporary file at the given path and logs success or failure.
func RemoveTempFile(path string) {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up temp file")
		return
	}
	log.Debug().Str("path", path).Msg("cleaned up temp file")
}
