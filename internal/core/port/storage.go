package port

import "sizemic/internal/core/domain"

type ManifestStore interface {
	// ReadManifest loads and parses the manifest stored at path.
	ReadManifest(path string) (*domain.Manifest, error)
	// WriteManifest persists the serialized manifest at path.
	WriteManifest(path string, manifest *domain.Manifest) error
}

type Directory interface {
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool
	// ListImages returns the sorted names of the image files directly inside dir.
	ListImages(dir string) ([]string, error)
	// Clear removes dir and everything below it. A missing dir is not an error.
	Clear(dir string) error
	// Create makes dir and any missing parents.
	Create(dir string) error
}
