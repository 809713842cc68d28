package domain

import "encoding/json"

const (
	// DefaultOutputDir is used when a manifest is generated without an output directory.
	DefaultOutputDir = "sizemic"
	// DefaultSourceDir is recorded in generated manifests, which live inside their source directory.
	DefaultSourceDir = "."
	// ManifestDescription is written into every generated manifest.
	ManifestDescription = "Manifest file for batch processing images with sizemic-batch."
	// CurrentDir marks an output that should be derived from the input name.
	CurrentDir = "."
	// OutputSuffix is inserted before the extension of derived output names.
	OutputSuffix = "_sizemic"
	// Quality is handed to every converter backend. 1.0 means best quality.
	Quality = 1.0
)

// Manifest describes a batch resize job.
type Manifest struct {
	Description string   `json:"description"`
	SourceDir   string   `json:"sourceDir,omitempty"`
	Scale       float64  `json:"scale"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	OutputDir   string   `json:"outputDir"`
	Verbose     bool     `json:"verbose"`
	Files       []string `json:"files,omitempty"`
}

// Marshal serializes the manifest the way it is stored on disk.
func (m *Manifest) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// UnmarshalManifest parses a stored manifest.
func UnmarshalManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

type ResizeRequest struct {
	Input  string
	Scale  float64
	Width  int
	Height int
	Output string
}

type Dimensions struct {
	Width  int
	Height int
}

// ResizeOptions is what a converter backend receives for a single resize.
type ResizeOptions struct {
	SrcPath string
	DstPath string
	Quality float64
	Format  string
	Width   int
	Height  int
}

type FileError struct {
	File string
	Err  error
}

func (f FileError) Error() string {
	return f.File + ": " + f.Err.Error()
}

func (f FileError) Unwrap() error {
	return f.Err
}

// BatchReport summarizes a manifest run.
type BatchReport struct {
	Total   int
	Resized []string
	Failed  []FileError
}
