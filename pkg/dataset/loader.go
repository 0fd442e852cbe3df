package dataset

import (
	"bytes"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/ahm16/progcheck/pkg/integrity"
)

// Extension is the file extension of dataset files.
const Extension = ".yml"

// Loader reads datasets from a filesystem.
type Loader struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// NewLoader creates a loader reading from fs.
func NewLoader(fs afero.Fs, logger zerolog.Logger) *Loader {
	return &Loader{
		fs:     fs,
		logger: logger.With().Str("component", "dataset-loader").Logger(),
	}
}

// Path returns the file holding the named dataset.
func Path(dataDir, dataset string) string {
	return filepath.Join(dataDir, dataset+Extension)
}

// LoadDataset reads and parses a single dataset.
func (l *Loader) LoadDataset(dataDir, dataset string) (integrity.Value, error) {
	path := Path(dataDir, dataset)

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return integrity.Null(), &LoadError{Dataset: dataset, Path: path, Err: err}
	}

	v, err := Parse(bytes.NewReader(data))
	if err != nil {
		return integrity.Null(), &LoadError{Dataset: dataset, Path: path, Err: err}
	}

	l.logger.Debug().
		Str("dataset", dataset).
		Str("path", path).
		Int("records", v.Len()).
		Msg("Dataset loaded")

	return v, nil
}

// Load reads all three datasets from dataDir.
func (l *Loader) Load(dataDir string) (integrity.Event, error) {
	values := make(map[string]integrity.Value, len(integrity.Datasets))
	for _, name := range integrity.Datasets {
		v, err := l.LoadDataset(dataDir, name)
		if err != nil {
			return integrity.Event{}, err
		}
		values[name] = v
	}

	return integrity.Event{
		People:   values[integrity.DatasetPeople],
		Sessions: values[integrity.DatasetSessions],
		Program:  values[integrity.DatasetProgram],
	}, nil
}

// FileNames returns the base names of the dataset files in load order.
func FileNames() []string {
	names := make([]string, len(integrity.Datasets))
	for i, name := range integrity.Datasets {
		names[i] = name + Extension
	}
	return names
}
