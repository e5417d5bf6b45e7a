package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// File is one file written by a stage.
type File struct {
	Path string `yaml:"path"`
	// Rows is the number of data rows or cells written, when meaningful.
	Rows int `yaml:"rows,omitempty"`
}

// Stage lists the files written by one pipeline stage.
type Stage struct {
	Name  string `yaml:"name"`
	Files []File `yaml:"files"`
}

// Manifest records what a single invocation wrote.
type Manifest struct {
	RunID     string    `yaml:"run_id"`
	StartedAt time.Time `yaml:"started_at"`
	Input     string    `yaml:"input,omitempty"`
	Stages    []Stage   `yaml:"stages"`
}

// NewManifest starts a manifest with a fresh run id.
func NewManifest(input string) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC().Truncate(time.Second),
		Input:     input,
	}
}

// Record appends a stage.
func (m *Manifest) Record(stage string, files ...File) {
	m.Stages = append(m.Stages, Stage{Name: stage, Files: files})
}

// Save writes the manifest as YAML, replacing any existing file.
func (m *Manifest) Save(path string) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// LoadManifest reads a manifest written by Save.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}
