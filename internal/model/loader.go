package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// fileFormat is the on-disk JSON representation of an embedding model, as
// produced by an external fitting tool.
type fileFormat struct {
	Vocabulary []string    `json:"vocabulary"`
	Matrix     [][]float64 `json:"matrix"`
}

// Load reads an embedding model from a JSON file and validates it.
func Load(path string) (*Matrix, error) {
	cleanPath := filepath.Clean(path)
	f, err := os.Open(cleanPath) // #nosec G304 - path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open model file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("model file %s: %w", path, err)
	}
	return m, nil
}

// Read decodes and validates an embedding model from JSON.
func Read(r io.Reader) (*Matrix, error) {
	var ff fileFormat
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ff); err != nil {
		return nil, fmt.Errorf("failed to decode model JSON: %w", err)
	}
	return New(ff.Vocabulary, ff.Matrix)
}

// Save writes the model to a JSON file readable by Load.
func (m *Matrix) Save(path string) error {
	f, err := os.Create(filepath.Clean(path)) // #nosec G304 - path comes from the operator
	if err != nil {
		return fmt.Errorf("failed to create model file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := m.Write(f); err != nil {
		return fmt.Errorf("model file %s: %w", path, err)
	}
	return nil
}

// Write encodes the model as indented JSON.
func (m *Matrix) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fileFormat{Vocabulary: m.terms, Matrix: m.rows})
}
