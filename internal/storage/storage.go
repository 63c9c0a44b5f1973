// Package storage reads and writes HMM model documents and sequence fixtures.
//
// Documents are JSON or YAML, chosen by file extension. The parameter arrays
// are decoded loosely and then coerced, so a document that nests the prior
// one level too deep still decodes, with the prior flagged in
// Model.Misshapen for the validator to report.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("storage: unsupported file format")

// Storage wraps a data folder holding model documents and fixtures.
type Storage struct {
	Folder string
}

// NewStorage creates a Storage for the given data folder.
func NewStorage(folder string) *Storage {
	return &Storage{Folder: folder}
}

// Model is a decoded model document.
type Model struct {
	ObservationStates []string
	HiddenStates      []string
	Prior             []float64
	Transition        [][]float64
	Emission          [][]float64

	// Misshapen lists, in document order, the arrays nested the wrong number
	// of levels. Their values above are flattened; a matrix that is not a
	// list of lists is left nil.
	Misshapen []Field
}

// modelDoc is the on-disk layout. Array fields stay untyped until coerced.
type modelDoc struct {
	ObservationStates []string `json:"observation_states" yaml:"observation_states"`
	HiddenStates      []string `json:"hidden_states" yaml:"hidden_states"`
	Prior             any      `json:"prior_p" yaml:"prior_p"`
	Transition        any      `json:"transition_p" yaml:"transition_p"`
	Emission          any      `json:"emission_p" yaml:"emission_p"`
}

// Fixture is a decoded sequence document: an observation sequence, the
// model it belongs to and the expected results.
type Fixture struct {
	Name         string
	ModelPath    string // resolved against the fixture's folder
	Observations []string
	BestPath     []string
	Likelihood   *float64
}

type fixtureDoc struct {
	Model        string   `json:"model" yaml:"model"`
	Observations []string `json:"observation_state_sequence" yaml:"observation_state_sequence"`
	BestPath     []string `json:"best_hidden_state_sequence" yaml:"best_hidden_state_sequence"`
	Likelihood   *float64 `json:"likelihood,omitempty" yaml:"likelihood,omitempty"`
}

// fixtureSuffix marks sequence documents inside a data folder.
const fixtureSuffix = "_sequences"

func decode(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(data, v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func encode(path string, v any) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.MarshalIndent(v, "", "  ")
	case ".yaml", ".yml":
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadModel loads a model document from path.
func ReadModel(path string) (*Model, error) {
	var doc modelDoc
	if err := decode(path, &doc); err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	slog.Debug("Model document read", "path", path)

	m := &Model{
		ObservationStates: doc.ObservationStates,
		HiddenStates:      doc.HiddenStates,
	}
	var ok bool
	var err error
	if m.Prior, ok, err = toVector(FieldPrior, doc.Prior); err != nil {
		return nil, err
	} else if !ok {
		m.Misshapen = append(m.Misshapen, FieldPrior)
	}
	if m.Transition, ok, err = toMatrix(FieldTransition, doc.Transition); err != nil {
		return nil, err
	} else if !ok {
		m.Misshapen = append(m.Misshapen, FieldTransition)
	}
	if m.Emission, ok, err = toMatrix(FieldEmission, doc.Emission); err != nil {
		return nil, err
	} else if !ok {
		m.Misshapen = append(m.Misshapen, FieldEmission)
	}
	if len(m.Misshapen) > 0 {
		slog.Debug("Model document has misshapen arrays", "path", path, "fields", m.Misshapen)
	}
	return m, nil
}

// WriteModel writes a model document to path.
func WriteModel(path string, m *Model) error {
	doc := modelDoc{
		ObservationStates: m.ObservationStates,
		HiddenStates:      m.HiddenStates,
		Prior:             m.Prior,
		Transition:        m.Transition,
		Emission:          m.Emission,
	}
	data, err := encode(path, doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFixture loads a sequence document from path.
func ReadFixture(path string) (*Fixture, error) {
	var doc fixtureDoc
	if err := decode(path, &doc); err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	if doc.Model == "" {
		return nil, fmt.Errorf("read fixture %s: no model reference", path)
	}
	modelPath := doc.Model
	if !filepath.IsAbs(modelPath) {
		modelPath = filepath.Join(filepath.Dir(path), modelPath)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Fixture{
		Name:         strings.TrimSuffix(name, fixtureSuffix),
		ModelPath:    modelPath,
		Observations: doc.Observations,
		BestPath:     doc.BestPath,
		Likelihood:   doc.Likelihood,
	}, nil
}

// Fixtures returns every sequence document in the folder, sorted by name.
// Unreadable documents are skipped with a warning.
func (s *Storage) Fixtures() ([]Fixture, error) {
	entries, err := os.ReadDir(s.Folder)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if strings.HasSuffix(base, fixtureSuffix) && isDocument(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	fixtures := make([]Fixture, 0, len(names))
	for _, name := range names {
		f, err := ReadFixture(filepath.Join(s.Folder, name))
		if err != nil {
			slog.Warn("Cannot read fixture", "path", name, "error", err)
			continue
		}
		fixtures = append(fixtures, *f)
	}
	return fixtures, nil
}

func isDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
