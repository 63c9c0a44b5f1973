package hmm

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/happyhackingspace/hmm/internal/storage"
)

// EvalConfig holds configuration for evaluation.
type EvalConfig struct {
	Verbose bool
}

// FixtureResult is the outcome of one sequence fixture.
type FixtureResult struct {
	Name            string   `json:"name"`
	Path            []string `json:"path"`
	Expected        []string `json:"expected"`
	StatesCorrect   int      `json:"states_correct"`
	Likelihood      float64  `json:"likelihood"`
	LikelihoodError float64  `json:"likelihood_error,omitempty"` // |got - expected|, when expected is known
	Err             string   `json:"error,omitempty"`
}

// EvalResult summarizes decoding every fixture in a data folder.
type EvalResult struct {
	Fixtures           []FixtureResult
	StateAccuracy      float64
	SequenceAccuracy   float64
	StateCorrect       int
	StateTotal         int
	SequenceCorrect    int
	SequenceTotal      int
	MaxLikelihoodError float64
	Failed             int
}

// Evaluate runs Forward and Viterbi on every sequence fixture in dataDir and
// compares the results with the expectations stored alongside them.
// A fixture whose model fails to load or validate is counted as failed.
func Evaluate(dataDir string, config *EvalConfig) (*EvalResult, error) {
	verbose := config != nil && config.Verbose

	fixtures, err := storage.NewStorage(dataDir).Fixtures()
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	if len(fixtures) == 0 {
		return nil, fmt.Errorf("hmm: no fixtures found in %s", dataDir)
	}

	models := make(map[string]*Model)
	result := &EvalResult{}

	for _, f := range fixtures {
		fr := FixtureResult{Name: f.Name, Expected: f.BestPath}

		m, ok := models[f.ModelPath]
		if !ok {
			m, err = Load(f.ModelPath)
			if err != nil {
				fr.Err = err.Error()
				result.Failed++
				result.Fixtures = append(result.Fixtures, fr)
				slog.Warn("Cannot load model", "fixture", f.Name, "model", f.ModelPath, "error", err)
				continue
			}
			models[f.ModelPath] = m
		}

		if err := evaluateFixture(m, f, &fr); err != nil {
			fr.Err = err.Error()
			result.Failed++
			result.Fixtures = append(result.Fixtures, fr)
			slog.Warn("Fixture failed", "fixture", f.Name, "error", err)
			continue
		}

		if len(f.BestPath) > 0 {
			result.StateCorrect += fr.StatesCorrect
			result.StateTotal += len(f.BestPath)
			if slices.Equal(fr.Path, f.BestPath) {
				result.SequenceCorrect++
			}
			result.SequenceTotal++
		}
		result.MaxLikelihoodError = max(result.MaxLikelihoodError, fr.LikelihoodError)
		result.Fixtures = append(result.Fixtures, fr)

		if verbose {
			slog.Info("Fixture evaluated", "fixture", f.Name, "likelihood", fr.Likelihood,
				"states_correct", fr.StatesCorrect, "states", len(f.BestPath))
		}
	}

	if result.StateTotal > 0 {
		result.StateAccuracy = float64(result.StateCorrect) / float64(result.StateTotal)
	}
	if result.SequenceTotal > 0 {
		result.SequenceAccuracy = float64(result.SequenceCorrect) / float64(result.SequenceTotal)
	}
	return result, nil
}

func evaluateFixture(m *Model, f storage.Fixture, fr *FixtureResult) error {
	likelihood, err := m.Forward(f.Observations)
	if err != nil {
		return err
	}
	path, err := m.Viterbi(f.Observations)
	if err != nil {
		return err
	}

	fr.Path = path
	fr.Likelihood = likelihood
	if f.Likelihood != nil {
		fr.LikelihoodError = math.Abs(likelihood - *f.Likelihood)
	}
	for i := range min(len(path), len(f.BestPath)) {
		if path[i] == f.BestPath[i] {
			fr.StatesCorrect++
		}
	}
	return nil
}
