package hmm

import (
	"fmt"
	"slices"

	"github.com/happyhackingspace/hmm/internal/storage"
)

// readParams decodes a model document into constructor input. Arrays
// nested the wrong number of levels become dimensionality violations,
// reported at their place in the check order.
func readParams(path string) (*params, error) {
	doc, err := storage.ReadModel(path)
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	return &params{
		symbols:             doc.ObservationStates,
		states:              doc.HiddenStates,
		prior:               doc.Prior,
		transition:          doc.Transition,
		emission:            doc.Emission,
		priorMisshapen:      slices.Contains(doc.Misshapen, storage.FieldPrior),
		transitionMisshapen: slices.Contains(doc.Misshapen, storage.FieldTransition),
		emissionMisshapen:   slices.Contains(doc.Misshapen, storage.FieldEmission),
	}, nil
}

// Load reads a model document (.json, .yaml or .yml) and validates it like
// New. An array nested the wrong number of levels fails with the matching
// *ValidationError kind unless an earlier check fails first.
func Load(path string) (*Model, error) {
	p, err := readParams(path)
	if err != nil {
		return nil, err
	}
	return p.model()
}

// LintFile reads a model document and reports every invariant it violates,
// see Lint.
func LintFile(path string) error {
	p, err := readParams(path)
	if err != nil {
		return err
	}
	return p.lint()
}

// Save writes the model to path; the extension picks JSON or YAML.
func (m *Model) Save(path string) error {
	if m == nil || m.symbols == nil {
		return fmt.Errorf("hmm: model not initialized")
	}
	err := storage.WriteModel(path, &storage.Model{
		ObservationStates: m.ObservationStates(),
		HiddenStates:      m.HiddenStates(),
		Prior:             m.Prior(),
		Transition:        m.Transition(),
		Emission:          m.Emission(),
	})
	if err != nil {
		return fmt.Errorf("hmm: %w", err)
	}
	return nil
}
