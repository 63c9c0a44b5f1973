// Package hmm performs exact inference over a discrete first-order hidden
// Markov model.
//
// A Model is built once from validated parameters and is read-only
// afterwards, so it can be shared by concurrent callers.
//
//	m, err := hmm.New(
//	    []string{"walk", "shop", "clean"},
//	    []string{"Rainy", "Sunny"},
//	    []float64{0.6, 0.4},
//	    [][]float64{{0.7, 0.3}, {0.4, 0.6}},
//	    [][]float64{{0.1, 0.4, 0.5}, {0.6, 0.3, 0.1}},
//	)
//	p, _ := m.Forward([]string{"walk", "shop", "clean"})    // 0.033612
//	path, _ := m.Viterbi([]string{"walk", "shop", "clean"}) // [Sunny Rainy Rainy]
package hmm

import (
	"log/slog"
	"slices"

	"github.com/happyhackingspace/hmm/markov"
)

// Model holds a validated HMM parameterization.
type Model struct {
	symbols    *markov.Alphabet // observation label -> column
	states     *markov.Alphabet // hidden state row -> label
	prior      []float64
	transition [][]float64
	emission   [][]float64
}

// Decoding is the most probable hidden-state path for a sequence.
type Decoding struct {
	Path        []string `json:"path"`
	Probability float64  `json:"probability"`
}

// New validates the parameters and returns a model. It fails with a
// *ValidationError describing the first violated invariant; the inputs are
// copied, so later changes by the caller do not affect the model.
func New(observationStates, hiddenStates []string, prior []float64, transition, emission [][]float64) (*Model, error) {
	p := &params{
		symbols:    observationStates,
		states:     hiddenStates,
		prior:      prior,
		transition: transition,
		emission:   emission,
	}
	return p.model()
}

// model validates p and copies it into a Model.
func (p *params) model() (*Model, error) {
	if err := p.firstViolation(); err != nil {
		return nil, err
	}

	m := &Model{
		symbols:    markov.NewAlphabet(p.symbols...),
		states:     markov.NewAlphabet(p.states...),
		prior:      slices.Clone(p.prior),
		transition: cloneMatrix(p.transition),
		emission:   cloneMatrix(p.emission),
	}
	slog.Debug("HMM constructed", "hidden_states", m.states.Size(), "observation_states", m.symbols.Size())
	return m, nil
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = slices.Clone(row)
	}
	return out
}

// ObservationStates returns the observation alphabet in column order.
func (m *Model) ObservationStates() []string {
	return slices.Clone(m.symbols.ToStr)
}

// HiddenStates returns the hidden state labels in row order.
func (m *Model) HiddenStates() []string {
	return slices.Clone(m.states.ToStr)
}

// Prior returns a copy of the initial state distribution.
func (m *Model) Prior() []float64 {
	return slices.Clone(m.prior)
}

// Transition returns a copy of the transition matrix.
func (m *Model) Transition() [][]float64 {
	return cloneMatrix(m.transition)
}

// Emission returns a copy of the emission matrix.
func (m *Model) Emission() [][]float64 {
	return cloneMatrix(m.emission)
}

// encode checks the sequence and maps it to symbol columns.
func (m *Model) encode(seq []string) ([]int, error) {
	if len(seq) == 0 {
		return nil, &SequenceError{Kind: EmptySequence}
	}
	obs, pos, ok := m.symbols.Encode(seq)
	if !ok {
		return nil, &SequenceError{Kind: UnknownSymbol, Symbol: seq[pos], Position: pos}
	}
	return obs, nil
}

// Forward returns the likelihood P(seq | model) computed with the forward
// algorithm. Probabilities are not rescaled, so very long sequences may
// underflow to zero.
func (m *Model) Forward(seq []string) (float64, error) {
	obs, err := m.encode(seq)
	if err != nil {
		return 0, err
	}
	return markov.Forward(m.prior, m.transition, m.emission, obs), nil
}

// Backward returns the same likelihood as Forward using the backward
// recurrence.
func (m *Model) Backward(seq []string) (float64, error) {
	obs, err := m.encode(seq)
	if err != nil {
		return 0, err
	}
	return markov.Backward(m.prior, m.transition, m.emission, obs), nil
}

// Viterbi returns the most probable hidden-state sequence for seq, one label
// per observation. Ties go to the lowest-indexed state.
func (m *Model) Viterbi(seq []string) ([]string, error) {
	d, err := m.Decode(seq)
	if err != nil {
		return nil, err
	}
	return d.Path, nil
}

// Decode is Viterbi that also reports the probability of the returned path.
func (m *Model) Decode(seq []string) (*Decoding, error) {
	obs, err := m.encode(seq)
	if err != nil {
		return nil, err
	}
	path, prob := markov.Viterbi(m.prior, m.transition, m.emission, obs)

	labels := make([]string, len(path))
	for t, id := range path {
		labels[t] = m.states.Label(id)
	}
	return &Decoding{Path: labels, Probability: prob}, nil
}
