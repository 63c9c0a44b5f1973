package hmm

import (
	"math"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/gonum/floats"
)

// Tolerance is the absolute slack allowed when checking that the prior and
// every matrix row sum to 1.
const Tolerance = 1e-9

// params is the raw constructor input.
type params struct {
	symbols    []string
	states     []string
	prior      []float64
	transition [][]float64
	emission   [][]float64

	// Set when a decoded document nests the array the wrong number of
	// levels. A misshapen matrix that could not be read as rows is nil.
	priorMisshapen      bool
	transitionMisshapen bool
	emissionMisshapen   bool
}

// violations runs every check and returns the failures in check order:
// labels, then prior, then transition, then emission.
func (p *params) violations() []*ValidationError {
	var out []*ValidationError
	out = append(out, p.labelViolations()...)
	out = append(out, p.priorViolations()...)
	out = append(out, p.transitionViolations()...)
	out = append(out, p.emissionViolations()...)
	return out
}

// firstViolation returns the first failing check, or nil.
func (p *params) firstViolation() error {
	if v := p.violations(); len(v) > 0 {
		return v[0]
	}
	return nil
}

func (p *params) labelViolations() []*ValidationError {
	var out []*ValidationError
	if len(p.symbols) == 0 {
		out = append(out, invalid(EmptyAlphabet))
	}
	for _, labels := range [][]string{p.symbols, p.states} {
		seen := make(map[string]bool, len(labels))
		for _, l := range labels {
			if seen[l] {
				out = append(out, &ValidationError{Kind: DuplicateLabel, Row: -1, Label: l})
			}
			seen[l] = true
		}
	}
	return out
}

func (p *params) priorViolations() []*ValidationError {
	var out []*ValidationError
	if !stochastic(p.prior) {
		out = append(out, invalid(NonStochasticPrior))
	}
	if p.priorMisshapen {
		out = append(out, invalid(PriorNotOneDimensional))
	}
	if hasNegative(p.prior) {
		out = append(out, invalid(NegativePriorProbability))
	}
	if len(p.prior) != len(p.states) {
		out = append(out, invalid(PriorDimensionMismatch))
	}
	return out
}

func (p *params) transitionViolations() []*ValidationError {
	m := p.transition
	if m == nil && p.transitionMisshapen {
		return []*ValidationError{invalid(TransitionNotTwoDimensional)}
	}
	var out []*ValidationError
	for i, row := range m {
		if !stochastic(row) {
			out = append(out, invalidRow(NonStochasticTransitionRow, i))
		}
	}
	for i, row := range m {
		if hasNegative(row) {
			out = append(out, invalidRow(NegativeTransitionProbability, i))
		}
	}
	if len(m) > 0 && len(m[0]) != len(m) {
		out = append(out, invalid(NonSquareTransition))
	}
	if p.transitionMisshapen {
		out = append(out, invalid(TransitionNotTwoDimensional))
	} else if i := raggedRow(m); i >= 0 {
		out = append(out, invalidRow(TransitionNotTwoDimensional, i))
	}
	if len(m) != len(p.states) {
		out = append(out, invalid(TransitionDimensionMismatch))
	}
	return out
}

func (p *params) emissionViolations() []*ValidationError {
	m := p.emission
	if m == nil && p.emissionMisshapen {
		return []*ValidationError{invalid(EmissionNotTwoDimensional)}
	}
	var out []*ValidationError
	for i, row := range m {
		if !stochastic(row) {
			out = append(out, invalidRow(NonStochasticEmissionRow, i))
		}
	}
	for i, row := range m {
		if hasNegative(row) {
			out = append(out, invalidRow(NegativeEmissionProbability, i))
		}
	}
	if len(m) != len(p.states) {
		out = append(out, invalid(EmissionDimensionMismatch))
	}
	ragged := raggedRow(m)
	if p.emissionMisshapen {
		out = append(out, invalid(EmissionNotTwoDimensional))
	} else if ragged >= 0 {
		out = append(out, invalidRow(EmissionNotTwoDimensional, ragged))
	}
	// Every symbol needs a column, or a sequence lookup would index past a row.
	if !p.emissionMisshapen && ragged < 0 && len(m) > 0 && len(m[0]) != len(p.symbols) {
		out = append(out, invalid(EmissionDimensionMismatch))
	}
	return out
}

// stochastic reports whether v sums to 1 within Tolerance. NaN sums fail.
func stochastic(v []float64) bool {
	return math.Abs(floats.Sum(v)-1) <= Tolerance
}

func hasNegative(v []float64) bool {
	for _, x := range v {
		if x < 0 {
			return true
		}
	}
	return false
}

// raggedRow returns the first row whose length differs from row 0, or -1.
func raggedRow(m [][]float64) int {
	for i := 1; i < len(m); i++ {
		if len(m[i]) != len(m[0]) {
			return i
		}
	}
	return -1
}

// Lint checks the same invariants as New but keeps going after the first
// violation. It returns nil for a valid parameterization, otherwise a
// *multierror.Error listing every violation in check order.
func Lint(observationStates, hiddenStates []string, prior []float64, transition, emission [][]float64) error {
	p := &params{
		symbols:    observationStates,
		states:     hiddenStates,
		prior:      prior,
		transition: transition,
		emission:   emission,
	}
	return p.lint()
}

// lint collects every violation into a *multierror.Error, or returns nil.
func (p *params) lint() error {
	var result *multierror.Error
	for _, v := range p.violations() {
		result = multierror.Append(result, v)
	}
	return result.ErrorOrNil()
}
