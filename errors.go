package hmm

// ValidationKind identifies which model invariant was violated.
type ValidationKind int

// Validation kinds, in the order the checks run.
const (
	EmptyAlphabet ValidationKind = iota + 1
	DuplicateLabel
	NonStochasticPrior
	PriorNotOneDimensional
	NegativePriorProbability
	PriorDimensionMismatch
	NonStochasticTransitionRow
	NegativeTransitionProbability
	NonSquareTransition
	TransitionNotTwoDimensional
	TransitionDimensionMismatch
	NonStochasticEmissionRow
	NegativeEmissionProbability
	EmissionDimensionMismatch
	EmissionNotTwoDimensional
)

var validationMessages = map[ValidationKind]string{
	EmptyAlphabet:                 "Observation states cannot be empty",
	DuplicateLabel:                "State labels must be unique",
	NonStochasticPrior:            "Prior probabilities need to sum to 1",
	PriorNotOneDimensional:        "Prior probability array should be 1D",
	NegativePriorProbability:      "Prior probabilities cannot be negative",
	PriorDimensionMismatch:        "The number of prior probabilities should correspond to the number of hidden states",
	NonStochasticTransitionRow:    "Every row of transition probability matrix must sum to 1",
	NegativeTransitionProbability: "Transition probabilities cannot be negative",
	NonSquareTransition:           "Transition probability matrix should be square",
	TransitionNotTwoDimensional:   "Transition probability matrix should be 2D",
	TransitionDimensionMismatch:   "The number of states in the transition probability matrix should be equal to the number of hidden states",
	NonStochasticEmissionRow:      "Every row of emission probability matrix must sum to 1",
	NegativeEmissionProbability:   "Emission probabilities cannot be negative",
	EmissionDimensionMismatch:     "The number of emission probabilities should correspond to number of hidden states",
	EmissionNotTwoDimensional:     "Emission probabilities array should be 2D",
}

// String returns the message reported for the kind.
func (k ValidationKind) String() string {
	if msg, ok := validationMessages[k]; ok {
		return msg
	}
	return "unknown validation error"
}

// ValidationError is returned by New when the parameters do not describe a
// usable model. Its message is exactly the kind's message, except for
// DuplicateLabel which names the repeated label.
type ValidationError struct {
	Kind  ValidationKind
	Row   int    // offending row of a matrix, -1 when not row-scoped
	Label string // repeated label, DuplicateLabel only
}

func (e *ValidationError) Error() string {
	if e.Kind == DuplicateLabel && e.Label != "" {
		return e.Kind.String() + ": " + e.Label
	}
	return e.Kind.String()
}

// Is matches any ValidationError of the same kind, so
// errors.Is(err, ErrNonStochasticPrior) works regardless of Row or Label.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

func invalid(kind ValidationKind) *ValidationError {
	return &ValidationError{Kind: kind, Row: -1}
}

func invalidRow(kind ValidationKind, row int) *ValidationError {
	return &ValidationError{Kind: kind, Row: row}
}

// Sentinels for errors.Is.
var (
	ErrEmptyAlphabet                 = invalid(EmptyAlphabet)
	ErrDuplicateLabel                = invalid(DuplicateLabel)
	ErrNonStochasticPrior            = invalid(NonStochasticPrior)
	ErrPriorNotOneDimensional        = invalid(PriorNotOneDimensional)
	ErrNegativePriorProbability      = invalid(NegativePriorProbability)
	ErrPriorDimensionMismatch        = invalid(PriorDimensionMismatch)
	ErrNonStochasticTransitionRow    = invalid(NonStochasticTransitionRow)
	ErrNegativeTransitionProbability = invalid(NegativeTransitionProbability)
	ErrNonSquareTransition           = invalid(NonSquareTransition)
	ErrTransitionNotTwoDimensional   = invalid(TransitionNotTwoDimensional)
	ErrTransitionDimensionMismatch   = invalid(TransitionDimensionMismatch)
	ErrNonStochasticEmissionRow      = invalid(NonStochasticEmissionRow)
	ErrNegativeEmissionProbability   = invalid(NegativeEmissionProbability)
	ErrEmissionDimensionMismatch     = invalid(EmissionDimensionMismatch)
	ErrEmissionNotTwoDimensional     = invalid(EmissionNotTwoDimensional)
)

// SequenceKind identifies why an observation sequence was rejected.
type SequenceKind int

const (
	EmptySequence SequenceKind = iota + 1
	UnknownSymbol
)

// SequenceError is returned by the inference methods for a bad input
// sequence. The model stays usable.
type SequenceError struct {
	Kind     SequenceKind
	Symbol   string // offending symbol, UnknownSymbol only
	Position int    // index of Symbol in the sequence
}

func (e *SequenceError) Error() string {
	switch e.Kind {
	case EmptySequence:
		return "input sequence shouldn't be empty"
	case UnknownSymbol:
		return "Invalid observation state: " + e.Symbol
	default:
		return "invalid sequence"
	}
}

// Is matches any SequenceError of the same kind.
func (e *SequenceError) Is(target error) bool {
	t, ok := target.(*SequenceError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrEmptySequence = &SequenceError{Kind: EmptySequence}
	ErrUnknownSymbol = &SequenceError{Kind: UnknownSymbol}
)
