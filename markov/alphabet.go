// Package markov implements the dynamic programs of a discrete first-order
// hidden Markov model over integer-coded states and symbols.
//
// The kernels work in linear probability space and do not validate their
// inputs; callers are expected to hand them a well-formed parameterization
// (see the hmm package for the validated entry point).
package markov

// Alphabet maps between string labels and integer IDs in enumeration order.
type Alphabet struct {
	ToID  map[string]int
	ToStr []string
}

// NewAlphabet creates an alphabet holding the given labels in order.
// Repeated labels keep the ID of their first occurrence.
func NewAlphabet(labels ...string) *Alphabet {
	a := &Alphabet{
		ToID:  make(map[string]int, len(labels)),
		ToStr: make([]string, 0, len(labels)),
	}
	for _, l := range labels {
		a.Add(l)
	}
	return a
}

// Add adds a string to the alphabet if not already present, returns its ID.
func (a *Alphabet) Add(s string) int {
	if id, ok := a.ToID[s]; ok {
		return id
	}
	id := len(a.ToStr)
	a.ToID[s] = id
	a.ToStr = append(a.ToStr, s)
	return id
}

// Label returns the string for an ID, or "" when the ID is out of range.
func (a *Alphabet) Label(id int) string {
	if id < 0 || id >= len(a.ToStr) {
		return ""
	}
	return a.ToStr[id]
}

// Size returns the number of entries.
func (a *Alphabet) Size() int {
	return len(a.ToStr)
}

// Encode maps labels to IDs. It stops at the first label missing from the
// alphabet and returns its position with ok=false.
func (a *Alphabet) Encode(labels []string) (ids []int, missing int, ok bool) {
	ids = make([]int, len(labels))
	for i, l := range labels {
		id, found := a.ToID[l]
		if !found {
			return nil, i, false
		}
		ids[i] = id
	}
	return ids, -1, true
}
