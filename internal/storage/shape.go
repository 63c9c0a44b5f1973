package storage

import "fmt"

// Field names parameter arrays in a model document.
type Field string

const (
	FieldPrior      Field = "prior_p"
	FieldTransition Field = "transition_p"
	FieldEmission   Field = "emission_p"
)

// TypeError reports a non-numeric array element.
type TypeError struct {
	Field Field
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("storage: %s holds non-numeric value %v", e.Field, e.Value)
}

func toFloat(field Field, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return 0, &TypeError{Field: field, Value: v}
	}
}

// flatten appends every number in v to out in document order and returns
// the nesting depth of v (0 for a bare number).
func flatten(field Field, v any, out []float64) ([]float64, int, error) {
	x, ok := v.([]any)
	if !ok {
		f, err := toFloat(field, v)
		if err != nil {
			return nil, 0, err
		}
		return append(out, f), 0, nil
	}
	depth := 0
	for _, e := range x {
		var d int
		var err error
		out, d, err = flatten(field, e, out)
		if err != nil {
			return nil, 0, err
		}
		depth = max(depth, d)
	}
	return out, depth + 1, nil
}

// toVector coerces a decoded value into a flat vector. A scalar or a nested
// array is flattened and reported with ok=false. A missing field decodes to
// an empty vector.
func toVector(field Field, v any) (vec []float64, ok bool, err error) {
	if v == nil {
		return nil, true, nil
	}
	vec, depth, err := flatten(field, v, nil)
	if err != nil {
		return nil, false, err
	}
	return vec, depth == 1, nil
}

// toMatrix coerces a decoded value into rows. Rows nested too deep are
// flattened and reported with ok=false; a value that is not a list of lists
// cannot be read as rows and comes back nil with ok=false. Rows may differ
// in length, rectangularity is a model invariant checked later.
func toMatrix(field Field, v any) (rows [][]float64, ok bool, err error) {
	if v == nil {
		return nil, true, nil
	}
	x, isList := v.([]any)
	if !isList {
		if _, err := toFloat(field, v); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	ok = true
	rows = make([][]float64, len(x))
	for i, e := range x {
		if _, isRow := e.([]any); !isRow {
			if _, _, err := flatten(field, v, nil); err != nil {
				return nil, false, err
			}
			return nil, false, nil
		}
		row, depth, err := flatten(field, e, nil)
		if err != nil {
			return nil, false, err
		}
		if depth != 1 {
			ok = false
		}
		rows[i] = row
	}
	return rows, ok, nil
}
