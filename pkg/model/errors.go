package model

import "sort"

// Errors is the set of field ids that failed required-field validation.
// Field ids are unique across a tree, so one flat set serves nested fields.
type Errors map[string]bool

// Has reports whether id failed validation. Safe on a nil set.
func (e Errors) Has(id string) bool {
	return e[id]
}

// Len counts failed ids.
func (e Errors) Len() int {
	n := 0
	for _, failed := range e {
		if failed {
			n++
		}
	}
	return n
}

// IDs returns the failed ids sorted.
func (e Errors) IDs() []string {
	out := make([]string, 0, len(e))
	for id, failed := range e {
		if failed {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Without returns a copy with id cleared.
func (e Errors) Without(id string) Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		if k != id && v {
			out[k] = v
		}
	}
	return out
}
