package tree

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Visit is called for every field reached by Walk. depth is 0 for root
// fields. Returning false stops the walk.
type Visit func(f model.Field, depth int) bool

// Walk visits fields depth first: a field, then its section rows, then each
// column's fields in order.
func Walk(fields []model.Field, fn Visit) {
	walk(fields, 0, fn)
}

func walk(fields []model.Field, depth int, fn Visit) bool {
	for _, f := range fields {
		if f == nil {
			continue
		}
		if !fn(f, depth) {
			return false
		}
		if !walk(model.Children(f), depth+1, fn) {
			return false
		}
	}
	return true
}

// Find returns the first field in depth-first order carrying id.
func Find(fields []model.Field, id string) (model.Field, bool) {
	var found model.Field
	Walk(fields, func(f model.Field, _ int) bool {
		if f.FieldID() == id {
			found = f
			return false
		}
		return true
	})
	return found, found != nil
}

// IDs lists every id in the tree in depth-first order.
func IDs(fields []model.Field) []string {
	var out []string
	Walk(fields, func(f model.Field, _ int) bool {
		out = append(out, f.FieldID())
		return true
	})
	return out
}

// Validate reports the first id that appears more than once.
func Validate(fields []model.Field) error {
	seen := make(map[string]struct{})
	var err error
	Walk(fields, func(f model.Field, _ int) bool {
		id := f.FieldID()
		if _, dup := seen[id]; dup {
			err = fmt.Errorf("%w: %q", ErrDuplicateID, id)
			return false
		}
		seen[id] = struct{}{}
		return true
	})
	return err
}
