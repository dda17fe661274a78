package tui

import "github.com/goliatone/go-formbuilder/pkg/model"

// State tracks raw answers keyed by root field id, in the shape the
// display tree reports them, and the ids still flagged as failing.
type State struct {
	values map[string]any
	errors model.Errors
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs model.Errors) *State {
	return &State{
		values: cloneValues(prefill),
		errors: cloneErrors(errs),
	}
}

// Values returns the current value map (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Errors returns the ids still flagged.
func (s *State) Errors() model.Errors {
	if s == nil {
		return nil
	}
	return s.errors
}

// Value returns the raw answer of a root field.
func (s *State) Value(id string) any {
	if s == nil {
		return nil
	}
	return s.values[id]
}

// Set stores the answer of a root field and clears its error flag.
func (s *State) Set(id string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[id] = value
	s.errors = s.errors.Without(id)
}

// Clear drops the error flag of a nested field once it is answered.
func (s *State) Clear(id string) {
	s.errors = s.errors.Without(id)
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func cloneErrors(src model.Errors) model.Errors {
	out := make(model.Errors, len(src))
	for k, v := range src {
		if v {
			out[k] = true
		}
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
