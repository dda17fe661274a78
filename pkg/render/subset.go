package render

import "github.com/goliatone/go-formbuilder/pkg/model"

// FieldSubset narrows which top-level fields are rendered or extracted.
type FieldSubset struct {
	// ShortForm keeps only fields flagged displayOnShortForm.
	ShortForm bool
	// IDs keeps only the listed root ids when non-empty.
	IDs []string
}

func (s FieldSubset) empty() bool {
	return !s.ShortForm && len(s.IDs) == 0
}

// ApplySubset filters the root list. Nested fields travel with their
// parent. The input slice is not modified.
func ApplySubset(fields []model.Field, subset FieldSubset) []model.Field {
	if subset.empty() {
		return fields
	}

	keep := make(map[string]struct{}, len(subset.IDs))
	for _, id := range subset.IDs {
		keep[id] = struct{}{}
	}

	out := make([]model.Field, 0, len(fields))
	for _, f := range fields {
		if f == nil {
			continue
		}
		if subset.ShortForm && !f.Common().DisplayOnShortForm {
			continue
		}
		if len(keep) > 0 {
			if _, ok := keep[f.FieldID()]; !ok {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

// ShortForm is ApplySubset with only the short form filter.
func ShortForm(fields []model.Field, enabled bool) []model.Field {
	return ApplySubset(fields, FieldSubset{ShortForm: enabled})
}
