package render

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// RequiredMessage is shown under a field that failed required validation.
const RequiredMessage = "This field is required."

// ErrorSummary lists the display labels of failed fields in tree order,
// trimmed and de-duplicated.
func ErrorSummary(fields []model.Field, errs model.Errors) []string {
	if errs.Len() == 0 {
		return nil
	}
	var labels []string
	var collect func([]model.Field)
	collect = func(list []model.Field) {
		for _, f := range list {
			if f == nil {
				continue
			}
			if errs.Has(f.FieldID()) {
				labels = append(labels, model.DisplayLabel(f))
			}
			collect(model.Children(f))
		}
	}
	collect(fields)
	return normalizeMessages(labels)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
