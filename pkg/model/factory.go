package model

import (
	"regexp"
	"strings"
)

// DefaultOptions returns the option list assigned to new choice fields.
func DefaultOptions() []Option {
	return []Option{
		{Label: "Option 1", Value: "option_1"},
		{Label: "Option 2", Value: "option_2"},
	}
}

// NewField builds a field of the given kind with builder defaults. Unknown
// kinds produce an Unknown field so callers can still show a diagnostic.
func NewField(kind Kind, id string) Field {
	base := Base{ID: id, Label: kind.DefaultLabel()}
	switch {
	case kind.IsLeaf():
		in := Input{Base: base, Kind: kind}
		if kind.HasOptions() {
			in.Options = DefaultOptions()
		}
		return in
	case kind == KindRowLayout:
		row := NewRow(id)
		row.Label = base.Label
		return row
	case kind == KindSection:
		return Section{Base: base, Rows: []RowLayout{NewRow(id + "-row-1")}}
	default:
		return Unknown{Base: Base{ID: id}, Type: string(kind)}
	}
}

// NewRow returns a row with two empty half-width columns.
func NewRow(id string) RowLayout {
	return RowLayout{
		Base: Base{ID: id},
		Columns: []Column{
			{Width: DefaultColumnWidth},
			{Width: DefaultColumnWidth},
		},
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// OptionValue derives an option value from its label: lower case with runs of
// whitespace replaced by "_".
func OptionValue(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(label), "_")
}

// OptionsFromLabels builds options whose values are derived with OptionValue.
func OptionsFromLabels(labels ...string) []Option {
	out := make([]Option, 0, len(labels))
	for _, label := range labels {
		out = append(out, Option{Label: label, Value: OptionValue(label)})
	}
	return out
}
