package model

import (
	"encoding/json"
	"strings"
)

// Field is a node of the form tree. The set of implementations is closed:
// Input, RowLayout, Section and Unknown.
type Field interface {
	FieldID() string
	FieldKind() Kind
	Common() Base
	sealed()
}

// Base holds the attributes every field carries.
type Base struct {
	ID                 string
	Label              string
	Required           bool
	DisplayOnShortForm bool
	// Placement keeps the optional grid hints (x, y, w, h) written by the
	// builder canvas. Nil when the field was never placed.
	Placement *Placement
}

// Placement is a grid position in builder canvas units.
type Placement struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Option is a selectable entry of a choice field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (b Base) FieldID() string { return b.ID }
func (b Base) Common() Base    { return b }

// Input is any leaf field: static text, single value inputs and choice lists.
type Input struct {
	Base
	Kind    Kind
	Options []Option
}

func (in Input) FieldKind() Kind { return in.Kind }
func (Input) sealed()            {}

// Column is one cell of a RowLayout.
type Column struct {
	Width  string
	Fields []Field
}

// RowLayout lays nested fields out in fixed-width columns.
type RowLayout struct {
	Base
	Columns []Column
}

func (RowLayout) FieldKind() Kind { return KindRowLayout }
func (RowLayout) sealed()         {}

// Widths returns the width descriptor of every column in order.
func (r RowLayout) Widths() []string {
	out := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		out[i] = col.Width
	}
	return out
}

// Section groups one or more rows under a heading.
type Section struct {
	Base
	Rows []RowLayout
}

func (Section) FieldKind() Kind { return KindSection }
func (Section) sealed()         {}

// Unknown carries a field whose type tag is not recognised. Raw is the
// payload as it was decoded.
type Unknown struct {
	Base
	Type string
	Raw  json.RawMessage
}

func (u Unknown) FieldKind() Kind { return Kind(u.Type) }
func (Unknown) sealed()           {}

// DisplayLabel returns the field label, falling back to the kind default.
func DisplayLabel(f Field) string {
	if f == nil {
		return ""
	}
	if label := strings.TrimSpace(f.Common().Label); label != "" {
		return f.Common().Label
	}
	return f.FieldKind().DefaultLabel()
}

// ResponseKey is the key a field's answer is stored under once flattened:
// its label, or "Field <id>" when the label is empty.
func ResponseKey(f Field) string {
	if f == nil {
		return ""
	}
	base := f.Common()
	if base.Label != "" {
		return base.Label
	}
	return "Field " + base.ID
}

// WithBase returns a copy of f carrying b as its common attributes.
func WithBase(f Field, b Base) Field {
	switch v := f.(type) {
	case Input:
		v.Base = b
		return v
	case RowLayout:
		v.Base = b
		return v
	case Section:
		v.Base = b
		return v
	case Unknown:
		v.Base = b
		return v
	default:
		return f
	}
}

// Children returns the fields nested directly below f, in column order.
// Section children are its rows.
func Children(f Field) []Field {
	switch v := f.(type) {
	case RowLayout:
		var out []Field
		for _, col := range v.Columns {
			out = append(out, col.Fields...)
		}
		return out
	case Section:
		out := make([]Field, 0, len(v.Rows))
		for _, row := range v.Rows {
			out = append(out, row)
		}
		return out
	default:
		return nil
	}
}
