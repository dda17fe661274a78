// Package extract flattens a form's raw answers into the label-keyed record
// that is persisted and exported, and checks required fields on the way.
package extract

import (
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// KeyMode selects how flattened answers are keyed.
type KeyMode int

const (
	// KeyByLabel keys answers by label, or "Field <id>" for unlabelled
	// fields.
	KeyByLabel KeyMode = iota
	// KeyByID keys answers by field id.
	KeyByID
)

type options struct {
	shortForm bool
	keys      KeyMode
}

// Option configures Extract.
type Option func(*options)

// WithShortForm limits extraction to root fields flagged
// displayOnShortForm.
func WithShortForm(enabled bool) Option {
	return func(o *options) {
		o.shortForm = enabled
	}
}

// WithKeys selects the key of each flattened answer.
func WithKeys(mode KeyMode) Option {
	return func(o *options) {
		o.keys = mode
	}
}

// Result is the outcome of one extraction pass.
type Result struct {
	Flat   *model.FlatResponses
	Errors model.Errors
}

// OK reports whether every required field was answered. Only an OK result
// may be persisted.
func (r Result) OK() bool {
	return r.Errors.Len() == 0
}

// Extract walks the root fields in order. Row layouts contribute their
// nested fields flattened to the top level and no key of their own; every
// other field contributes raw[id], or "" when absent. Every required field,
// nested ones included, is checked; errors are collected in one pass.
//
// Two fields resolving to the same key overwrite each other: the later
// value wins and the key stays where it was first set.
func Extract(fields []model.Field, raw map[string]any, opts ...Option) Result {
	var cfg options
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	x := extractor{
		flat: model.NewFlatResponses(),
		errs: model.Errors{},
		keys: cfg.keys,
	}
	for _, f := range render.ShortForm(fields, cfg.shortForm) {
		switch field := f.(type) {
		case model.RowLayout:
			x.row(field, raw, render.Aggregate(raw[field.ID]))
		default:
			x.leaf(f, valueOrEmpty(raw, f.FieldID()))
		}
	}
	return Result{Flat: x.flat, Errors: x.errs}
}

type extractor struct {
	flat *model.FlatResponses
	errs model.Errors
	keys KeyMode
}

// row flattens the fields of a row one level deep. Answers are looked up in
// raw first and then in the row's own aggregate map, which is how the
// renderer reports them. A row nested in a column is a single entry keyed
// by its own label holding its aggregate.
func (x *extractor) row(row model.RowLayout, raw, agg map[string]any) {
	contributed := make(map[string]any)
	for _, col := range row.Columns {
		for _, child := range col.Fields {
			if child == nil {
				continue
			}
			id := child.FieldID()
			value := lookup(raw, agg, id)
			x.leaf(child, value)
			if !IsEmpty(value) {
				contributed[id] = value
			}
		}
	}
	x.check(row, contributed)
}

func (x *extractor) leaf(f model.Field, value any) {
	x.flat.Set(x.key(f), value)
	x.check(f, value)
}

func (x *extractor) check(f model.Field, value any) {
	if f.Common().Required && IsEmpty(value) {
		x.errs[f.FieldID()] = true
	}
}

func (x *extractor) key(f model.Field) string {
	if x.keys == KeyByID {
		return f.FieldID()
	}
	return model.ResponseKey(f)
}

func lookup(raw, agg map[string]any, id string) any {
	if v, ok := raw[id]; ok && v != nil {
		return v
	}
	if v, ok := agg[id]; ok && v != nil {
		return v
	}
	return ""
}

func valueOrEmpty(raw map[string]any, id string) any {
	if v, ok := raw[id]; ok && v != nil {
		return v
	}
	return ""
}

// IsEmpty reports whether a value counts as unanswered: nil, the empty
// string, an empty list or a map with no keys.
func IsEmpty(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case []string:
		return len(value) == 0
	case []any:
		return len(value) == 0
	case map[string]any:
		return len(value) == 0
	case map[string]string:
		return len(value) == 0
	default:
		return false
	}
}
