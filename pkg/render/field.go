package render

import (
	"strconv"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/tree"
)

// DateLayout is the value format of date inputs.
const DateLayout = "2006-01-02"

// SelectPlaceholder is the empty entry of a dropdown.
const SelectPlaceholder = "Select..."

type nodeConfig struct {
	now func() time.Time
}

// NodeOption configures Render.
type NodeOption func(*nodeConfig)

// WithClock overrides the clock used for the date maximum.
func WithClock(now func() time.Time) NodeOption {
	return func(cfg *nodeConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// Render maps a field, its current value and the failed-id set to a display
// node. It has no side effects; interacting with the returned node calls
// onChange with the field's new value.
//
// Row layouts take a map of child id to value and report changes as a new
// map with the child entry replaced. Sections take a map of row id to row
// map and report changes the same way, one level up.
func Render(field model.Field, value any, onChange func(any), errs model.Errors, opts ...NodeOption) Node {
	cfg := nodeConfig{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return renderField(field, value, onChange, errs, &cfg)
}

// RenderFields renders a root list. values is keyed by field id and
// onChange receives the id of the root field that changed.
func RenderFields(fields []model.Field, values map[string]any, onChange func(id string, value any), errs model.Errors, opts ...NodeOption) []Node {
	nodes := make([]Node, 0, len(fields))
	for _, f := range fields {
		if f == nil {
			continue
		}
		id := f.FieldID()
		var cb func(any)
		if onChange != nil {
			cb = func(v any) { onChange(id, v) }
		}
		nodes = append(nodes, Render(f, values[id], cb, errs, opts...))
	}
	return nodes
}

func renderField(field model.Field, value any, onChange func(any), errs model.Errors, cfg *nodeConfig) Node {
	switch f := field.(type) {
	case model.Input:
		return renderInput(f, value, onChange, errs, cfg)
	case model.RowLayout:
		return renderRow(f, Aggregate(value), onChange, errs, cfg)
	case model.Section:
		return renderSection(f, Aggregate(value), onChange, errs, cfg)
	case model.Unknown:
		return unknownNode(f.Base, f.Type)
	case nil:
		return Node{Kind: NodeUnknown, Text: "Unknown field type: <nil>"}
	default:
		return unknownNode(field.Common(), string(field.FieldKind()))
	}
}

func unknownNode(base model.Base, typ string) Node {
	return Node{
		Kind:      NodeUnknown,
		FieldID:   base.ID,
		FieldKind: model.Kind(typ),
		Label:     base.Label,
		Text:      "Unknown field type: " + typ,
	}
}

func renderInput(f model.Input, value any, onChange func(any), errs model.Errors, cfg *nodeConfig) Node {
	n := Node{
		FieldID:   f.ID,
		FieldKind: f.Kind,
		Label:     model.DisplayLabel(f),
		Required:  f.Required,
		onChange:  onChange,
	}
	if errs.Has(f.ID) {
		n.Invalid = true
		n.Error = RequiredMessage
	}

	switch f.Kind {
	case model.KindHeader, model.KindLabel, model.KindParagraph:
		n.Kind = staticNodeKind(f.Kind)
		n.Text = staticText(f, value)
	case model.KindLineBreak:
		n.Kind = NodeRule
		n.onChange = nil
	case model.KindText, model.KindNumber, model.KindDate:
		n.Kind = NodeInput
		n.InputType = string(f.Kind)
		n.Value = StringValue(value)
		if f.Kind == model.KindDate {
			n.Max = cfg.now().Format(DateLayout)
		}
	case model.KindDropdown:
		n.Kind = NodeSelect
		n.Value = StringValue(value)
		n.Placeholder = SelectPlaceholder
		n.Choices = choices(f.Options, []string{n.Value})
	case model.KindMultipleChoice:
		n.Kind = NodeRadios
		n.Value = StringValue(value)
		n.Name = "field-" + f.ID
		n.Choices = choices(f.Options, []string{n.Value})
	case model.KindCheckboxes, model.KindTags:
		n.Kind = NodeCheckboxes
		if f.Kind == model.KindTags {
			n.Kind = NodeChips
		}
		n.Selected = StringSet(value)
		n.Choices = choices(f.Options, n.Selected)
	default:
		return unknownNode(f.Base, string(f.Kind))
	}
	return n
}

func staticNodeKind(kind model.Kind) NodeKind {
	switch kind {
	case model.KindHeader:
		return NodeHeading
	case model.KindLabel:
		return NodeLabel
	default:
		return NodeParagraph
	}
}

// staticText prefers the edited text, then the label, then the kind name.
func staticText(f model.Input, value any) string {
	if s := StringValue(value); s != "" {
		return s
	}
	if f.Label != "" {
		return f.Label
	}
	return f.Kind.TypeName()
}

func choices(options []model.Option, selected []string) []Choice {
	if len(options) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(selected))
	for _, v := range selected {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	out := make([]Choice, len(options))
	for i, opt := range options {
		_, on := set[opt.Value]
		out[i] = Choice{Label: opt.Label, Value: opt.Value, Selected: on}
	}
	return out
}

func renderRow(row model.RowLayout, agg map[string]any, onChange func(any), errs model.Errors, cfg *nodeConfig) Node {
	n := Node{
		Kind:      NodeRow,
		FieldID:   row.ID,
		FieldKind: model.KindRowLayout,
		Label:     row.Label,
		Required:  row.Required,
		Invalid:   errs.Has(row.ID),
		onChange:  onChange,
		Children:  make([]Node, 0, len(row.Columns)),
	}
	if n.Invalid {
		n.Error = RequiredMessage
	}

	for i, col := range row.Columns {
		column := Node{
			Kind:      NodeColumn,
			FieldID:   row.ID,
			Width:     tree.WidthPercent(col.Width),
			WidthSpec: col.Width,
			Name:      columnName(row.ID, i),
			Children:  make([]Node, 0, len(col.Fields)),
		}
		for _, child := range col.Fields {
			if child == nil {
				continue
			}
			childID := child.FieldID()
			var cb func(any)
			if onChange != nil {
				cb = func(v any) { onChange(merge(agg, childID, v)) }
			}
			column.Children = append(column.Children, renderField(child, agg[childID], cb, errs, cfg))
		}
		n.Children = append(n.Children, column)
	}
	return n
}

func renderSection(section model.Section, agg map[string]any, onChange func(any), errs model.Errors, cfg *nodeConfig) Node {
	n := Node{
		Kind:      NodeSection,
		FieldID:   section.ID,
		FieldKind: model.KindSection,
		Label:     model.DisplayLabel(section),
		Required:  section.Required,
		Invalid:   errs.Has(section.ID),
		onChange:  onChange,
		Children:  make([]Node, 0, len(section.Rows)),
	}
	if n.Invalid {
		n.Error = RequiredMessage
	}

	for _, row := range section.Rows {
		rowID := row.ID
		var cb func(any)
		if onChange != nil {
			cb = func(v any) { onChange(merge(agg, rowID, v)) }
		}
		n.Children = append(n.Children, renderRow(row, Aggregate(agg[rowID]), cb, errs, cfg))
	}
	return n
}

func columnName(rowID string, index int) string {
	return rowID + "-col-" + strconv.Itoa(index)
}
