package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultColumnWidth is assigned to columns that carry no width.
const DefaultColumnWidth = "1/2"

// FieldList is a slice of fields that knows how to decode itself from the
// tagged JSON representation.
type FieldList []Field

// wireField is the union of every property a field may carry on the wire.
type wireField struct {
	Type               string            `json:"type"`
	ID                 string            `json:"id"`
	Label              string            `json:"label,omitempty"`
	Required           bool              `json:"required,omitempty"`
	DisplayOnShortForm bool              `json:"displayOnShortForm,omitempty"`
	X                  *int              `json:"x,omitempty"`
	Y                  *int              `json:"y,omitempty"`
	W                  *int              `json:"w,omitempty"`
	H                  *int              `json:"h,omitempty"`
	Options            []Option          `json:"options,omitempty"`
	Layout             []string          `json:"layout,omitempty"`
	Columns            []wireColumn      `json:"columns,omitempty"`
	Rows               []json.RawMessage `json:"rows,omitempty"`
}

type wireColumn struct {
	Width  string            `json:"width,omitempty"`
	Fields []json.RawMessage `json:"fields"`
}

type encodedColumn struct {
	Width  string    `json:"width"`
	Fields FieldList `json:"fields"`
}

// DecodeField decodes a single tagged field.
func DecodeField(data []byte) (Field, error) {
	var wire wireField
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("model: decode field: %w", err)
	}

	base := Base{
		ID:                 wire.ID,
		Label:              wire.Label,
		Required:           wire.Required,
		DisplayOnShortForm: wire.DisplayOnShortForm,
		Placement:          wirePlacement(wire),
	}

	kind := Kind(wire.Type)
	switch {
	case kind.IsLeaf():
		return Input{Base: base, Kind: kind, Options: cloneOptions(wire.Options)}, nil
	case kind == KindRowLayout:
		return decodeRow(base, wire)
	case kind == KindSection:
		section := Section{Base: base}
		for i, raw := range wire.Rows {
			row, err := decodeRowPayload(raw)
			if err != nil {
				return nil, fmt.Errorf("model: section %q row %d: %w", wire.ID, i, err)
			}
			section.Rows = append(section.Rows, row)
		}
		return section, nil
	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return Unknown{Base: base, Type: wire.Type, Raw: raw}, nil
	}
}

// DecodeFields decodes a JSON array of tagged fields.
func DecodeFields(data []byte) ([]Field, error) {
	var list FieldList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// EncodeFields encodes fields as a JSON array.
func EncodeFields(fields []Field) ([]byte, error) {
	return json.Marshal(FieldList(fields))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *FieldList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("model: decode field list: %w", err)
	}
	out := make(FieldList, 0, len(raws))
	for _, raw := range raws {
		field, err := DecodeField(raw)
		if err != nil {
			return err
		}
		out = append(out, field)
	}
	*l = out
	return nil
}

// MarshalJSON keeps empty lists as [] rather than null.
func (l FieldList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Field(l))
}

// MarshalJSON implements json.Marshaler.
func (in Input) MarshalJSON() ([]byte, error) {
	wire := baseWire(string(in.Kind), in.Base)
	wire.Options = in.Options
	return json.Marshal(wire)
}

// MarshalJSON writes the canonical per-column width encoding.
func (r RowLayout) MarshalJSON() ([]byte, error) {
	type rowWire struct {
		wireField
		Columns []encodedColumn `json:"columns"`
	}
	wire := rowWire{wireField: baseWire(string(KindRowLayout), r.Base)}
	wire.Columns = make([]encodedColumn, len(r.Columns))
	for i, col := range r.Columns {
		wire.Columns[i] = encodedColumn{Width: col.Width, Fields: col.Fields}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler for rows held by a Section.
func (r *RowLayout) UnmarshalJSON(data []byte) error {
	row, err := decodeRowPayload(data)
	if err != nil {
		return err
	}
	*r = row
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Section) MarshalJSON() ([]byte, error) {
	type sectionWire struct {
		wireField
		Rows []RowLayout `json:"rows"`
	}
	wire := sectionWire{wireField: baseWire(string(KindSection), s.Base), Rows: s.Rows}
	if wire.Rows == nil {
		wire.Rows = []RowLayout{}
	}
	return json.Marshal(wire)
}

// MarshalJSON writes the payload exactly as it was read.
func (u Unknown) MarshalJSON() ([]byte, error) {
	if len(u.Raw) > 0 {
		return u.Raw, nil
	}
	return json.Marshal(baseWire(u.Type, u.Base))
}

func decodeRowPayload(data []byte) (RowLayout, error) {
	var wire wireField
	if err := json.Unmarshal(data, &wire); err != nil {
		return RowLayout{}, fmt.Errorf("model: decode row: %w", err)
	}
	if wire.Type != "" && wire.Type != string(KindRowLayout) {
		return RowLayout{}, fmt.Errorf("model: row %q has type %q", wire.ID, wire.Type)
	}
	base := Base{
		ID:                 wire.ID,
		Label:              wire.Label,
		Required:           wire.Required,
		DisplayOnShortForm: wire.DisplayOnShortForm,
		Placement:          wirePlacement(wire),
	}
	return decodeRow(base, wire)
}

// decodeRow reconciles `columns[].width` with the legacy `layout` array. A
// column width wins; a missing one is taken from layout at the same index;
// layout entries past the last column become empty columns.
func decodeRow(base Base, wire wireField) (RowLayout, error) {
	count := len(wire.Columns)
	if len(wire.Layout) > count {
		count = len(wire.Layout)
	}

	row := RowLayout{Base: base, Columns: make([]Column, count)}
	for i := 0; i < count; i++ {
		var col Column
		if i < len(wire.Columns) {
			col.Width = wire.Columns[i].Width
			for j, raw := range wire.Columns[i].Fields {
				child, err := DecodeField(raw)
				if err != nil {
					return RowLayout{}, fmt.Errorf("model: row %q column %d field %d: %w", base.ID, i, j, err)
				}
				col.Fields = append(col.Fields, child)
			}
		}
		if col.Width == "" && i < len(wire.Layout) {
			col.Width = wire.Layout[i]
		}
		if col.Width == "" {
			col.Width = DefaultColumnWidth
		}
		row.Columns[i] = col
	}
	return row, nil
}

func baseWire(kind string, b Base) wireField {
	wire := wireField{
		Type:               kind,
		ID:                 b.ID,
		Label:              b.Label,
		Required:           b.Required,
		DisplayOnShortForm: b.DisplayOnShortForm,
	}
	if p := b.Placement; p != nil {
		wire.X, wire.Y, wire.W, wire.H = intPtr(p.X), intPtr(p.Y), intPtr(p.W), intPtr(p.H)
	}
	return wire
}

func wirePlacement(wire wireField) *Placement {
	if wire.X == nil && wire.Y == nil && wire.W == nil && wire.H == nil {
		return nil
	}
	return &Placement{X: deref(wire.X), Y: deref(wire.Y), W: deref(wire.W), H: deref(wire.H)}
}

func intPtr(v int) *int { return &v }

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
