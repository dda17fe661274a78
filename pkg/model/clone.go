package model

import "encoding/json"

// Clone returns a deep copy of f. The copy shares no slices with f, so it
// can be stored as an independent snapshot.
func Clone(f Field) Field {
	switch v := f.(type) {
	case Input:
		v.Base = cloneBase(v.Base)
		v.Options = cloneOptions(v.Options)
		return v
	case RowLayout:
		return cloneRow(v)
	case Section:
		v.Base = cloneBase(v.Base)
		if v.Rows != nil {
			rows := make([]RowLayout, len(v.Rows))
			for i, row := range v.Rows {
				rows[i] = cloneRow(row)
			}
			v.Rows = rows
		}
		return v
	case Unknown:
		v.Base = cloneBase(v.Base)
		if v.Raw != nil {
			v.Raw = append(json.RawMessage(nil), v.Raw...)
		}
		return v
	default:
		return f
	}
}

// CloneFields deep copies a field list.
func CloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Clone(f)
	}
	return out
}

func cloneRow(row RowLayout) RowLayout {
	row.Base = cloneBase(row.Base)
	if row.Columns == nil {
		return row
	}
	cols := make([]Column, len(row.Columns))
	for i, col := range row.Columns {
		cols[i] = Column{Width: col.Width, Fields: CloneFields(col.Fields)}
	}
	row.Columns = cols
	return row
}

func cloneBase(b Base) Base {
	if b.Placement != nil {
		p := *b.Placement
		b.Placement = &p
	}
	return b
}

func cloneOptions(in []Option) []Option {
	if in == nil {
		return nil
	}
	out := make([]Option, len(in))
	copy(out, in)
	return out
}
