package tree

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Position names where Add appends a field. An empty Parent means the root
// list. A RowLayout parent uses Column; a Section parent uses Row and Column.
type Position struct {
	Parent string
	Row    int
	Column int
}

// Root is the position at the end of the root list.
var Root = Position{}

// InColumn targets a column of a row layout, which may be a section row.
func InColumn(rowID string, column int) Position {
	return Position{Parent: rowID, Column: column}
}

// InSection targets a column of one of a section's rows.
func InSection(sectionID string, row, column int) Position {
	return Position{Parent: sectionID, Row: row, Column: column}
}

// edit transforms the matched field. Returning a nil field removes it.
type edit func(model.Field) (model.Field, error)

// Add appends f at the given position. Ids inside f must not already exist
// in the tree.
func Add(fields []model.Field, f model.Field, at Position) ([]model.Field, error) {
	if f == nil {
		return nil, errors.New("tree: field is required")
	}

	existing := make(map[string]struct{})
	for _, id := range IDs(fields) {
		existing[id] = struct{}{}
	}
	for _, id := range IDs([]model.Field{f}) {
		if _, dup := existing[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
	}

	if at.Parent == "" {
		out := make([]model.Field, 0, len(fields)+1)
		out = append(out, fields...)
		return append(out, f), nil
	}

	out, found, err := apply(fields, at.Parent, func(parent model.Field) (model.Field, error) {
		return insertInto(parent, f, at)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: parent %q", ErrNotFound, at.Parent)
	}
	return out, nil
}

// Update replaces the first field, in depth-first order, whose id matches
// updated. Trees with duplicate ids resolve to that first match.
func Update(fields []model.Field, updated model.Field) ([]model.Field, error) {
	if updated == nil {
		return nil, errors.New("tree: field is required")
	}
	out, found, err := apply(fields, updated.FieldID(), func(model.Field) (model.Field, error) {
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, updated.FieldID())
	}
	return out, nil
}

// Delete removes the field with id, along with everything nested in it.
// Section rows can be removed by their id as well.
func Delete(fields []model.Field, id string) ([]model.Field, error) {
	out, found, err := apply(fields, id, func(model.Field) (model.Field, error) {
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return out, nil
}

// Move reorders the root list, moving the field at from to index to.
func Move(fields []model.Field, from, to int) ([]model.Field, error) {
	if from < 0 || from >= len(fields) || to < 0 || to >= len(fields) {
		return nil, fmt.Errorf("%w: move %d -> %d of %d", ErrInvalidPosition, from, to, len(fields))
	}
	out := make([]model.Field, 0, len(fields))
	out = append(out, fields[:from]...)
	out = append(out, fields[from+1:]...)

	moved := fields[from]
	out = append(out[:to], append([]model.Field{moved}, out[to:]...)...)
	return out, nil
}

// UpdateRow applies fn to the row layout with id rowID, wherever it lives.
func UpdateRow(fields []model.Field, rowID string, fn func(model.RowLayout) (model.RowLayout, error)) ([]model.Field, error) {
	out, found, err := apply(fields, rowID, func(f model.Field) (model.Field, error) {
		row, ok := f.(model.RowLayout)
		if !ok {
			return nil, fmt.Errorf("%w: %q is %s, not a row layout", ErrNotContainer, rowID, f.FieldKind())
		}
		return fn(row)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: row %q", ErrNotFound, rowID)
	}
	return out, nil
}

// UpdateSection applies fn to the section with id sectionID.
func UpdateSection(fields []model.Field, sectionID string, fn func(model.Section) (model.Section, error)) ([]model.Field, error) {
	out, found, err := apply(fields, sectionID, func(f model.Field) (model.Field, error) {
		section, ok := f.(model.Section)
		if !ok {
			return nil, fmt.Errorf("%w: %q is %s, not a section", ErrNotContainer, sectionID, f.FieldKind())
		}
		return fn(section)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: section %q", ErrNotFound, sectionID)
	}
	return out, nil
}

func insertInto(parent model.Field, f model.Field, at Position) (model.Field, error) {
	switch v := parent.(type) {
	case model.RowLayout:
		return appendToColumn(v, at.Column, f)
	case model.Section:
		if at.Row < 0 || at.Row >= len(v.Rows) {
			return nil, fmt.Errorf("%w: section %q has no row %d", ErrInvalidPosition, v.ID, at.Row)
		}
		row, err := appendToColumn(v.Rows[at.Row], at.Column, f)
		if err != nil {
			return nil, err
		}
		rows := append([]model.RowLayout(nil), v.Rows...)
		rows[at.Row] = row
		v.Rows = rows
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %q is %s", ErrNotContainer, parent.FieldID(), parent.FieldKind())
	}
}

func appendToColumn(row model.RowLayout, column int, f model.Field) (model.RowLayout, error) {
	if column < 0 || column >= len(row.Columns) {
		return row, fmt.Errorf("%w: row %q has no column %d", ErrInvalidPosition, row.ID, column)
	}
	cols := append([]model.Column(nil), row.Columns...)
	target := cols[column]
	next := make([]model.Field, 0, len(target.Fields)+1)
	next = append(next, target.Fields...)
	cols[column] = model.Column{Width: target.Width, Fields: append(next, f)}
	row.Columns = cols
	return row, nil
}

// apply finds the first field with id in depth-first order and rebuilds the
// path to it with fn's result.
func apply(fields []model.Field, id string, fn edit) ([]model.Field, bool, error) {
	for i, f := range fields {
		if f == nil {
			continue
		}
		if f.FieldID() == id {
			next, err := fn(f)
			if err != nil {
				return nil, true, err
			}
			return splice(fields, i, next), true, nil
		}
		next, found, err := applyWithin(f, id, fn)
		if err != nil {
			return nil, true, err
		}
		if found {
			return splice(fields, i, next), true, nil
		}
	}
	return fields, false, nil
}

func applyWithin(f model.Field, id string, fn edit) (model.Field, bool, error) {
	switch v := f.(type) {
	case model.RowLayout:
		return applyRow(v, id, fn)
	case model.Section:
		for ri, row := range v.Rows {
			if row.ID == id {
				next, err := fn(row)
				if err != nil {
					return nil, true, err
				}
				rows := make([]model.RowLayout, 0, len(v.Rows))
				rows = append(rows, v.Rows[:ri]...)
				if next != nil {
					nextRow, ok := next.(model.RowLayout)
					if !ok {
						return nil, true, fmt.Errorf("%w: section %q rows must be row layouts", ErrNotContainer, v.ID)
					}
					rows = append(rows, nextRow)
				}
				v.Rows = append(rows, v.Rows[ri+1:]...)
				return v, true, nil
			}

			updated, found, err := applyRow(row, id, fn)
			if err != nil {
				return nil, true, err
			}
			if found {
				rows := append([]model.RowLayout(nil), v.Rows...)
				rows[ri] = updated.(model.RowLayout)
				v.Rows = rows
				return v, true, nil
			}
		}
	}
	return f, false, nil
}

func applyRow(row model.RowLayout, id string, fn edit) (model.Field, bool, error) {
	for ci, col := range row.Columns {
		next, found, err := apply(col.Fields, id, fn)
		if err != nil {
			return nil, true, err
		}
		if found {
			cols := append([]model.Column(nil), row.Columns...)
			cols[ci] = model.Column{Width: col.Width, Fields: next}
			row.Columns = cols
			return row, true, nil
		}
	}
	return row, false, nil
}

func splice(fields []model.Field, i int, next model.Field) []model.Field {
	out := make([]model.Field, 0, len(fields))
	out = append(out, fields[:i]...)
	if next != nil {
		out = append(out, next)
	}
	return append(out, fields[i+1:]...)
}
