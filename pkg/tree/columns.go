package tree

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// AddColumn appends an empty half-width column.
func AddColumn(row model.RowLayout) model.RowLayout {
	cols := make([]model.Column, 0, len(row.Columns)+1)
	cols = append(cols, row.Columns...)
	row.Columns = append(cols, model.Column{Width: model.DefaultColumnWidth})
	return row
}

// RemoveColumn drops the column at index together with its fields.
func RemoveColumn(row model.RowLayout, index int) (model.RowLayout, error) {
	if index < 0 || index >= len(row.Columns) {
		return row, fmt.Errorf("%w: row %q has no column %d", ErrInvalidPosition, row.ID, index)
	}
	cols := make([]model.Column, 0, len(row.Columns)-1)
	cols = append(cols, row.Columns[:index]...)
	row.Columns = append(cols, row.Columns[index+1:]...)
	return row, nil
}

// SetColumnWidth changes the width descriptor of one column.
func SetColumnWidth(row model.RowLayout, index int, width string) (model.RowLayout, error) {
	if index < 0 || index >= len(row.Columns) {
		return row, fmt.Errorf("%w: row %q has no column %d", ErrInvalidPosition, row.ID, index)
	}
	cols := append([]model.Column(nil), row.Columns...)
	cols[index] = model.Column{Width: strings.TrimSpace(width), Fields: cols[index].Fields}
	row.Columns = cols
	return row, nil
}

// ParseLayout splits a descriptor such as "1/3 + 2/3" into its widths.
// Blank parts are dropped.
func ParseLayout(spec string) []string {
	var out []string
	for _, part := range strings.Split(spec, "+") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// FormatLayout joins widths back into a descriptor.
func FormatLayout(widths []string) string {
	return strings.Join(widths, " + ")
}

// Relayout reshapes row to the widths in spec. Columns keep their fields
// index for index; new columns start empty and trailing columns past the new
// count are dropped with their fields. An empty spec leaves row unchanged.
func Relayout(row model.RowLayout, spec string) (model.RowLayout, error) {
	widths := ParseLayout(spec)
	if len(widths) == 0 {
		return row, ErrEmptyLayout
	}
	cols := make([]model.Column, len(widths))
	for i, width := range widths {
		cols[i].Width = width
		if i < len(row.Columns) {
			cols[i].Fields = row.Columns[i].Fields
		}
	}
	row.Columns = cols
	return row, nil
}

// AddRow appends row to section.
func AddRow(section model.Section, row model.RowLayout) model.Section {
	rows := make([]model.RowLayout, 0, len(section.Rows)+1)
	rows = append(rows, section.Rows...)
	section.Rows = append(rows, row)
	return section
}

// RemoveRow drops the row with rowID from section.
func RemoveRow(section model.Section, rowID string) (model.Section, error) {
	for i, row := range section.Rows {
		if row.ID != rowID {
			continue
		}
		rows := make([]model.RowLayout, 0, len(section.Rows)-1)
		rows = append(rows, section.Rows[:i]...)
		section.Rows = append(rows, section.Rows[i+1:]...)
		return section, nil
	}
	return section, fmt.Errorf("%w: row %q in section %q", ErrNotFound, rowID, section.ID)
}
