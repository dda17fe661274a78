package tree

import "errors"

var (
	// ErrNotFound is returned when no field carries the requested id.
	ErrNotFound = errors.New("tree: field not found")
	// ErrInvalidPosition is returned for out of range row or column indices.
	ErrInvalidPosition = errors.New("tree: invalid position")
	// ErrNotContainer is returned when a parent id names a leaf field.
	ErrNotContainer = errors.New("tree: field cannot hold children")
	// ErrDuplicateID is returned when an inserted id already exists.
	ErrDuplicateID = errors.New("tree: duplicate field id")
	// ErrEmptyLayout is returned when a layout descriptor has no widths.
	ErrEmptyLayout = errors.New("tree: layout has no columns")
)
