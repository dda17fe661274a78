// Package storage persists form records in a key/value store. Every key
// holds one JSON document; lists are read, modified and written back whole.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key or record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Keys used by the form builder.
const (
	KeyRecentForms        = "recentForms"
	KeyTemplates          = "templates"
	KeySubmittedTemplates = "submittedTemplates"
	KeyTheme              = "theme"
)

// Store is the persistence boundary. Implementations need not be safe for
// concurrent writers; the last write wins.
type Store interface {
	// Get returns the stored bytes or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
