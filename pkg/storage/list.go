package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/internal/logging"
)

// ReadList decodes the JSON array stored under key. A missing key, a read
// failure or a corrupt document all read as an empty list; the latter two
// are logged and never returned.
func ReadList[T any](ctx context.Context, store Store, key string, log logging.Logger) []T {
	items, err := LoadList[T](ctx, store, key, log)
	if err != nil {
		logging.OrNop(log).Warn(ctx, "storage read failed", "key", key, "error", err)
		return []T{}
	}
	return items
}

// LoadList is ReadList for read-modify-write callers: a missing key or a
// corrupt document still reads as an empty list, but a failed read is
// returned so the caller does not overwrite records it could not see.
func LoadList[T any](ctx context.Context, store Store, key string, log logging.Logger) ([]T, error) {
	log = logging.OrNop(log)

	data, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn(ctx, "discarding corrupt stored list", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

// WriteList encodes items as a JSON array and stores it under key.
func WriteList[T any](ctx context.Context, store Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	return nil
}
