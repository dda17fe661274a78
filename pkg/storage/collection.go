package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Record is a stored list entry that can be moved to the trash.
type Record[T any] interface {
	*T
	RecordID() string
	Deleted() bool
	MarkDeleted(at time.Time)
	Restore()
}

// Option configures a Collection.
type Option func(*options)

type options struct {
	now func() time.Time
	log logging.Logger
}

// WithClock overrides the clock used for deletion timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger used for lenient reads.
func WithLogger(log logging.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Collection is a soft-deletable list of records stored under one key.
type Collection[T any, P Record[T]] struct {
	store Store
	key   string
	now   func() time.Time
	log   logging.Logger
}

// NewCollection binds a record list to key.
func NewCollection[T any, P Record[T]](store Store, key string, opts ...Option) *Collection[T, P] {
	cfg := options{now: time.Now, log: logging.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Collection[T, P]{store: store, key: key, now: cfg.now, log: cfg.log}
}

// Forms is the list of builder submissions.
func Forms(store Store, opts ...Option) *Collection[model.FormSubmission, *model.FormSubmission] {
	return NewCollection[model.FormSubmission](store, KeyRecentForms, opts...)
}

// Templates is the list of user saved templates.
func Templates(store Store, opts ...Option) *Collection[model.SavedTemplate, *model.SavedTemplate] {
	return NewCollection[model.SavedTemplate](store, KeyTemplates, opts...)
}

// TemplateSubmissions is the list of filled templates.
func TemplateSubmissions(store Store, opts ...Option) *Collection[model.TemplateSubmission, *model.TemplateSubmission] {
	return NewCollection[model.TemplateSubmission](store, KeySubmittedTemplates, opts...)
}

// Key returns the storage key of the collection.
func (c *Collection[T, P]) Key() string { return c.key }

// All returns every record, trashed ones included, newest first.
func (c *Collection[T, P]) All(ctx context.Context) []T {
	return ReadList[T](ctx, c.store, c.key, c.log)
}

// Active returns the records that are not in the trash.
func (c *Collection[T, P]) Active(ctx context.Context) []T {
	return c.filter(ctx, false)
}

// Trash returns the soft-deleted records.
func (c *Collection[T, P]) Trash(ctx context.Context) []T {
	return c.filter(ctx, true)
}

// Get returns the record with id regardless of its deletion state.
func (c *Collection[T, P]) Get(ctx context.Context, id string) (T, error) {
	for _, item := range c.All(ctx) {
		if P(&item).RecordID() == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("storage: %s %q: %w", c.key, id, ErrNotFound)
}

// Prepend stores item ahead of the existing records.
func (c *Collection[T, P]) Prepend(ctx context.Context, item T) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	return WriteList(ctx, c.store, c.key, append([]T{item}, items...))
}

// Append stores item after the existing records.
func (c *Collection[T, P]) Append(ctx context.Context, item T) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	return WriteList(ctx, c.store, c.key, append(items, item))
}

// SoftDelete moves the record with id to the trash.
func (c *Collection[T, P]) SoftDelete(ctx context.Context, id string) error {
	now := c.now()
	return c.modify(ctx, id, func(p P) { p.MarkDeleted(now) })
}

// Restore takes the record with id out of the trash.
func (c *Collection[T, P]) Restore(ctx context.Context, id string) error {
	return c.modify(ctx, id, func(p P) { p.Restore() })
}

// Purge removes the record with id permanently.
func (c *Collection[T, P]) Purge(ctx context.Context, id string) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(items))
	found := false
	for _, item := range items {
		if P(&item).RecordID() == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return fmt.Errorf("storage: purge %s %q: %w", c.key, id, ErrNotFound)
	}
	return WriteList(ctx, c.store, c.key, kept)
}

// load is the strict read behind every mutation.
func (c *Collection[T, P]) load(ctx context.Context) ([]T, error) {
	return LoadList[T](ctx, c.store, c.key, c.log)
}

func (c *Collection[T, P]) modify(ctx context.Context, id string, fn func(P)) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		p := P(&items[i])
		if p.RecordID() != id {
			continue
		}
		fn(p)
		return WriteList(ctx, c.store, c.key, items)
	}
	return fmt.Errorf("storage: %s %q: %w", c.key, id, ErrNotFound)
}

func (c *Collection[T, P]) filter(ctx context.Context, deleted bool) []T {
	items := c.All(ctx)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if P(&item).Deleted() == deleted {
			out = append(out, item)
		}
	}
	return out
}
