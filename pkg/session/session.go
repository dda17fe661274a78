// Package session holds the state of the two editing screens: the form
// builder and the template form. Each session owns a working field tree and
// the answers typed into its preview, and persists through a storage.Store.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// ErrSaveFailed wraps storage failures during submit and save.
	ErrSaveFailed = errors.New("session: save failed")
	// ErrEmptyTemplate is returned when saving a template without fields.
	ErrEmptyTemplate = errors.New("session: cannot save an empty template")
)

// ValidationError lists the required fields left empty by a submit.
type ValidationError struct {
	Errors model.Errors
}

func (e *ValidationError) Error() string {
	ids := e.Errors.IDs()
	return fmt.Sprintf("session: %d required field(s) empty: %s", len(ids), strings.Join(ids, ", "))
}

// IDGenerator returns a fresh, unique field or record id.
type IDGenerator func() string

// NewID returns a time-ordered UUIDv7 string.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Option configures a session.
type Option func(*config)

type config struct {
	ids IDGenerator
	now func() time.Time
	log logging.Logger
}

func newConfig(opts []Option) config {
	cfg := config{ids: NewID, now: time.Now, log: logging.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithIDGenerator overrides how new ids are minted.
func WithIDGenerator(ids IDGenerator) Option {
	return func(c *config) {
		if ids != nil {
			c.ids = ids
		}
	}
}

// WithClock overrides the clock used for timestamps and date limits.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(log logging.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

func setResponse(responses map[string]any, errs model.Errors, id string, value any) (map[string]any, model.Errors) {
	if responses == nil {
		responses = make(map[string]any)
	}
	responses[id] = value
	return responses, errs.Without(id)
}
