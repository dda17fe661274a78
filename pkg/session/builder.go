package session

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/extract"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/tree"
)

// DefaultTitle names a new builder form.
const DefaultTitle = "My Custom Form"

// gridColumns is the width of the builder canvas in grid units.
const gridColumns = 12

var placementHeights = map[model.Kind]int{
	model.KindDropdown:       11,
	model.KindTags:           11,
	model.KindCheckboxes:     11,
	model.KindMultipleChoice: 11,
	model.KindRowLayout:      18,
	model.KindSection:        35,
}

// Builder is the form builder screen.
type Builder struct {
	Title     string
	Fields    []model.Field
	Responses map[string]any
	Errors    model.Errors
	ShortForm bool

	store storage.Store
	cfg   config
}

// NewBuilder starts an empty form titled DefaultTitle.
func NewBuilder(store storage.Store, opts ...Option) *Builder {
	return &Builder{
		Title:     DefaultTitle,
		Responses: map[string]any{},
		Errors:    model.Errors{},
		store:     store,
		cfg:       newConfig(opts),
	}
}

// Form returns the current title and fields.
func (b *Builder) Form() model.Form {
	return model.Form{Title: b.Title, Fields: b.Fields}
}

// AddField creates a field of kind with a fresh id and places it at. Root
// fields also get a grid placement below the existing ones.
func (b *Builder) AddField(kind model.Kind, at tree.Position) (model.Field, error) {
	f := model.NewField(kind, b.cfg.ids())
	if at.Parent == "" {
		base := f.Common()
		base.Placement = b.nextPlacement(kind)
		f = model.WithBase(f, base)
	}
	fields, err := tree.Add(b.Fields, f, at)
	if err != nil {
		return nil, err
	}
	b.Fields = fields
	return f, nil
}

func (b *Builder) nextPlacement(kind model.Kind) *model.Placement {
	n := len(b.Fields)
	h, ok := placementHeights[kind]
	if !ok {
		h = 7
	}
	return &model.Placement{X: (n * 2) % gridColumns, Y: n, W: gridColumns / 2, H: h}
}

// UpdateField replaces the field with the same id.
func (b *Builder) UpdateField(f model.Field) error {
	fields, err := tree.Update(b.Fields, f)
	if err != nil {
		return err
	}
	b.Fields = fields
	return nil
}

// DeleteField removes a field and its subtree, along with its answer.
func (b *Builder) DeleteField(id string) error {
	fields, err := tree.Delete(b.Fields, id)
	if err != nil {
		return err
	}
	b.Fields = fields
	delete(b.Responses, id)
	b.Errors = b.Errors.Without(id)
	return nil
}

// Move reorders a root field.
func (b *Builder) Move(from, to int) error {
	fields, err := tree.Move(b.Fields, from, to)
	if err != nil {
		return err
	}
	b.Fields = fields
	return nil
}

// AddColumn appends an empty column to a row layout.
func (b *Builder) AddColumn(rowID string) error {
	return b.updateRow(rowID, func(row model.RowLayout) (model.RowLayout, error) {
		return tree.AddColumn(row), nil
	})
}

// RemoveColumn drops the column at index together with its fields.
func (b *Builder) RemoveColumn(rowID string, index int) error {
	return b.updateRow(rowID, func(row model.RowLayout) (model.RowLayout, error) {
		return tree.RemoveColumn(row, index)
	})
}

// Relayout applies a "+" separated width list such as "1/4+3/4".
func (b *Builder) Relayout(rowID, spec string) error {
	return b.updateRow(rowID, func(row model.RowLayout) (model.RowLayout, error) {
		return tree.Relayout(row, spec)
	})
}

func (b *Builder) updateRow(rowID string, fn func(model.RowLayout) (model.RowLayout, error)) error {
	fields, err := tree.UpdateRow(b.Fields, rowID, fn)
	if err != nil {
		return err
	}
	b.Fields = fields
	return nil
}

// SetResponse stores an answer and clears the field's error flag.
func (b *Builder) SetResponse(id string, value any) {
	b.Responses, b.Errors = setResponse(b.Responses, b.Errors, id, value)
}

// Preview renders the live preview. Interacting with the returned nodes
// updates Responses.
func (b *Builder) Preview() []render.Node {
	fields := render.ShortForm(b.Fields, b.ShortForm)
	return render.RenderFields(fields, b.Responses, b.SetResponse, b.Errors, render.WithClock(b.cfg.now))
}

// Submit validates the answers and stores the form under recentForms,
// newest first. Missing required answers are returned as a
// *ValidationError and nothing is stored.
func (b *Builder) Submit(ctx context.Context) (model.FormSubmission, error) {
	result := extract.Extract(b.Fields, b.Responses, extract.WithShortForm(b.ShortForm))
	if !result.OK() {
		b.Errors = result.Errors
		return model.FormSubmission{}, &ValidationError{Errors: result.Errors}
	}
	b.Errors = model.Errors{}

	sub := model.FormSubmission{
		ID:        b.cfg.ids(),
		Title:     b.Title,
		Timestamp: model.Timestamp(b.cfg.now()),
		Responses: result.Flat,
		Fields:    model.CloneFields(b.Fields),
	}
	forms := storage.Forms(b.store, storage.WithLogger(b.cfg.log), storage.WithClock(b.cfg.now))
	if err := forms.Prepend(ctx, sub); err != nil {
		b.cfg.log.Error(ctx, "form submission not saved", "title", b.Title, "error", err)
		return model.FormSubmission{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	b.cfg.log.Info(ctx, "form submitted", "id", sub.ID, "answers", sub.Responses.Len())
	return sub, nil
}
