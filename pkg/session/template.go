package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/catalog"
	"github.com/goliatone/go-formbuilder/pkg/extract"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/tree"
)

const (
	// DefaultTemplateTitle is used when a template has no header field.
	DefaultTemplateTitle = "Template Form"
	// UntitledTemplate names saved templates with a blank title.
	UntitledTemplate = "Untitled Template"
)

// TemplateForm is the screen for filling, and optionally editing, a
// template.
type TemplateForm struct {
	TemplateID string
	Title      string
	Fields     []model.Field
	Responses  map[string]any
	Errors     model.Errors

	store   storage.Store
	catalog *catalog.Catalog
	cfg     config
}

// NewTemplateForm returns an empty template screen.
func NewTemplateForm(store storage.Store, cat *catalog.Catalog, opts ...Option) *TemplateForm {
	return &TemplateForm{
		Title:     DefaultTemplateTitle,
		Responses: map[string]any{},
		Errors:    model.Errors{},
		store:     store,
		catalog:   cat,
		cfg:       newConfig(opts),
	}
}

// Load replaces the working state with template id. Sections are dropped
// and the title is taken from the first header. An unknown id leaves an
// empty form and returns an error wrapping catalog.ErrNotFound.
func (t *TemplateForm) Load(ctx context.Context, id string) error {
	t.TemplateID = id
	t.Title = DefaultTemplateTitle
	t.Fields = nil
	t.Responses = map[string]any{}
	t.Errors = model.Errors{}

	if t.catalog == nil {
		return errors.New("session: template catalog is not configured")
	}
	tpl, err := t.catalog.Lookup(ctx, id)
	if err != nil {
		return fmt.Errorf("session: load template: %w", err)
	}

	for _, f := range tpl.Fields {
		if f == nil || f.FieldKind() == model.KindSection {
			continue
		}
		t.Fields = append(t.Fields, f)
	}
	t.Title = headerTitle(t.Fields)
	return nil
}

func headerTitle(fields []model.Field) string {
	for _, f := range fields {
		if f.FieldKind() == model.KindHeader {
			if label := f.Common().Label; label != "" {
				return label
			}
			break
		}
	}
	return DefaultTemplateTitle
}

// Form returns the current title and fields.
func (t *TemplateForm) Form() model.Form {
	return model.Form{ID: t.TemplateID, Title: t.Title, Fields: t.Fields}
}

// AddField appends a new root field of kind.
func (t *TemplateForm) AddField(kind model.Kind) (model.Field, error) {
	f := model.NewField(kind, t.cfg.ids())
	fields, err := tree.Add(t.Fields, f, tree.Root)
	if err != nil {
		return nil, err
	}
	t.Fields = fields
	return f, nil
}

// UpdateField replaces the field with the same id.
func (t *TemplateForm) UpdateField(f model.Field) error {
	fields, err := tree.Update(t.Fields, f)
	if err != nil {
		return err
	}
	t.Fields = fields
	return nil
}

// DeleteField removes a field and its answer.
func (t *TemplateForm) DeleteField(id string) error {
	fields, err := tree.Delete(t.Fields, id)
	if err != nil {
		return err
	}
	t.Fields = fields
	delete(t.Responses, id)
	t.Errors = t.Errors.Without(id)
	return nil
}

// Move reorders a root field.
func (t *TemplateForm) Move(from, to int) error {
	fields, err := tree.Move(t.Fields, from, to)
	if err != nil {
		return err
	}
	t.Fields = fields
	return nil
}

// SetResponse stores an answer and clears the field's error flag.
func (t *TemplateForm) SetResponse(id string, value any) {
	t.Responses, t.Errors = setResponse(t.Responses, t.Errors, id, value)
}

// Preview renders the fields bound to SetResponse.
func (t *TemplateForm) Preview() []render.Node {
	return render.RenderFields(t.Fields, t.Responses, t.SetResponse, t.Errors, render.WithClock(t.cfg.now))
}

// Submit validates the answers and stores them under submittedTemplates,
// keyed by field id with id/label references alongside.
func (t *TemplateForm) Submit(ctx context.Context) (model.TemplateSubmission, error) {
	result := extract.Extract(t.Fields, t.Responses, extract.WithKeys(extract.KeyByID))
	if !result.OK() {
		t.Errors = result.Errors
		return model.TemplateSubmission{}, &ValidationError{Errors: result.Errors}
	}
	t.Errors = model.Errors{}

	sub := model.TemplateSubmission{
		ID:          t.cfg.ids(),
		TemplateID:  t.TemplateID,
		Title:       t.Title,
		SubmittedAt: model.Timestamp(t.cfg.now()),
		Responses:   result.Flat,
		Fields:      model.Refs(t.Fields),
	}
	submissions := storage.TemplateSubmissions(t.store, storage.WithLogger(t.cfg.log), storage.WithClock(t.cfg.now))
	if err := submissions.Prepend(ctx, sub); err != nil {
		t.cfg.log.Error(ctx, "template submission not saved", "template", t.TemplateID, "error", err)
		return model.TemplateSubmission{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	t.cfg.log.Info(ctx, "template submitted", "id", sub.ID, "template", t.TemplateID)
	return sub, nil
}

// SaveAsTemplate stores the working fields as a new user template.
func (t *TemplateForm) SaveAsTemplate(ctx context.Context) (model.SavedTemplate, error) {
	if len(t.Fields) == 0 {
		return model.SavedTemplate{}, ErrEmptyTemplate
	}
	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = UntitledTemplate
	}

	tpl := model.SavedTemplate{
		ID:     t.cfg.ids(),
		Title:  title,
		Fields: model.CloneFields(t.Fields),
	}
	templates := storage.Templates(t.store, storage.WithLogger(t.cfg.log), storage.WithClock(t.cfg.now))
	if err := templates.Prepend(ctx, tpl); err != nil {
		return model.SavedTemplate{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	t.cfg.log.Info(ctx, "template saved", "id", tpl.ID, "title", title)
	return tpl, nil
}
