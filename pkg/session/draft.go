package session

import "github.com/goliatone/go-formbuilder/pkg/model"

// Draft is the serialisable working state of a session.
type Draft struct {
	TemplateID string          `json:"templateId,omitempty"`
	Title      string          `json:"title"`
	Fields     model.FieldList `json:"fields"`
	Responses  map[string]any  `json:"responses,omitempty"`
	ShortForm  bool            `json:"shortForm,omitempty"`
}

// Draft captures the builder state.
func (b *Builder) Draft() Draft {
	return Draft{
		Title:     b.Title,
		Fields:    model.CloneFields(b.Fields),
		Responses: copyResponses(b.Responses),
		ShortForm: b.ShortForm,
	}
}

// LoadDraft replaces the builder state. Error flags are cleared.
func (b *Builder) LoadDraft(d Draft) {
	b.Title = d.Title
	if b.Title == "" {
		b.Title = DefaultTitle
	}
	b.Fields = model.CloneFields(d.Fields)
	b.Responses = copyResponses(d.Responses)
	b.ShortForm = d.ShortForm
	b.Errors = model.Errors{}
}

// Draft captures the template form state.
func (t *TemplateForm) Draft() Draft {
	return Draft{
		TemplateID: t.TemplateID,
		Title:      t.Title,
		Fields:     model.CloneFields(t.Fields),
		Responses:  copyResponses(t.Responses),
	}
}

// LoadDraft replaces the template form state. Error flags are cleared.
func (t *TemplateForm) LoadDraft(d Draft) {
	t.TemplateID = d.TemplateID
	t.Title = d.Title
	t.Fields = model.CloneFields(d.Fields)
	t.Responses = copyResponses(d.Responses)
	t.Errors = model.Errors{}
}

func copyResponses(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
