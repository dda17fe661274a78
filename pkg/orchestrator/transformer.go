package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/tree"
)

// Transformer mutates a form before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, form *model.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// PresetTransformer applies declarative overrides loaded from a YAML or
// JSON document. Fields are addressed by id at any depth:
//
//	title: Customer Survey
//	shortForm: [name, email]
//	fields:
//	  name: {label: Full Name, required: true}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title     string                `yaml:"title" json:"title"`
	ShortForm []string              `yaml:"shortForm" json:"shortForm"`
	Fields    map[string]fieldPatch `yaml:"fields" json:"fields"`
}

type fieldPatch struct {
	Label    string   `yaml:"label" json:"label"`
	Required *bool    `yaml:"required" json:"required"`
	Options  []string `yaml:"options" json:"options"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches onto the supplied form. Unknown ids are an
// error so stale presets surface early.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.Form) error {
	if form == nil {
		return errors.New("preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Title != "" {
		form.Title = t.document.Title
	}

	fields := form.Fields
	for id, patch := range t.document.Fields {
		current, ok := tree.Find(fields, id)
		if !ok {
			return fmt.Errorf("preset transformer: field %q not found", id)
		}
		next, err := tree.Update(fields, applyFieldPatch(current, patch))
		if err != nil {
			return fmt.Errorf("preset transformer: patch %q: %w", id, err)
		}
		fields = next
	}

	if len(t.document.ShortForm) > 0 {
		keep := make(map[string]bool, len(t.document.ShortForm))
		for _, id := range t.document.ShortForm {
			keep[id] = true
		}
		for i, f := range fields {
			base := f.Common()
			base.DisplayOnShortForm = keep[base.ID]
			fields[i] = model.WithBase(f, base)
		}
	}

	form.Fields = fields
	return nil
}

func applyFieldPatch(field model.Field, patch fieldPatch) model.Field {
	base := field.Common()
	if patch.Label != "" {
		base.Label = patch.Label
	}
	if patch.Required != nil {
		base.Required = *patch.Required
	}
	field = model.WithBase(field, base)

	if in, ok := field.(model.Input); ok && len(patch.Options) > 0 && in.Kind.HasOptions() {
		in.Options = model.OptionsFromLabels(patch.Options...)
		return in
	}
	return field
}
