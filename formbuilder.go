// Package formbuilder is the top-level entry point: it renders forms and
// catalog templates with the built-in renderers.
package formbuilder

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Form aliases model.Form so callers can build requests from the root
// package.
type Form = model.Form

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface validation errors.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders form with the named renderer, the vanilla HTML
// renderer when rendererName is empty.
func GenerateHTML(ctx context.Context, form Form, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Form:     &form,
		Renderer: rendererName,
	})
}

// GenerateTemplate renders a built-in or saved template by id.
func GenerateTemplate(ctx context.Context, templateID, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		TemplateID:    templateID,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// WithTheme returns render options selecting the light or dark variant.
func WithTheme(variant string) RenderOptions {
	return RenderOptions{Theme: &theme.RendererConfig{Theme: "formbuilder", Variant: variant}}
}
