package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/catalog"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

const defaultRendererName = vanilla.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithCatalog sets the catalog used to resolve Request.TemplateID.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = cat
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can mutate the form before
// rendering. Transformers run in registration order.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithLogger sets the orchestrator logger.
func WithLogger(log logging.Logger) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

// Orchestrator coordinates form resolution and rendering. It applies sensible
// defaults (vanilla renderer, built-in catalog) while remaining open to
// dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	catalog         *catalog.Catalog
	defaultRenderer string
	transformers    []Transformer
	log             logging.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes what to render.
type Request struct {
	// Form is rendered as given. It takes precedence over TemplateID.
	Form *model.Form

	// TemplateID resolves the form through the catalog.
	TemplateID string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries answers, error flags and theme selection.
	RenderOptions render.RenderOptions
}

// Generate resolves the form, runs the transformers and returns the rendered
// bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, t := range o.transformers {
		if err := t.Transform(ctx, &form); err != nil {
			return nil, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.log.Debug(ctx, "form rendered", "renderer", renderer.Name(), "fields", len(form.Fields), "bytes", len(output))
	return output, nil
}

func (o *Orchestrator) resolveForm(ctx context.Context, req Request) (model.Form, error) {
	if req.Form != nil {
		form := *req.Form
		form.Fields = model.CloneFields(form.Fields)
		return form, nil
	}
	if req.TemplateID == "" {
		return model.Form{}, errors.New("orchestrator: form or template id is required")
	}
	if o.catalog == nil {
		return model.Form{}, errors.New("orchestrator: catalog is nil")
	}
	tpl, err := o.catalog.Lookup(ctx, req.TemplateID)
	if err != nil {
		return model.Form{}, fmt.Errorf("orchestrator: resolve template: %w", err)
	}
	return model.Form{ID: tpl.ID, Title: tpl.Title, Fields: tpl.Fields}, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	o.log = logging.OrNop(o.log)
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.catalog == nil {
		cat, err := catalog.New(nil, catalog.WithLogger(o.log))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default catalog: %w", err)
		} else {
			o.catalog = cat
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
