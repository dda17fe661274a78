package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla/components"
)

const (
	// Name is the registry key of the HTML renderer.
	Name = "vanilla"

	pageTemplate = "templates/form.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	stylesheets      []string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the built-in component set.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithStylesheet links an external stylesheet. Relative names go through
// the theme asset resolver when one is configured.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(href); trimmed != "" {
			cfg.stylesheets = append(cfg.stylesheets, trimmed)
		}
	}
}

// WithoutDefaultStyles stops the embedded stylesheet from being inlined.
func WithoutDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = false
	}
}

// Renderer produces a standalone HTML page for a form.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	components   *components.Registry
	stylesheets  []string
	inlineStyles bool
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStyles: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		components:   cfg.components,
		stylesheets:  append([]string(nil), cfg.stylesheets...),
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the page shell around the rendered field markup. Failed
// fields carry their error message and are listed in a summary above the
// form.
func (r *Renderer) Render(ctx context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	fields := render.ShortForm(form.Fields, options.ShortForm)
	nodes := render.RenderFields(fields, options.Values, nil, options.Errors, options.NodeOptions()...)
	body, err := r.RenderNodes(nodes)
	if err != nil {
		return nil, err
	}

	themeCtx := buildThemeContext(options.Theme)
	data := map[string]any{
		"title":       form.Title,
		"form_id":     form.ID,
		"body":        body,
		"errors":      render.ErrorSummary(fields, options.Errors),
		"theme":       themeCtx.toMap(),
		"stylesheets": r.resolveStylesheets(themeAssetResolver(options.Theme)),
	}
	if r.inlineStyles {
		data["inline_styles"] = defaultStylesheet()
	}

	rendered, err := r.templates.RenderTemplate(themeCtx.pageTemplate(pageTemplate), data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(rendered), nil
}

// RenderNodes renders display nodes to an HTML fragment without the page
// shell.
func (r *Renderer) RenderNodes(nodes []render.Node) (string, error) {
	var b strings.Builder
	for _, node := range nodes {
		markup, err := r.renderNode(node)
		if err != nil {
			return "", err
		}
		b.WriteString(markup)
	}
	return b.String(), nil
}

func (r *Renderer) renderNode(node render.Node) (string, error) {
	descriptor, ok := r.components.Descriptor(node.Kind)
	if !ok {
		descriptor, ok = r.components.Descriptor(render.NodeUnknown)
		if !ok {
			return "", fmt.Errorf("vanilla renderer: no component for %q", node.Kind)
		}
	}

	var buf bytes.Buffer
	err := descriptor.Renderer(&buf, node, components.ComponentData{
		RenderChild: r.renderNode,
		RichText:    sanitizeRichText,
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render %s %q: %w", node.Kind, node.FieldID, err)
	}
	return buf.String(), nil
}

func (r *Renderer) resolveStylesheets(resolve func(string) string) []string {
	if len(r.stylesheets) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.stylesheets))
	for _, href := range r.stylesheets {
		if resolve != nil && !isAbsoluteURL(href) {
			if resolved := resolve(href); resolved != "" {
				href = resolved
			}
		}
		out = append(out, href)
	}
	return out
}

func isAbsoluteURL(href string) bool {
	return strings.HasPrefix(href, "/") || strings.Contains(href, "://")
}
