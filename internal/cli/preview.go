package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// renderPreview renders the builder form with the configured renderer.
func (a *App) renderPreview(cmd *cobra.Command, b *session.Builder) ([]byte, error) {
	ctx := commandContext(cmd)

	registry := render.NewRegistry()
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(html)
	registry.MustRegister(textRenderer{})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithCatalog(a.Catalog),
		orchestrator.WithDefaultRenderer(config.RendererVanilla),
		orchestrator.WithLogger(a.Log),
	)
	form := b.Form()
	return orch.Generate(ctx, orchestrator.Request{
		Form:     &form,
		Renderer: a.Config.Renderer,
		RenderOptions: render.RenderOptions{
			Values:    b.Responses,
			Errors:    b.Errors,
			ShortForm: b.ShortForm,
			Now:       a.Now,
			Theme: &theme.RendererConfig{
				Theme:   "formbuilder",
				Variant: a.themeVariant(ctx),
			},
		},
	})
}

// themeVariant prefers the configured theme over the stored preference.
func (a *App) themeVariant(ctx context.Context) string {
	if a.Config.Theme != "" {
		return a.Config.Theme
	}
	return storage.Theme(ctx, a.Store)
}

// textRenderer prints the display tree as an indented outline.
type textRenderer struct{}

func (textRenderer) Name() string        { return config.RendererText }
func (textRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (textRenderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fields := render.ShortForm(form.Fields, opts.ShortForm)
	nodes := render.RenderFields(fields, opts.Values, nil, opts.Errors, opts.NodeOptions()...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", form.Title)
	for _, n := range nodes {
		writeNode(&buf, n, 0)
	}
	return buf.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, n render.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	line := ""
	switch n.Kind {
	case render.NodeHeading:
		line = "## " + n.Text
	case render.NodeLabel, render.NodeParagraph:
		line = n.Text
	case render.NodeRule:
		line = "----"
	case render.NodeRow:
		line = "[row " + n.FieldID + "]"
	case render.NodeColumn:
		line = fmt.Sprintf("[column %s]", n.WidthSpec)
	case render.NodeSection:
		line = "[section] " + n.Label
	case render.NodeUnknown:
		line = n.Text
	case render.NodeCheckboxes, render.NodeChips:
		line = fmt.Sprintf("%s: %s", fieldLabel(n), strings.Join(n.Selected, ", "))
	default:
		line = fmt.Sprintf("%s: %s", fieldLabel(n), n.Value)
	}
	if n.Invalid {
		line += "  ! " + n.Error
	}
	buf.WriteString(indent + line + "\n")
	for _, c := range n.Choices {
		mark := "( )"
		if c.Selected {
			mark = "(x)"
		}
		fmt.Fprintf(buf, "%s  %s %s\n", indent, mark, c.Label)
	}
	for _, child := range n.Children {
		writeNode(buf, child, depth+1)
	}
}

func fieldLabel(n render.Node) string {
	if n.Required {
		return n.Label + " *"
	}
	return n.Label
}

func (a *App) promptDriver(cmd *cobra.Command) tui.PromptDriver {
	if a.Prompt != nil {
		return a.Prompt
	}
	return tui.NewSurveyDriver(cmd.OutOrStdout())
}

// fill prompts for every previewed field and stores the answers on b.
func (a *App) fill(ctx context.Context, cmd *cobra.Command, driver tui.PromptDriver, b *session.Builder) error {
	r, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutput(cmd.OutOrStdout()),
		tui.WithClock(a.Now),
	)
	if err != nil {
		return err
	}
	if err := driver.Info(ctx, b.Title); err != nil {
		return err
	}
	fields := render.ShortForm(b.Fields, b.ShortForm)
	values, err := r.Fill(ctx, fields, b.Responses, b.Errors)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if v, ok := values[f.FieldID()]; ok {
			b.SetResponse(f.FieldID(), v)
		}
	}
	return nil
}

func confirmSubmit(title string) tui.ConfirmConfig {
	return tui.ConfirmConfig{
		Message: fmt.Sprintf("Submit %q now?", title),
		Default: true,
	}
}
