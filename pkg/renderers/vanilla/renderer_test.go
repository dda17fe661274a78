package vanilla_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

func sampleForm() model.Form {
	return model.Form{
		ID:    "form-1",
		Title: "Feedback",
		Fields: model.FieldList{
			model.Input{Base: model.Base{ID: "h", Label: "Welcome"}, Kind: model.KindHeader},
			model.Input{Base: model.Base{ID: "p", Label: "Intro"}, Kind: model.KindParagraph},
			model.Input{Base: model.Base{ID: "name", Label: "Your Name", Required: true, DisplayOnShortForm: true}, Kind: model.KindText},
			model.Input{Base: model.Base{ID: "dob", Label: "Birthday"}, Kind: model.KindDate},
			model.RowLayout{
				Base: model.Base{ID: "row"},
				Columns: []model.Column{
					{Width: "1/4", Fields: []model.Field{
						model.Input{Base: model.Base{ID: "color", Label: "Color"}, Kind: model.KindDropdown, Options: model.DefaultOptions()},
					}},
					{Width: "3/4"},
				},
			},
			model.Unknown{Base: model.Base{ID: "x"}, Type: "rating"},
		},
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)
}

func TestRendererRendersPage(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), sampleForm(), render.RenderOptions{
		Values: map[string]any{
			"name": "Ada",
			"row":  map[string]any{"color": "option_2"},
		},
		Now: fixedNow,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(output)

	for _, want := range []string{
		"<title>Feedback</title>",
		`<h2 class="fg-heading" id="fg-h" contenteditable="true">Welcome</h2>`,
		`value="Ada"`,
		`max="2024-05-17"`,
		`<option value="option_2" selected>Option 2</option>`,
		`flex: 0 0 25%; max-width: 25%`,
		"Unknown field type: rating",
		".fg-form {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, `class="fg-summary"`) {
		t.Errorf("unexpected error summary without errors")
	}
}

func TestRendererShowsErrors(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithoutDefaultStyles())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), sampleForm(), render.RenderOptions{
		Errors: model.Errors{"name": true},
		Now:    fixedNow,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(output)

	if !strings.Contains(out, `<li>Your Name</li>`) {
		t.Errorf("summary missing failed label:\n%s", out)
	}
	if !strings.Contains(out, `<p class="fg-error">This field is required.</p>`) {
		t.Errorf("field error missing")
	}
	if strings.Contains(out, ".fg-form {") {
		t.Errorf("default styles inlined despite WithoutDefaultStyles")
	}
}

func TestRendererShortForm(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), sampleForm(), render.RenderOptions{ShortForm: true, Now: fixedNow})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(output)
	if !strings.Contains(out, `id="fg-name"`) {
		t.Errorf("short form field missing")
	}
	if strings.Contains(out, `id="fg-dob"`) {
		t.Errorf("field without displayOnShortForm rendered")
	}
}

func TestRendererSanitizesParagraphs(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.RenderNodes(render.RenderFields([]model.Field{
		model.Input{Base: model.Base{ID: "p"}, Kind: model.KindParagraph},
	}, map[string]any{"p": `<b>Bold</b><script>alert(1)</script>`}, nil, nil))
	if err != nil {
		t.Fatalf("render nodes: %v", err)
	}
	if !strings.Contains(out, "<b>Bold</b>") {
		t.Errorf("inline formatting dropped: %s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("script survived sanitizing: %s", out)
	}
}

func TestRendererAppliesTheme(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithStylesheet("forms.css"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), sampleForm(), render.RenderOptions{
		Now: fixedNow,
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--fg-accent": "#123456"},
			AssetURL: func(key string) string {
				return "/themes/acme/" + key
			},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(output)

	for _, want := range []string{
		`data-theme="dark"`,
		`<link rel="stylesheet" href="/themes/acme/forms.css">`,
		"--fg-accent: #123456;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRendererThemePagePartial(t *testing.T) {
	files := fstest.MapFS{
		"templates/form.tmpl":    {Data: []byte("default")},
		"templates/compact.tmpl": {Data: []byte("compact:{{ title }}")},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), sampleForm(), render.RenderOptions{
		Theme: &theme.RendererConfig{Partials: map[string]string{"forms.page": "templates/compact.tmpl"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(output); got != "compact:Feedback" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRendererHonoursCancelledContext(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, sampleForm(), render.RenderOptions{}); err == nil {
		t.Fatal("expected context error")
	}
}
