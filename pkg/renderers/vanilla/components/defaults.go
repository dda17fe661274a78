package components

import (
	"bytes"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/tree"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(render.NodeHeading, Descriptor{Renderer: headingRenderer})
	registry.MustRegister(render.NodeLabel, Descriptor{Renderer: labelRenderer})
	registry.MustRegister(render.NodeParagraph, Descriptor{Renderer: paragraphRenderer})
	registry.MustRegister(render.NodeRule, Descriptor{Renderer: ruleRenderer})
	registry.MustRegister(render.NodeInput, Descriptor{Renderer: inputRenderer})
	registry.MustRegister(render.NodeSelect, Descriptor{Renderer: selectRenderer})
	registry.MustRegister(render.NodeRadios, Descriptor{Renderer: choiceGroupRenderer("radio")})
	registry.MustRegister(render.NodeCheckboxes, Descriptor{Renderer: choiceGroupRenderer("checkbox")})
	registry.MustRegister(render.NodeChips, Descriptor{Renderer: chipsRenderer})
	registry.MustRegister(render.NodeRow, Descriptor{Renderer: rowRenderer})
	registry.MustRegister(render.NodeSection, Descriptor{Renderer: sectionRenderer})
	registry.MustRegister(render.NodeUnknown, Descriptor{Renderer: unknownRenderer})

	return registry
}

func headingRenderer(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
	var b strings.Builder
	b.WriteString(`<h2 class="fg-heading"`)
	writeID(&b, controlID(node.FieldID))
	b.WriteString(` contenteditable="true">`)
	b.WriteString(html.EscapeString(node.Text))
	b.WriteString(`</h2>`)
	buf.WriteString(b.String())
	return nil
}

func labelRenderer(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
	var b strings.Builder
	b.WriteString(`<p class="fg-label"`)
	writeID(&b, controlID(node.FieldID))
	b.WriteString(` contenteditable="true"><strong>`)
	b.WriteString(html.EscapeString(node.Text))
	b.WriteString(`</strong></p>`)
	buf.WriteString(b.String())
	return nil
}

func paragraphRenderer(buf *bytes.Buffer, node render.Node, data ComponentData) error {
	text := html.EscapeString(node.Text)
	if data.RichText != nil {
		text = data.RichText(node.Text)
	}
	var b strings.Builder
	b.WriteString(`<p class="fg-paragraph"`)
	writeID(&b, controlID(node.FieldID))
	b.WriteString(` contenteditable="true">`)
	b.WriteString(text)
	b.WriteString(`</p>`)
	buf.WriteString(b.String())
	return nil
}

func ruleRenderer(buf *bytes.Buffer, _ render.Node, _ ComponentData) error {
	buf.WriteString(`<hr class="fg-rule">`)
	return nil
}

func inputRenderer(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
	id := controlID(node.FieldID)
	var b strings.Builder
	openField(&b, node, id)
	b.WriteString(`<input class="fg-input" type="`)
	b.WriteString(html.EscapeString(node.InputType))
	b.WriteString(`"`)
	writeID(&b, id)
	writeAttr(&b, "name", node.FieldID)
	b.WriteString(` value="`)
	b.WriteString(html.EscapeString(node.Value))
	b.WriteString(`"`)
	if node.Max != "" {
		writeAttr(&b, "max", node.Max)
	}
	writeState(&b, node)
	b.WriteString(`>`)
	closeField(&b, node)
	buf.WriteString(b.String())
	return nil
}

func selectRenderer(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
	id := controlID(node.FieldID)
	var b strings.Builder
	openField(&b, node, id)
	b.WriteString(`<select class="fg-select"`)
	writeID(&b, id)
	writeAttr(&b, "name", node.FieldID)
	writeState(&b, node)
	b.WriteString(`><option value="">`)
	b.WriteString(html.EscapeString(node.Placeholder))
	b.WriteString(`</option>`)
	for _, choice := range node.Choices {
		b.WriteString(`<option value="`)
		b.WriteString(html.EscapeString(choice.Value))
		b.WriteString(`"`)
		if choice.Selected {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(choice.Label))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)
	closeField(&b, node)
	buf.WriteString(b.String())
	return nil
}

func choiceGroupRenderer(inputType string) Renderer {
	return func(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
		id := controlID(node.FieldID)
		name := node.Name
		if name == "" {
			name = node.FieldID
		}

		var b strings.Builder
		b.WriteString(`<fieldset class="fg-field fg-choices"`)
		writeID(&b, id)
		if node.Invalid {
			b.WriteString(` aria-invalid="true"`)
		}
		b.WriteString(`><legend class="fg-field__label">`)
		writeLabelText(&b, node)
		b.WriteString(`</legend>`)
		for i, choice := range node.Choices {
			optionID := id + "-" + strconv.Itoa(i)
			b.WriteString(`<label class="fg-choice" for="`)
			b.WriteString(html.EscapeString(optionID))
			b.WriteString(`"><input type="`)
			b.WriteString(inputType)
			b.WriteString(`"`)
			writeID(&b, optionID)
			writeAttr(&b, "name", name)
			writeAttr(&b, "value", choice.Value)
			if choice.Selected {
				b.WriteString(` checked`)
			}
			b.WriteString(`> `)
			b.WriteString(html.EscapeString(choice.Label))
			b.WriteString(`</label>`)
		}
		writeError(&b, node)
		b.WriteString(`</fieldset>`)
		buf.WriteString(b.String())
		return nil
	}
}

func chipsRenderer(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
	id := controlID(node.FieldID)
	var b strings.Builder
	b.WriteString(`<div class="fg-field fg-chips" role="group"`)
	writeID(&b, id)
	if node.Invalid {
		b.WriteString(` aria-invalid="true"`)
	}
	b.WriteString(`><span class="fg-field__label">`)
	writeLabelText(&b, node)
	b.WriteString(`</span>`)
	for _, choice := range node.Choices {
		b.WriteString(`<button type="button" class="fg-chip`)
		if choice.Selected {
			b.WriteString(` fg-chip--selected`)
		}
		b.WriteString(`"`)
		writeAttr(&b, "data-value", choice.Value)
		b.WriteString(` aria-pressed="`)
		b.WriteString(strconv.FormatBool(choice.Selected))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(choice.Label))
		b.WriteString(`</button>`)
	}
	writeError(&b, node)
	b.WriteString(`</div>`)
	buf.WriteString(b.String())
	return nil
}

func rowRenderer(buf *bytes.Buffer, node render.Node, data ComponentData) error {
	var b strings.Builder
	b.WriteString(`<div class="fg-row"`)
	writeID(&b, controlID(node.FieldID))
	b.WriteString(`>`)
	for _, column := range node.Children {
		width := tree.FormatPercent(column.Width)
		b.WriteString(`<div class="fg-column"`)
		writeAttr(&b, "data-column", column.Name)
		writeAttr(&b, "data-width", column.WidthSpec)
		b.WriteString(` style="flex: 0 0 `)
		b.WriteString(width)
		b.WriteString(`; max-width: `)
		b.WriteString(width)
		b.WriteString(`">`)
		if err := writeChildren(&b, column.Children, data); err != nil {
			return err
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	buf.WriteString(b.String())
	return nil
}

func sectionRenderer(buf *bytes.Buffer, node render.Node, data ComponentData) error {
	var b strings.Builder
	b.WriteString(`<section class="fg-section"`)
	writeID(&b, controlID(node.FieldID))
	b.WriteString(`><h3 class="fg-section__title">`)
	b.WriteString(html.EscapeString(node.Label))
	b.WriteString(`</h3>`)
	if err := writeChildren(&b, node.Children, data); err != nil {
		return err
	}
	writeError(&b, node)
	b.WriteString(`</section>`)
	buf.WriteString(b.String())
	return nil
}

func unknownRenderer(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
	buf.WriteString(`<div class="fg-unknown" role="alert">`)
	buf.WriteString(html.EscapeString(node.Text))
	buf.WriteString(`</div>`)
	return nil
}

func writeChildren(b *strings.Builder, children []render.Node, data ComponentData) error {
	if data.RenderChild == nil {
		return nil
	}
	for _, child := range children {
		markup, err := data.RenderChild(child)
		if err != nil {
			return err
		}
		b.WriteString(markup)
	}
	return nil
}

func openField(b *strings.Builder, node render.Node, id string) {
	b.WriteString(`<div class="fg-field`)
	if node.Invalid {
		b.WriteString(` fg-field--invalid`)
	}
	b.WriteString(`"><label class="fg-field__label"`)
	if id != "" {
		writeAttr(b, "for", id)
	}
	b.WriteString(`>`)
	writeLabelText(b, node)
	b.WriteString(`</label>`)
}

func closeField(b *strings.Builder, node render.Node) {
	writeError(b, node)
	b.WriteString(`</div>`)
}

func writeLabelText(b *strings.Builder, node render.Node) {
	b.WriteString(html.EscapeString(node.Label))
	if node.Required {
		b.WriteString(` <span class="fg-required" aria-hidden="true">*</span>`)
	}
}

func writeState(b *strings.Builder, node render.Node) {
	if node.Required {
		b.WriteString(` required`)
	}
	if node.Invalid {
		b.WriteString(` aria-invalid="true"`)
	}
}

func writeError(b *strings.Builder, node render.Node) {
	if !node.Invalid || node.Error == "" {
		return
	}
	b.WriteString(`<p class="fg-error">`)
	b.WriteString(html.EscapeString(node.Error))
	b.WriteString(`</p>`)
}

func writeID(b *strings.Builder, id string) {
	if id != "" {
		writeAttr(b, "id", id)
	}
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(` `)
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}
