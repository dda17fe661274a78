package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/goliatone/go-formbuilder/pkg/extract"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

const (
	numberMessage = "Enter a number."
	dateMessage   = "Enter a date as YYYY-MM-DD."
	futureMessage = "Date cannot be in the future."
)

// Renderer fills a form interactively in the terminal. Each field is shown
// as a prompt and every answer goes back through the display tree's bound
// handlers, so row and section values take the same shape as in the
// browser preview.
type Renderer struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	now               func() time.Time
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		out:          os.Stdout,
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "! ", RulePrefix: "----"},
		now:          time.Now,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field, checks required answers and returns the
// flattened answers in the configured output format.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	fields := render.ShortForm(form.Fields, opts.ShortForm)
	now := r.now
	if opts.Now != nil {
		now = opts.Now
	}
	if form.Title != "" {
		if err := r.info(ctx, r.theme.InfoPrefix+form.Title); err != nil {
			return nil, err
		}
	}

	values, err := r.fill(ctx, fields, opts.Values, opts.Errors, now)
	if err != nil {
		return nil, err
	}

	result := extract.Extract(fields, values)
	if !result.OK() {
		return nil, fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(render.ErrorSummary(fields, result.Errors), ", "))
	}

	flat := result.Flat
	if r.submitTransformer != nil {
		flat, err = r.submitTransformer(flat)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(flat)
}

// Fill prompts for every field of the root list and returns the raw answers
// keyed by root id. prefill seeds the defaults and errs marks fields whose
// prompt shows the required message.
func (r *Renderer) Fill(ctx context.Context, fields []model.Field, prefill map[string]any, errs model.Errors) (map[string]any, error) {
	return r.fill(ctx, fields, prefill, errs, r.now)
}

func (r *Renderer) fill(ctx context.Context, fields []model.Field, prefill map[string]any, errs model.Errors, now func() time.Time) (map[string]any, error) {
	state := NewState(prefill, errs)
	for _, f := range fields {
		if f == nil {
			continue
		}
		if err := r.fillField(ctx, f, state, now); err != nil {
			return nil, err
		}
	}
	return state.Values(), nil
}

// fillField re-renders the root field before each prompt so nested
// handlers always merge into the latest aggregate value.
func (r *Renderer) fillField(ctx context.Context, f model.Field, state *State, now func() time.Time) error {
	rootID := f.FieldID()
	current := func() render.Node {
		return render.Render(f, state.Value(rootID), func(v any) {
			state.Set(rootID, v)
		}, state.Errors(), render.WithClock(now))
	}

	for _, leafID := range promptOrder(current()) {
		node, ok := findNode(current(), leafID)
		if !ok {
			continue
		}
		answered, err := r.prompt(ctx, node)
		if err != nil {
			return err
		}
		if answered {
			state.Clear(leafID)
		}
	}
	return nil
}

func promptOrder(root render.Node) []string {
	var ids []string
	root.Walk(func(n render.Node) {
		switch n.Kind {
		case render.NodeRow, render.NodeColumn, render.NodeSection:
		default:
			ids = append(ids, n.FieldID)
		}
	})
	return ids
}

func findNode(root render.Node, id string) (render.Node, bool) {
	var (
		found render.Node
		ok    bool
	)
	root.Walk(func(n render.Node) {
		if ok {
			return
		}
		switch n.Kind {
		case render.NodeRow, render.NodeColumn, render.NodeSection:
			return
		}
		if n.FieldID == id {
			found, ok = n, true
		}
	})
	return found, ok
}

// prompt asks for one node and reports whether it now holds an answer.
func (r *Renderer) prompt(ctx context.Context, n render.Node) (bool, error) {
	switch n.Kind {
	case render.NodeHeading, render.NodeLabel, render.NodeParagraph:
		return false, r.info(ctx, r.theme.InfoPrefix+n.Text)
	case render.NodeRule:
		return false, r.info(ctx, r.theme.RulePrefix)
	case render.NodeInput:
		return r.promptInput(ctx, n)
	case render.NodeSelect:
		return r.promptSelect(ctx, n)
	case render.NodeRadios:
		return r.promptRadios(ctx, n)
	case render.NodeCheckboxes, render.NodeChips:
		return r.promptMulti(ctx, n)
	default:
		return false, r.info(ctx, r.theme.ErrorPrefix+n.Text)
	}
}

func (r *Renderer) promptInput(ctx context.Context, n render.Node) (bool, error) {
	for {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: message(n),
			Default: n.Value,
			Help:    help(n),
		})
		if err != nil {
			return false, err
		}
		value = strings.TrimSpace(value)
		if msg := validateInput(n, value); msg != "" {
			if err := r.info(ctx, r.theme.ErrorPrefix+msg); err != nil {
				return false, err
			}
			continue
		}
		n.Commit(value)
		return value != "", nil
	}
}

func (r *Renderer) promptSelect(ctx context.Context, n render.Node) (bool, error) {
	options := append([]string{n.Placeholder}, choiceLabels(n.Choices)...)
	def := 0
	if i := selectedIndex(n.Choices); i >= 0 {
		def = i + 1
	}
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message(n),
			Options:      options,
			DefaultIndex: def,
			Help:         help(n),
		})
		if err != nil {
			return false, err
		}
		if idx <= 0 || idx > len(n.Choices) {
			if n.Required {
				if err := r.info(ctx, r.theme.ErrorPrefix+render.RequiredMessage); err != nil {
					return false, err
				}
				continue
			}
			n.Choose("")
			return false, nil
		}
		n.Choose(n.Choices[idx-1].Value)
		return true, nil
	}
}

func (r *Renderer) promptRadios(ctx context.Context, n render.Node) (bool, error) {
	if len(n.Choices) == 0 {
		return false, nil
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      message(n),
		Options:      choiceLabels(n.Choices),
		DefaultIndex: selectedIndex(n.Choices),
		Help:         help(n),
	})
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(n.Choices) {
		return false, nil
	}
	n.Choose(n.Choices[idx].Value)
	return true, nil
}

func (r *Renderer) promptMulti(ctx context.Context, n render.Node) (bool, error) {
	if len(n.Choices) == 0 {
		return false, nil
	}
	var defaults []int
	for i, c := range n.Choices {
		if c.Selected {
			defaults = append(defaults, i)
		}
	}
	for {
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  message(n),
			Options:  choiceLabels(n.Choices),
			Defaults: defaults,
			Help:     help(n),
		})
		if err != nil {
			return false, err
		}
		values := make([]string, 0, len(picked))
		for _, i := range picked {
			if i >= 0 && i < len(n.Choices) {
				values = append(values, n.Choices[i].Value)
			}
		}
		if len(values) == 0 && n.Required {
			if err := r.info(ctx, r.theme.ErrorPrefix+render.RequiredMessage); err != nil {
				return false, err
			}
			continue
		}
		n.SetSelected(values)
		return len(values) > 0, nil
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}

func validateInput(n render.Node, value string) string {
	if value == "" {
		if n.Required {
			return render.RequiredMessage
		}
		return ""
	}
	switch n.InputType {
	case string(model.KindNumber):
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return numberMessage
		}
	case string(model.KindDate):
		if _, err := time.Parse(render.DateLayout, value); err != nil {
			return dateMessage
		}
		if n.Max != "" && value > n.Max {
			return futureMessage
		}
	}
	return ""
}

func message(n render.Node) string {
	if n.Required {
		return n.Label + " *"
	}
	return n.Label
}

func help(n render.Node) string {
	if n.Invalid {
		return n.Error
	}
	return ""
}

func choiceLabels(choices []render.Choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Label
	}
	return out
}

func selectedIndex(choices []render.Choice) int {
	for i, c := range choices {
		if c.Selected {
			return i
		}
	}
	return -1
}

func (r *Renderer) serialize(flat *model.FlatResponses) ([]byte, error) {
	if flat == nil {
		flat = model.NewFlatResponses()
	}
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(flat)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(flat)), nil
	default:
		return json.MarshalIndent(flat, "", "  ")
	}
}

// encodeForm keeps answer order, unlike url.Values.Encode.
func encodeForm(flat *model.FlatResponses) string {
	var pairs []string
	flat.Range(func(key string, value any) bool {
		if list := render.StringSet(value); list != nil {
			for _, v := range list {
				pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(v))
			}
			return true
		}
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(export.Stringify(value)))
		return true
	})
	return strings.Join(pairs, "&")
}

func prettyPrint(flat *model.FlatResponses) string {
	var b strings.Builder
	flat.Range(func(key string, value any) bool {
		fmt.Fprintf(&b, "%s: %s\n", key, export.Stringify(value))
		return true
	})
	return b.String()
}
