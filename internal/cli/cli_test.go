package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

// testApp wires an App over an in-memory store with a fixed clock and
// sequential ids.
func testApp(t *testing.T) (*App, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	return &App{
		Store: store,
		Log:   logging.Nop(),
		IDs:   testsupport.SequentialIDs("id"),
		Now:   testsupport.Clock,
	}, store
}

// executeCmd runs a command against a draft in the test's temp dir and
// captures stdout and stderr.
func executeCmd(t *testing.T, app *App, draft string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--draft", draft}, args...))
	err := root.Execute()
	return buf.String(), err
}

func draftFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "draft.json")
}

type stubPrompt struct {
	inputs  []string
	confirm bool
	infos   []string
}

func (s *stubPrompt) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return cfg.Default, nil
	}
	next := s.inputs[0]
	s.inputs = s.inputs[1:]
	return next, nil
}

func (s *stubPrompt) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return s.confirm, nil
}

func (s *stubPrompt) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (s *stubPrompt) MultiSelect(_ context.Context, cfg tui.SelectConfig) ([]int, error) {
	return cfg.Defaults, nil
}

func (s *stubPrompt) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func TestBuilderFlow_SubmitAndExport(t *testing.T) {
	app, _ := testApp(t)
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new", "--title", "Signup")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "field", "add", "text", "--label", "Full Name", "--required")
	require.NoError(t, err)

	out, err := executeCmd(t, app, draft, "submit")
	var verr *session.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	assert.Equal(t, []string{"id1"}, verr.Errors.IDs())
	assert.Contains(t, out, "- Full Name")

	_, err = executeCmd(t, app, draft, "answer", "id1", "Ann", "Lee")
	require.NoError(t, err)

	out, err = executeCmd(t, app, draft, "submit")
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted id2")

	out, err = executeCmd(t, app, draft, "forms", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Signup")
	assert.Contains(t, out, "2024-05-17T10:00:00.000Z")

	out, err = executeCmd(t, app, draft, "forms", "export", "id2", "--format", "csv", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Full Name")
	assert.Contains(t, out, "Ann Lee")
}

func TestTemplateFlow_StoresTemplateSubmission(t *testing.T) {
	app, store := testApp(t)
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new", "--template", "feedback")
	require.NoError(t, err)

	out, err := executeCmd(t, app, draft, "field", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "FEEDBACK FORM")
	assert.Contains(t, out, "template feedback")
	assert.Contains(t, out, "Your Name")

	for _, args := range [][]string{
		{"answer", "3", "Ann"},
		{"answer", "4", "excellent"},
		{"answer", "5", "yes"},
	} {
		_, err := executeCmd(t, app, draft, args...)
		require.NoError(t, err, "%v", args)
	}

	_, err = executeCmd(t, app, draft, "submit")
	require.NoError(t, err)

	subs := storage.TemplateSubmissions(store).Active(context.Background())
	require.Len(t, subs, 1)
	assert.Equal(t, "feedback", subs[0].TemplateID)
	assert.Equal(t, "Feedback Form", subs[0].Title)
	answer, ok := subs[0].Responses.Get("3")
	require.True(t, ok)
	assert.Equal(t, "Ann", answer)
	assert.Empty(t, storage.Forms(store).All(context.Background()))
}

func TestTemplateFlow_IgnoresShortFormConfig(t *testing.T) {
	app, _ := testApp(t)
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new", "--template", "feedback", "--short-form")
	require.NoError(t, err)

	d, err := readDraft(draft)
	require.NoError(t, err)
	assert.False(t, d.ShortForm)

	for _, args := range [][]string{
		{"answer", "3", "Ada"},
		{"answer", "4", "good"},
		{"answer", "5", "no"},
	} {
		_, err := executeCmd(t, app, draft, args...)
		require.NoError(t, err, "%v", args)
	}

	out, err := executeCmd(t, app, draft, "submit")
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted")
}

func TestBuilderFlow_ShortFormDraft(t *testing.T) {
	app, _ := testApp(t)
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new", "--short-form")
	require.NoError(t, err)

	d, err := readDraft(draft)
	require.NoError(t, err)
	assert.True(t, d.ShortForm)
}

func TestFieldAdd_OnShortFormFlag(t *testing.T) {
	app, _ := testApp(t)
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "field", "add", "text", "--label", "Email", "--on-short-form")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "field", "add", "text", "--label", "Notes", "--short-form")
	require.NoError(t, err)
	assert.True(t, app.Config.ShortForm)

	d, err := readDraft(draft)
	require.NoError(t, err)
	require.Len(t, d.Fields, 2)
	assert.True(t, d.Fields[0].Common().DisplayOnShortForm)
	assert.False(t, d.Fields[1].Common().DisplayOnShortForm)
	assert.False(t, d.ShortForm)
}

func TestFieldCommands_RowLayout(t *testing.T) {
	app, _ := testApp(t)
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "field", "add", "rowLayout")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "field", "add", "text", "--parent", "id1", "--column", "1", "--label", "Street")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "row", "relayout", "id1", "1/3+2/3")
	require.NoError(t, err)

	out, err := executeCmd(t, app, draft, "field", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1/3 + 2/3")
	assert.Contains(t, out, "  id2")
	assert.Contains(t, out, "Street")

	_, err = executeCmd(t, app, draft, "field", "add", "text", "--parent", "missing")
	assert.ErrorContains(t, err, `parent "missing"`)

	_, err = executeCmd(t, app, draft, "field", "add", "slider")
	assert.ErrorContains(t, err, "unknown field kind")
}

func TestFieldUpdate_SetsOptions(t *testing.T) {
	app, _ := testApp(t)
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "field", "add", "dropdown")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "field", "update", "id1", "--label", "Topic", "--options", "Sales,Customer Support")
	require.NoError(t, err)

	d, err := readDraft(draft)
	require.NoError(t, err)
	require.Len(t, d.Fields, 1)
	in, ok := d.Fields[0].(model.Input)
	require.True(t, ok)
	assert.Equal(t, "Topic", in.Label)
	assert.Equal(t, []model.Option{
		{Label: "Sales", Value: "sales"},
		{Label: "Customer Support", Value: "customer_support"},
	}, in.Options)
}

func TestPreview_TextRenderer(t *testing.T) {
	app, _ := testApp(t)
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new", "--title", "Signup")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "field", "add", "multipleChoice", "--label", "Plan", "--options", "Free,Pro")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "answer", "id1", "pro")
	require.NoError(t, err)

	out, err := executeCmd(t, app, draft, "preview", "--renderer", "text")
	require.NoError(t, err)
	assert.Equal(t, "# Signup\nPlan: pro\n  ( ) Free\n  (x) Pro\n", out)
}

func TestPreview_HTML(t *testing.T) {
	app, _ := testApp(t)
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new", "--title", "Signup")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "field", "add", "text", "--label", "Full Name")
	require.NoError(t, err)

	out, err := executeCmd(t, app, draft, "preview")
	require.NoError(t, err)
	assert.Contains(t, out, "Signup")
	assert.Contains(t, out, "Full Name")
}

func TestFill_PromptsAndSubmits(t *testing.T) {
	app, store := testApp(t)
	prompt := &stubPrompt{inputs: []string{"Ann"}, confirm: true}
	app.Prompt = prompt
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new", "--title", "Signup")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "field", "add", "text", "--label", "Full Name", "--required")
	require.NoError(t, err)

	out, err := executeCmd(t, app, draft, "fill")
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted")
	assert.Equal(t, []string{"Signup"}, prompt.infos)

	forms := storage.Forms(store).Active(context.Background())
	require.Len(t, forms, 1)
	got, _ := forms[0].Responses.Get("Full Name")
	assert.Equal(t, "Ann", got)
}

func TestFill_RequiresTerminal(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return false }
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "fill")
	assert.ErrorIs(t, err, errNotInteractive)
}

func TestRecords_TrashLifecycle(t *testing.T) {
	app, _ := testApp(t)
	draft := draftFile(t)

	_, err := executeCmd(t, app, draft, "new", "--template", "survey")
	require.NoError(t, err)
	out, err := executeCmd(t, app, draft, "templates", "save", "--title", "Team Survey")
	require.NoError(t, err)
	assert.Contains(t, out, `"Team Survey" as id1`)

	out, err = executeCmd(t, app, draft, "templates", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Feedback Form")
	assert.Contains(t, out, "Team Survey")

	_, err = executeCmd(t, app, draft, "templates", "delete", "id1")
	require.NoError(t, err)
	out, err = executeCmd(t, app, draft, "trash")
	require.NoError(t, err)
	assert.Contains(t, out, "templates")
	assert.Contains(t, out, "Team Survey")

	_, err = executeCmd(t, app, draft, "templates", "restore", "id1")
	require.NoError(t, err)
	out, err = executeCmd(t, app, draft, "trash")
	require.NoError(t, err)
	assert.Contains(t, out, "Trash is empty.")

	_, err = executeCmd(t, app, draft, "templates", "purge", "id1")
	require.NoError(t, err)
	_, err = executeCmd(t, app, draft, "templates", "restore", "id1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTheme_SetAndGet(t *testing.T) {
	app, _ := testApp(t)
	draft := draftFile(t)

	out, err := executeCmd(t, app, draft, "theme", "get")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	_, err = executeCmd(t, app, draft, "theme", "set", "dark")
	require.NoError(t, err)
	out, err = executeCmd(t, app, draft, "theme", "get")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	_, err = executeCmd(t, app, draft, "theme", "set", "sepia")
	assert.Error(t, err)
}

func TestMissingDraft(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, draftFile(t), "field", "list")
	assert.ErrorContains(t, err, "formbuilder new")
}
