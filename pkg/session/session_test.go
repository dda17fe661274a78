package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/catalog"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/tree"
)

var submittedAt = time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return submittedAt }

func sequence(prefix string) session.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

type failingStore struct {
	*storage.Memory
}

func (failingStore) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func newBuilder(store storage.Store) *session.Builder {
	return session.NewBuilder(store, session.WithIDGenerator(sequence("f")), session.WithClock(clock))
}

func requiredText(t *testing.T, b *session.Builder, label string) string {
	t.Helper()
	f, err := b.AddField(model.KindText, tree.Root)
	if err != nil {
		t.Fatalf("AddField: %v", err)
	}
	in := f.(model.Input)
	in.Label = label
	in.Required = true
	if err := b.UpdateField(in); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	return in.ID
}

func TestBuilderSubmit_BlockedStoresNothing(t *testing.T) {
	store := storage.NewMemory()
	b := newBuilder(store)
	id := requiredText(t, b, "Name")

	_, err := b.Submit(context.Background())
	var verr *session.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if diff := cmp.Diff([]string{id}, verr.Errors.IDs()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if !b.Errors.Has(id) {
		t.Fatalf("expected builder to flag %q", id)
	}
	if keys := store.Keys(); len(keys) != 0 {
		t.Fatalf("expected nothing stored, got keys %v", keys)
	}
}

func TestBuilderSubmit_PrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	b := newBuilder(store)
	id := requiredText(t, b, "Name")

	b.SetResponse(id, "Ann")
	first, err := b.Submit(ctx)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	b.SetResponse(id, "Bob")
	second, err := b.Submit(ctx)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if first.Timestamp != "2024-05-17T10:00:00.000Z" {
		t.Fatalf("unexpected timestamp %q", first.Timestamp)
	}
	if got, _ := second.Responses.Get("Name"); got != "Bob" {
		t.Fatalf("expected Name=Bob, got %v", got)
	}

	stored := storage.Forms(store).Active(ctx)
	var got []string
	for _, s := range stored {
		got = append(got, s.ID)
	}
	if diff := cmp.Diff([]string{second.ID, first.ID}, got); diff != "" {
		t.Fatalf("stored order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderSubmit_SaveFailure(t *testing.T) {
	b := newBuilder(failingStore{storage.NewMemory()})
	id := requiredText(t, b, "Name")
	b.SetResponse(id, "Ann")

	_, err := b.Submit(context.Background())
	if !errors.Is(err, session.ErrSaveFailed) {
		t.Fatalf("expected ErrSaveFailed, got %v", err)
	}
}

func TestBuilderPreview_CommitUpdatesResponses(t *testing.T) {
	b := newBuilder(storage.NewMemory())
	id := requiredText(t, b, "Name")
	b.Errors = model.Errors{id: true}

	nodes := b.Preview()
	if len(nodes) != 1 || !nodes[0].Invalid {
		t.Fatalf("expected one invalid node, got %+v", nodes)
	}
	nodes[0].Commit("typed")

	if got := b.Responses[id]; got != "typed" {
		t.Fatalf("expected response to be stored, got %v", got)
	}
	if b.Errors.Has(id) {
		t.Fatalf("expected error flag to clear on edit")
	}
}

func TestBuilderPreview_RowValueRoundTrips(t *testing.T) {
	ctx := context.Background()
	b := newBuilder(storage.NewMemory())
	row, err := b.AddField(model.KindRowLayout, tree.Root)
	if err != nil {
		t.Fatalf("AddField row: %v", err)
	}
	child, err := b.AddField(model.KindText, tree.InColumn(row.FieldID(), 1))
	if err != nil {
		t.Fatalf("AddField child: %v", err)
	}

	nodes := b.Preview()
	input := nodes[0].Children[1].Children[0]
	input.Commit("nested")

	want := map[string]any{child.FieldID(): "nested"}
	if diff := cmp.Diff(want, b.Responses[row.FieldID()]); diff != "" {
		t.Fatalf("row value mismatch (-want +got):\n%s", diff)
	}

	sub, err := b.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got, _ := sub.Responses.Get("Text Field"); got != "nested" {
		t.Fatalf("expected nested answer flattened, got %v", sub.Responses.Map())
	}
}

func TestBuilderAddField_Placement(t *testing.T) {
	b := newBuilder(storage.NewMemory())
	text, _ := b.AddField(model.KindText, tree.Root)
	drop, _ := b.AddField(model.KindDropdown, tree.Root)
	row, _ := b.AddField(model.KindRowLayout, tree.Root)
	nested, err := b.AddField(model.KindText, tree.InColumn(row.FieldID(), 0))
	if err != nil {
		t.Fatalf("AddField nested: %v", err)
	}

	tests := []struct {
		name  string
		field model.Field
		want  *model.Placement
	}{
		{"text", text, &model.Placement{X: 0, Y: 0, W: 6, H: 7}},
		{"dropdown", drop, &model.Placement{X: 2, Y: 1, W: 6, H: 11}},
		{"row", row, &model.Placement{X: 4, Y: 2, W: 6, H: 18}},
		{"nested", nested, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.field.Common().Placement); diff != "" {
				t.Fatalf("placement mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuilderDeleteField_ClearsAnswer(t *testing.T) {
	b := newBuilder(storage.NewMemory())
	id := requiredText(t, b, "Name")
	b.SetResponse(id, "Ann")
	b.Errors = model.Errors{id: true}

	if err := b.DeleteField(id); err != nil {
		t.Fatalf("DeleteField: %v", err)
	}
	if len(b.Fields) != 0 || len(b.Responses) != 0 || b.Errors.Len() != 0 {
		t.Fatalf("expected empty state, got fields=%d responses=%v errors=%v", len(b.Fields), b.Responses, b.Errors)
	}
}

func TestBuilderRelayout(t *testing.T) {
	b := newBuilder(storage.NewMemory())
	row, _ := b.AddField(model.KindRowLayout, tree.Root)
	if err := b.Relayout(row.FieldID(), "1/4+3/4"); err != nil {
		t.Fatalf("Relayout: %v", err)
	}
	if err := b.AddColumn(row.FieldID()); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	got := b.Fields[0].(model.RowLayout).Widths()
	if diff := cmp.Diff([]string{"1/4", "3/4", model.DefaultColumnWidth}, got); diff != "" {
		t.Fatalf("widths mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderDraft_RoundTrip(t *testing.T) {
	b := newBuilder(storage.NewMemory())
	id := requiredText(t, b, "Name")
	b.Title = "Signup"
	b.ShortForm = true
	b.SetResponse(id, "Ann")

	restored := newBuilder(storage.NewMemory())
	restored.LoadDraft(b.Draft())

	if restored.Title != "Signup" || !restored.ShortForm {
		t.Fatalf("unexpected restored header: %q short=%v", restored.Title, restored.ShortForm)
	}
	if diff := cmp.Diff(b.Responses, restored.Responses); diff != "" {
		t.Fatalf("responses mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(tree.IDs(b.Fields), tree.IDs(restored.Fields)); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func newTemplateForm(t *testing.T, store storage.Store) (*session.TemplateForm, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.New(store)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return session.NewTemplateForm(store, cat, session.WithIDGenerator(sequence("t")), session.WithClock(clock)), cat
}

func TestTemplateFormLoad(t *testing.T) {
	form, _ := newTemplateForm(t, storage.NewMemory())
	if err := form.Load(context.Background(), "feedback"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if form.Title != "Feedback Form" {
		t.Fatalf("expected title from header, got %q", form.Title)
	}
	if diff := cmp.Diff([]string{"1", "2", "3", "4", "5"}, tree.IDs(form.Fields)); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateFormLoad_Unknown(t *testing.T) {
	form, _ := newTemplateForm(t, storage.NewMemory())
	err := form.Load(context.Background(), "missing")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(form.Fields) != 0 || form.Title != session.DefaultTemplateTitle {
		t.Fatalf("expected reset state, got %q with %d fields", form.Title, len(form.Fields))
	}
}

func TestTemplateFormSubmit(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	form, _ := newTemplateForm(t, store)
	if err := form.Load(ctx, "feedback"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := form.Submit(ctx); err == nil {
		t.Fatalf("expected required fields to block submit")
	}
	if diff := cmp.Diff([]string{"3", "4", "5"}, form.Errors.IDs()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	form.SetResponse("3", "Ann")
	form.SetResponse("4", "excellent")
	form.SetResponse("5", "yes")
	sub, err := form.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if sub.TemplateID != "feedback" || sub.SubmittedAt != "2024-05-17T10:00:00.000Z" {
		t.Fatalf("unexpected submission header: %+v", sub)
	}
	if got, _ := sub.Responses.Get("3"); got != "Ann" {
		t.Fatalf("expected answers keyed by id, got %v", sub.Responses.Map())
	}
	if diff := cmp.Diff(model.FieldRef{ID: "3", Label: "Your Name"}, sub.Fields[2]); diff != "" {
		t.Fatalf("field ref mismatch (-want +got):\n%s", diff)
	}

	stored := storage.TemplateSubmissions(store).Active(ctx)
	if len(stored) != 1 || stored[0].ID != sub.ID {
		t.Fatalf("expected submission stored, got %+v", stored)
	}
	if forms := storage.Forms(store).All(ctx); len(forms) != 0 {
		t.Fatalf("expected recentForms untouched, got %d", len(forms))
	}
}

func TestTemplateFormSubmit_NestedRequired(t *testing.T) {
	ctx := context.Background()
	form, _ := newTemplateForm(t, storage.NewMemory())
	form.LoadDraft(session.Draft{
		TemplateID: "contact",
		Title:      "Contact",
		Fields: model.FieldList{
			model.RowLayout{
				Base: model.Base{ID: "row"},
				Columns: []model.Column{{Width: "1/1", Fields: []model.Field{
					model.Input{Base: model.Base{ID: "c", Label: "City", Required: true}, Kind: model.KindText},
				}}},
			},
		},
	})

	if _, err := form.Submit(ctx); err == nil {
		t.Fatalf("expected nested required field to block submit")
	}
	if diff := cmp.Diff([]string{"c"}, form.Errors.IDs()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	form.SetResponse("c", "Lisbon")
	sub, err := form.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got, _ := sub.Responses.Get("c"); got != "Lisbon" {
		t.Fatalf("expected nested answer keyed by id, got %v", sub.Responses.Map())
	}
}

func TestTemplateFormSaveAsTemplate_SoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	form, cat := newTemplateForm(t, store)

	if _, err := form.SaveAsTemplate(ctx); !errors.Is(err, session.ErrEmptyTemplate) {
		t.Fatalf("expected ErrEmptyTemplate, got %v", err)
	}

	if err := form.Load(ctx, "survey"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := form.AddField(model.KindTags); err != nil {
		t.Fatalf("AddField: %v", err)
	}
	form.Title = "   "
	saved, err := form.SaveAsTemplate(ctx)
	if err != nil {
		t.Fatalf("SaveAsTemplate: %v", err)
	}
	if saved.Title != session.UntitledTemplate {
		t.Fatalf("expected untitled fallback, got %q", saved.Title)
	}

	templates := storage.Templates(store, storage.WithClock(clock))
	if err := templates.SoftDelete(ctx, saved.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if len(templates.Active(ctx)) != 0 || len(templates.Trash(ctx)) != 1 {
		t.Fatalf("expected template in trash")
	}

	tpl, err := cat.Lookup(ctx, saved.ID)
	if err != nil {
		t.Fatalf("expected trashed template to resolve: %v", err)
	}
	if len(tpl.Fields) != len(saved.Fields) {
		t.Fatalf("expected %d fields, got %d", len(saved.Fields), len(tpl.Fields))
	}

	if err := templates.Restore(ctx, saved.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	active := templates.Active(ctx)
	if len(active) != 1 || active[0].Deleted() {
		t.Fatalf("expected restored template, got %+v", active)
	}
}
