package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func ids(fields []model.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.FieldID())
	}
	return out
}

func TestApplySubset(t *testing.T) {
	short := model.Input{Base: model.Base{ID: "a", DisplayOnShortForm: true}, Kind: model.KindText}
	long := model.Input{Base: model.Base{ID: "b"}, Kind: model.KindText}
	row := model.RowLayout{Base: model.Base{ID: "r", DisplayOnShortForm: true}}
	fields := []model.Field{short, long, row}

	tests := []struct {
		name   string
		subset FieldSubset
		want   []string
	}{
		{"empty subset keeps all", FieldSubset{}, []string{"a", "b", "r"}},
		{"short form", FieldSubset{ShortForm: true}, []string{"a", "r"}},
		{"ids", FieldSubset{IDs: []string{"b", "r"}}, []string{"b", "r"}},
		{"short form and ids", FieldSubset{ShortForm: true, IDs: []string{"b", "r"}}, []string{"r"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplySubset(fields, tc.subset)
			if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
				t.Fatalf("subset mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrorSummary(t *testing.T) {
	fields := []model.Field{
		model.Input{Base: model.Base{ID: "a", Label: "Name"}, Kind: model.KindText},
		model.RowLayout{Base: model.Base{ID: "r"}, Columns: []model.Column{{Fields: []model.Field{
			model.Input{Base: model.Base{ID: "b"}, Kind: model.KindDate},
		}}}},
	}
	got := ErrorSummary(fields, model.Errors{"a": true, "b": true})
	if diff := cmp.Diff([]string{"Name", "Date Field"}, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}
