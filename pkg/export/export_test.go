package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func sampleRecord() Record {
	responses := model.NewFlatResponses()
	responses.Set("1", "Ada")
	responses.Set("2", []any{"go", "rust"})
	responses.Set("3", `say "hi"`)
	responses.Set("extra", nil)
	responses.Set("4", map[string]any{"b": "2", "a": "1"})
	return Record{
		Title:     "Survey",
		Responses: responses,
		Fields: []model.FieldRef{
			{ID: "1", Label: "Name"},
			{ID: "2", Label: "Languages"},
			{ID: "3", Label: "Quote"},
			{ID: "4", Label: "Row"},
		},
	}
}

func TestTable(t *testing.T) {
	headers, values := Table(sampleRecord())

	if diff := cmp.Diff([]string{"Name", "Languages", "Quote", "extra", "Row"}, headers); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}
	want := []string{"Ada", "go, rust", `say "hi"`, "", `{"a":"1","b":"2"}`}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, CSV, sampleRecord()); err != nil {
		t.Fatalf("export: %v", err)
	}

	want := `"Name","Languages","Quote","extra","Row"` + "\n" +
		`"Ada","go, rust","say ""hi""","","{""a"":""1"",""b"":""2""}"`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestExportXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, XLSX, sampleRecord()); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), rows)
	}
	if diff := cmp.Diff([]string{"Name", "Languages", "Quote", "extra", "Row"}, rows[0]); diff != "" {
		t.Fatalf("header row mismatch (-want +got):\n%s", diff)
	}
	if rows[1][0] != "Ada" || rows[1][1] != "go, rust" {
		t.Fatalf("unexpected value row: %v", rows[1])
	}
}

func TestExportPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, PDF, Record{Responses: model.NewFlatResponses()}); err != nil {
		t.Fatalf("export empty: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.String()[:16])
	}

	buf.Reset()
	if err := Export(&buf, PDF, sampleRecord()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
}

func TestExportJSONPrefersSource(t *testing.T) {
	sub := model.FormSubmission{ID: "s1", Title: "T", Responses: model.NewFlatResponses()}
	sub.Responses.Set("Name", "Ada")

	var buf bytes.Buffer
	if err := Export(&buf, JSON, FromForm(sub)); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"id\": \"s1\"") {
		t.Fatalf("expected indented submission, got:\n%s", buf.String())
	}

	var decoded model.FormSubmission
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, _ := decoded.Responses.Get("Name"); v != "Ada" {
		t.Fatalf("responses lost: %v", decoded.Responses.Map())
	}
}

func TestExportUnknownFormat(t *testing.T) {
	err := Export(&bytes.Buffer{}, Format("docx"), sampleRecord())
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := ParseFormat("DOCX"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if f, err := ParseFormat(" XLSX "); err != nil || f != XLSX {
		t.Fatalf("ParseFormat(XLSX) = %q, %v", f, err)
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		title  string
		format Format
		want   string
	}{
		{"Survey", CSV, "Survey_responses.csv"},
		{"", XLSX, "form_responses.xlsx"},
		{"Survey", PDF, "Survey_responses.pdf"},
		{"Survey", JSON, "Survey.json"},
		{"  ", JSON, "form.json"},
	}
	for _, tc := range cases {
		if got := Filename(tc.title, tc.format); got != tc.want {
			t.Errorf("Filename(%q, %s) = %q, want %q", tc.title, tc.format, got, tc.want)
		}
	}
}

func TestFromFormLabelsByKey(t *testing.T) {
	sub := model.FormSubmission{
		Title:     "T",
		Responses: model.NewFlatResponses(),
		Fields: model.FieldList{
			model.Input{Base: model.Base{ID: "1", Label: "Name"}, Kind: model.KindText},
		},
	}
	sub.Responses.Set("Name", "Ada")

	headers, _ := Table(FromForm(sub))
	if diff := cmp.Diff([]string{"Name"}, headers); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}
}
