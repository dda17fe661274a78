package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeFields_Variants(t *testing.T) {
	payload := `[
		{"type":"header","id":"h1","label":"Title"},
		{"type":"dropdown","id":"d1","label":"Pick","required":true,"options":[{"label":"A","value":"a"}]},
		{"type":"rowLayout","id":"r1","columns":[{"width":"1/3","fields":[{"type":"text","id":"t1","label":"Name"}]},{"width":"2/3","fields":[]}]},
		{"type":"section","id":"s1","label":"Group","rows":[{"type":"rowLayout","id":"r2","columns":[{"width":"1/2","fields":[]}]}]},
		{"type":"signature","id":"x1","label":"Sign here"}
	]`

	got, err := DecodeFields([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []Field{
		Input{Base: Base{ID: "h1", Label: "Title"}, Kind: KindHeader},
		Input{Base: Base{ID: "d1", Label: "Pick", Required: true}, Kind: KindDropdown, Options: []Option{{Label: "A", Value: "a"}}},
		RowLayout{Base: Base{ID: "r1"}, Columns: []Column{
			{Width: "1/3", Fields: []Field{Input{Base: Base{ID: "t1", Label: "Name"}, Kind: KindText}}},
			{Width: "2/3"},
		}},
		Section{Base: Base{ID: "s1", Label: "Group"}, Rows: []RowLayout{
			{Base: Base{ID: "r2"}, Columns: []Column{{Width: "1/2"}}},
		}},
	}

	if diff := cmp.Diff(want, got[:4]); diff != "" {
		t.Fatalf("decoded fields mismatch (-want +got):\n%s", diff)
	}

	unknown, ok := got[4].(Unknown)
	if !ok {
		t.Fatalf("expected Unknown for unrecognised type, got %T", got[4])
	}
	if unknown.Type != "signature" || unknown.ID != "x1" {
		t.Fatalf("unexpected unknown field: %+v", unknown)
	}
}

func TestDecodeRow_ReconcilesLegacyLayout(t *testing.T) {
	payload := `{"type":"rowLayout","id":"r1","layout":["1/4","3/4","50%"],"columns":[{"fields":[]},{"width":"1/3","fields":[]}]}`

	field, err := DecodeField([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	row, ok := field.(RowLayout)
	if !ok {
		t.Fatalf("expected RowLayout, got %T", field)
	}

	want := []string{"1/4", "1/3", "50%"}
	if diff := cmp.Diff(want, row.Widths()); diff != "" {
		t.Fatalf("widths mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRow_MissingWidthDefaults(t *testing.T) {
	field, err := DecodeField([]byte(`{"type":"rowLayout","id":"r1","columns":[{"fields":[]}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := field.(RowLayout).Columns[0].Width; got != DefaultColumnWidth {
		t.Fatalf("expected default width %q, got %q", DefaultColumnWidth, got)
	}
}

func TestEncodeFields_WritesCanonicalWidths(t *testing.T) {
	fields := []Field{
		RowLayout{Base: Base{ID: "r1"}, Columns: []Column{{Width: "1/2"}, {Width: "1/2"}}},
	}

	data, err := EncodeFields(fields)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var generic []map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := generic[0]["layout"]; ok {
		t.Fatalf("layout must not be written, got %s", data)
	}
	cols := generic[0]["columns"].([]any)
	if len(cols) != 2 {
		t.Fatalf("expected two columns, got %s", data)
	}
	first := cols[0].(map[string]any)
	if first["width"] != "1/2" {
		t.Fatalf("expected width on column, got %s", data)
	}
	if fields, ok := first["fields"].([]any); !ok || len(fields) != 0 {
		t.Fatalf("expected empty fields array, got %s", data)
	}
}

func TestUnknown_RoundTripsPayload(t *testing.T) {
	raw := `{"type":"rating","id":"x","stars":5}`
	field, err := DecodeField([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Fatalf("expected payload preserved\nwant: %s\n got: %s", raw, out)
	}
}

func TestPlacement_RoundTrip(t *testing.T) {
	raw := `[{"type":"text","id":"t","label":"T","x":1,"y":2,"w":6,"h":1}]`
	fields, err := DecodeFields([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := &Placement{X: 1, Y: 2, W: 6, H: 1}
	if diff := cmp.Diff(want, fields[0].Common().Placement); diff != "" {
		t.Fatalf("placement mismatch (-want +got):\n%s", diff)
	}

	encoded, err := EncodeFields(fields)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := DecodeFields(encoded)
	if err != nil {
		t.Fatalf("decode again: %v", err)
	}
	if diff := cmp.Diff(fields, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
