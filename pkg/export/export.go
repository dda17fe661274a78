// Package export writes a stored submission as a downloadable file: CSV,
// XLSX, PDF or JSON. Every tabular format has one header row of field
// labels and one row of answers.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrUnknownFormat is returned for formats other than the ones listed in
// Formats.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format names an output file type.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
	JSON Format = "json"
)

// DefaultPDFTitle heads PDFs of untitled submissions.
const DefaultPDFTitle = "Form Responses"

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{CSV, XLSX, PDF, JSON}
}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case CSV, XLSX, PDF, JSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
}

// ContentType returns the MIME type of files in format f.
func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv; charset=utf-8"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case PDF:
		return "application/pdf"
	case JSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// Record is what gets exported. Responses keys are matched against Fields
// ids to find column labels; unmatched keys label themselves.
type Record struct {
	Title     string               `json:"title"`
	Responses *model.FlatResponses `json:"responses"`
	Fields    []model.FieldRef     `json:"fields"`
	// Source, when set, is written by the JSON format instead of the
	// record itself.
	Source any `json:"-"`
}

// FromForm builds the record of a builder submission.
func FromForm(sub model.FormSubmission) Record {
	return Record{Title: sub.Title, Responses: sub.Responses, Fields: model.Refs(sub.Fields), Source: sub}
}

// FromTemplateSubmission builds the record of a filled template.
func FromTemplateSubmission(sub model.TemplateSubmission) Record {
	return Record{Title: sub.Title, Responses: sub.Responses, Fields: sub.Fields, Source: sub}
}

// Export writes rec to w in format.
func Export(w io.Writer, format Format, rec Record) error {
	switch format {
	case CSV:
		return writeCSV(w, rec)
	case XLSX:
		return writeXLSX(w, rec)
	case PDF:
		return writePDF(w, rec)
	case JSON:
		return writeJSON(w, rec)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Filename is the suggested download name: "<title>_responses.<ext>", with
// "form" standing in for an empty title. JSON files are named "<title>.json".
func Filename(title string, format Format) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = "form"
	}
	if format == JSON {
		return base + ".json"
	}
	return base + "_responses." + string(format)
}

// Table returns the header labels and stringified values in response order.
func Table(rec Record) (headers, values []string) {
	labels := make(map[string]string, len(rec.Fields))
	for _, ref := range rec.Fields {
		if _, seen := labels[ref.ID]; !seen {
			labels[ref.ID] = ref.Label
		}
	}
	if rec.Responses == nil {
		return nil, nil
	}
	rec.Responses.Range(func(key string, value any) bool {
		label := labels[key]
		if label == "" {
			label = key
		}
		headers = append(headers, label)
		values = append(values, Stringify(value))
		return true
	})
	return headers, values
}

// Stringify renders an answer as a cell: lists are joined with ", ", maps
// are JSON encoded and nil is empty.
func Stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []string:
		return strings.Join(value, ", ")
	case []any:
		parts := make([]string, len(value))
		for i, item := range value {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(data)
	default:
		return fmt.Sprint(value)
	}
}
