package model

import "time"

// SoftDelete marks a stored record as moved to the trash. DeletedAt is Unix
// epoch milliseconds and is zero for live records.
type SoftDelete struct {
	IsDeleted bool  `json:"isDeleted"`
	DeletedAt int64 `json:"deletedAt,omitempty"`
}

// Deleted reports whether the record is in the trash.
func (d SoftDelete) Deleted() bool { return d.IsDeleted }

// MarkDeleted moves the record to the trash at t.
func (d *SoftDelete) MarkDeleted(t time.Time) {
	d.IsDeleted = true
	d.DeletedAt = t.UnixMilli()
}

// Restore takes the record out of the trash.
func (d *SoftDelete) Restore() {
	d.IsDeleted = false
	d.DeletedAt = 0
}

// FormSubmission is a completed builder form stored under `recentForms`.
type FormSubmission struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Timestamp string         `json:"timestamp"`
	Responses *FlatResponses `json:"responses"`
	Fields    FieldList      `json:"fields"`
	SoftDelete
}

// RecordID implements storage records.
func (s FormSubmission) RecordID() string { return s.ID }

// SavedTemplate is a user authored field set stored under `templates`.
type SavedTemplate struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Fields FieldList `json:"fields"`
	SoftDelete
}

func (t SavedTemplate) RecordID() string { return t.ID }

// FieldRef keeps just enough of a field to label an exported answer.
type FieldRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TemplateSubmission is a filled template stored under `submittedTemplates`.
// Responses are keyed by field id and Fields maps ids back to labels.
type TemplateSubmission struct {
	ID          string         `json:"id"`
	TemplateID  string         `json:"templateId,omitempty"`
	Title       string         `json:"title"`
	SubmittedAt string         `json:"submittedAt"`
	Responses   *FlatResponses `json:"responses"`
	Fields      []FieldRef     `json:"fields"`
	SoftDelete
}

func (s TemplateSubmission) RecordID() string { return s.ID }

// Form is an editable titled field tree.
type Form struct {
	ID     string    `json:"id,omitempty"`
	Title  string    `json:"title"`
	Fields FieldList `json:"fields"`
}

// Refs lists id/label pairs for every field in the tree, depth first.
// Labels fall back to ResponseKey.
func Refs(fields []Field) []FieldRef {
	var out []FieldRef
	var walk func([]Field)
	walk = func(list []Field) {
		for _, f := range list {
			if f == nil {
				continue
			}
			out = append(out, FieldRef{ID: f.FieldID(), Label: ResponseKey(f)})
			walk(Children(f))
		}
	}
	walk(fields)
	return out
}

// Timestamp formats t the way records store it (ISO-8601, UTC, millis).
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
