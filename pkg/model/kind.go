package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the discriminator written to the `type` property of a field.
type Kind string

const (
	KindHeader         Kind = "header"
	KindLabel          Kind = "label"
	KindParagraph      Kind = "paragraph"
	KindLineBreak      Kind = "linebreak"
	KindText           Kind = "text"
	KindNumber         Kind = "number"
	KindDate           Kind = "date"
	KindDropdown       Kind = "dropdown"
	KindCheckboxes     Kind = "checkboxes"
	KindMultipleChoice Kind = "multipleChoice"
	KindTags           Kind = "tags"
	KindRowLayout      Kind = "rowLayout"
	KindSection        Kind = "section"
)

var leafKinds = []Kind{
	KindHeader,
	KindLabel,
	KindParagraph,
	KindLineBreak,
	KindText,
	KindNumber,
	KindDate,
	KindDropdown,
	KindCheckboxes,
	KindMultipleChoice,
	KindTags,
}

// Kinds returns every known kind in palette order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(leafKinds)+2)
	out = append(out, leafKinds...)
	return append(out, KindRowLayout, KindSection)
}

// ParseKind resolves a user supplied kind name. Matching ignores case so CLI
// callers can type "multiplechoice".
func ParseKind(raw string) (Kind, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, kind := range Kinds() {
		if strings.EqualFold(string(kind), trimmed) {
			return kind, true
		}
	}
	return "", false
}

// Known reports whether k is one of the recognised kinds.
func (k Kind) Known() bool {
	return k.IsLeaf() || k == KindRowLayout || k == KindSection
}

// IsLeaf reports whether the kind is carried by Input.
func (k Kind) IsLeaf() bool {
	for _, leaf := range leafKinds {
		if leaf == k {
			return true
		}
	}
	return false
}

// IsStatic reports kinds that display text instead of collecting input.
func (k Kind) IsStatic() bool {
	switch k {
	case KindHeader, KindLabel, KindParagraph, KindLineBreak:
		return true
	default:
		return false
	}
}

// HasOptions reports kinds that carry an option list.
func (k Kind) HasOptions() bool {
	switch k {
	case KindDropdown, KindCheckboxes, KindMultipleChoice, KindTags:
		return true
	default:
		return false
	}
}

// MultiValued reports kinds whose value is a set of option values.
func (k Kind) MultiValued() bool {
	return k == KindCheckboxes || k == KindTags
}

// TypeName returns the kind with its first letter upper-cased, e.g.
// "MultipleChoice".
func (k Kind) TypeName() string {
	s := string(k)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// DefaultLabel is the label assigned to a new field of this kind.
func (k Kind) DefaultLabel() string {
	if k == KindSection {
		return "Section Field"
	}
	return k.TypeName() + " Field"
}
