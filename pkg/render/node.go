package render

import "github.com/goliatone/go-formbuilder/pkg/model"

// NodeKind identifies the control a Node stands for.
type NodeKind string

const (
	NodeHeading    NodeKind = "heading"
	NodeLabel      NodeKind = "label"
	NodeParagraph  NodeKind = "paragraph"
	NodeRule       NodeKind = "rule"
	NodeInput      NodeKind = "input"
	NodeSelect     NodeKind = "select"
	NodeCheckboxes NodeKind = "checkboxes"
	NodeRadios     NodeKind = "radios"
	NodeChips      NodeKind = "chips"
	NodeRow        NodeKind = "row"
	NodeColumn     NodeKind = "column"
	NodeSection    NodeKind = "section"
	NodeUnknown    NodeKind = "unknown"
)

// Choice is one option of a select, radio group, checkbox list or chip set.
type Choice struct {
	Label    string
	Value    string
	Selected bool
}

// Node is the display tree produced by Render. It carries everything a
// concrete renderer needs plus bound interaction methods that report the
// new value through the onChange callback given to Render.
type Node struct {
	Kind      NodeKind
	FieldID   string
	FieldKind model.Kind
	Label     string
	// Text is the shown text of static nodes and the diagnostic of unknown
	// nodes.
	Text string
	// InputType is "text", "number" or "date" for input nodes.
	InputType   string
	Value       string
	Selected    []string
	Choices     []Choice
	Placeholder string
	// Max clamps date inputs to today (YYYY-MM-DD).
	Max string
	// Name groups radio controls.
	Name     string
	Required bool
	Invalid  bool
	Error    string
	// Width is the resolved percentage of a column node; WidthSpec is the
	// descriptor it came from.
	Width     float64
	WidthSpec string
	Children  []Node

	onChange func(any)
}

// Editable reports whether the node accepts Commit.
func (n Node) Editable() bool {
	switch n.Kind {
	case NodeHeading, NodeLabel, NodeParagraph, NodeInput:
		return n.onChange != nil
	default:
		return false
	}
}

// Commit reports a text edit: a static text blur or an input change.
func (n Node) Commit(text string) {
	if n.Editable() {
		n.onChange(text)
	}
}

// Choose selects a single value on select and radio nodes. The empty string
// clears a select.
func (n Node) Choose(value string) {
	if n.onChange == nil {
		return
	}
	switch n.Kind {
	case NodeSelect, NodeRadios:
		n.onChange(value)
	}
}

// Toggle adds value to, or removes it from, the selected set of checkbox and
// chip nodes. onChange receives the whole updated set.
func (n Node) Toggle(value string) {
	if n.onChange == nil {
		return
	}
	switch n.Kind {
	case NodeCheckboxes, NodeChips:
		n.onChange(toggle(n.Selected, value))
	}
}

// SetSelected replaces the selected set of checkbox and chip nodes.
func (n Node) SetSelected(values []string) {
	if n.onChange == nil {
		return
	}
	switch n.Kind {
	case NodeCheckboxes, NodeChips:
		n.onChange(append([]string{}, values...))
	}
}

// Walk visits n and every descendant depth first.
func (n Node) Walk(fn func(Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func toggle(selected []string, value string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, v := range selected {
		if v == value {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, value)
	}
	return out
}
