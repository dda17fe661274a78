// Package model defines the form field tree shared by the builder, the
// renderers, the extractor and the persistence layer.
//
// A Field is a closed sum type. Leaf kinds (static text, inputs and choice
// lists) are carried by Input, while RowLayout and Section hold nested fields.
// Unknown preserves payloads whose `type` tag is not recognised so they can be
// surfaced inline by renderers and written back unchanged.
//
// Row widths are stored per column (`columns[].width`). The older parallel
// `layout` array is accepted on decode and folded into the columns.
package model
