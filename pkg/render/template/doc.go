// Package template defines the template engine seam used by the HTML
// renderer for its page shell. The gotemplate subpackage provides the pongo2
// backed implementation.
package template
