// Package tree edits field trees without mutating them. Every operation
// returns a new slice; branches that were not touched are shared with the
// input.
package tree
