// Package orchestrator resolves a form (given directly or by template id),
// applies optional transformers and hands it to a named renderer, so callers
// have a single entry point for producing output.
package orchestrator
