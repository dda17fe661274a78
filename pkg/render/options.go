package render

import (
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// RenderOptions carry per-request state renderers need beyond the form
// itself.
type RenderOptions struct {
	// Values holds raw answers keyed by field id. Row layouts and sections
	// hold their aggregate maps under their own id.
	Values map[string]any
	// Errors flags ids that failed required-field validation.
	Errors model.Errors
	// ShortForm limits output to fields flagged displayOnShortForm.
	ShortForm bool
	// Now overrides the clock used for the date input maximum.
	Now func() time.Time
	// Theme selects the visual variant and tokens for HTML output.
	Theme *theme.RendererConfig
}

// NodeOptions returns the node options implied by o.
func (o RenderOptions) NodeOptions() []NodeOption {
	if o.Now == nil {
		return nil
	}
	return []NodeOption{WithClock(o.Now)}
}
