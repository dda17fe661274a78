package formbuilder

import (
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/catalog"
	vanilla "github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// BuiltinTemplates exposes the YAML definitions of the built-in form
// templates.
func BuiltinTemplates() fs.FS {
	return catalog.BuiltinFS()
}
