package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Renderer writes the HTML control for a display node into buf.
type Renderer func(buf *bytes.Buffer, node render.Node, data ComponentData) error

// ComponentData carries helpers shared by component renderers.
type ComponentData struct {
	// RenderChild renders a nested node (row columns, section rows).
	RenderChild func(node render.Node) (string, error)
	// RichText cleans user-authored paragraph markup. Nil escapes it.
	RichText func(string) string
}

// Descriptor bundles a renderer with the stylesheets it depends on.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
}

// Registry maps node kinds to component descriptors. Callers can override
// built-in components by registering the same kind again.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// Clone returns a copy that can be changed without affecting r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates a descriptor with a node kind. Existing entries are
// replaced.
func (r *Registry) Register(kind render.NodeKind, descriptor Descriptor) error {
	name := normalize(string(kind))
	if name == "" {
		return fmt.Errorf("components: node kind is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(kind render.NodeKind, descriptor Descriptor) {
	if err := r.Register(kind, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches the descriptor for a node kind.
func (r *Registry) Descriptor(kind render.NodeKind) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(string(kind))]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Names returns the registered kinds sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Stylesheets returns the unique stylesheets used by the given kinds in
// first-seen order.
func (r *Registry) Stylesheets(kinds []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, kind := range kinds {
		descriptor, ok := r.components[normalize(kind)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href == "" {
				continue
			}
			if _, dup := seen[href]; dup {
				continue
			}
			seen[href] = struct{}{}
			out = append(out, href)
		}
	}
	return out
}

func cloneDescriptor(d Descriptor) Descriptor {
	d.Stylesheets = append([]string(nil), d.Stylesheets...)
	return d
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
