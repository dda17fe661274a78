// Package catalog resolves template ids to field lists: the read-only
// built-in templates first, then templates saved by the user.
package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

//go:embed builtin/*.yaml
var embeddedBuiltins embed.FS

// ErrNotFound is returned by Lookup for ids that are neither built in nor
// saved.
var ErrNotFound = errors.New("catalog: template not found")

// Template is a titled field list.
type Template struct {
	ID      string
	Title   string
	Fields  []model.Field
	Builtin bool
}

type templateFile struct {
	ID     string      `yaml:"id"`
	Title  string      `yaml:"title"`
	Fields []fieldFile `yaml:"fields"`
}

type fieldFile struct {
	Type               string   `yaml:"type"`
	ID                 string   `yaml:"id"`
	Label              string   `yaml:"label"`
	Required           bool     `yaml:"required"`
	DisplayOnShortForm bool     `yaml:"displayOnShortForm"`
	Options            []string `yaml:"options"`
}

// BuiltinFS returns the bundled template definitions.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(embeddedBuiltins, "builtin")
	if err != nil {
		panic(err)
	}
	return sub
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used when reading saved templates.
func WithLogger(log logging.Logger) Option {
	return func(c *Catalog) {
		if log != nil {
			c.log = log
		}
	}
}

// WithBuiltins replaces the bundled definitions with the YAML files of fsys.
func WithBuiltins(fsys fs.FS) Option {
	return func(c *Catalog) {
		if fsys != nil {
			c.source = fsys
		}
	}
}

// Catalog looks templates up by id. The store may be nil, in which case
// only built-ins resolve.
type Catalog struct {
	store    storage.Store
	source   fs.FS
	log      logging.Logger
	builtins map[string]Template
	ids      []string
}

// New loads the built-in templates.
func New(store storage.Store, opts ...Option) (*Catalog, error) {
	c := &Catalog{store: store, source: BuiltinFS(), log: logging.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	templates, err := Load(c.source)
	if err != nil {
		return nil, err
	}
	c.builtins = make(map[string]Template, len(templates))
	for _, tpl := range templates {
		c.builtins[tpl.ID] = tpl
		c.ids = append(c.ids, tpl.ID)
	}
	sort.Strings(c.ids)
	return c, nil
}

// MustNew is New for init-time wiring.
func MustNew(store storage.Store, opts ...Option) *Catalog {
	c, err := New(store, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// IDs lists the built-in template ids sorted.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.ids...)
}

// Lookup returns the built-in template with id, or else the saved template
// with id whatever its deletion state.
func (c *Catalog) Lookup(ctx context.Context, id string) (Template, error) {
	if tpl, ok := c.builtins[id]; ok {
		tpl.Fields = model.CloneFields(tpl.Fields)
		return tpl, nil
	}
	if c.store != nil {
		saved, err := storage.Templates(c.store, storage.WithLogger(c.log)).Get(ctx, id)
		if err == nil {
			return Template{ID: saved.ID, Title: saved.Title, Fields: model.CloneFields(saved.Fields)}, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return Template{}, err
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Fields returns the fields of template id, or an empty list when the id
// is unknown.
func (c *Catalog) Fields(ctx context.Context, id string) []model.Field {
	tpl, err := c.Lookup(ctx, id)
	if err != nil {
		return []model.Field{}
	}
	return tpl.Fields
}

// ToOptions turns option labels into options whose value is the label in
// lower case with whitespace runs replaced by underscores.
func ToOptions(labels ...string) []model.Option {
	return model.OptionsFromLabels(labels...)
}

// Load decodes every .yaml file of fsys into a template.
func Load(fsys fs.FS) ([]Template, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("catalog: read templates: %w", err)
	}

	var out []Template
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || !isTemplateFile(entry.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", entry.Name(), err)
		}
		tpl, err := parseTemplate(data, entry.Name())
		if err != nil {
			return nil, err
		}
		if _, dup := seen[tpl.ID]; dup {
			return nil, fmt.Errorf("catalog: %s redefines template %q", entry.Name(), tpl.ID)
		}
		seen[tpl.ID] = struct{}{}
		out = append(out, tpl)
	}
	return out, nil
}

func parseTemplate(data []byte, source string) (Template, error) {
	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Template{}, fmt.Errorf("catalog: parse %s: %w", source, err)
	}

	id := strings.TrimSpace(file.ID)
	if id == "" {
		id = strings.TrimSuffix(source, path.Ext(source))
	}

	tpl := Template{ID: id, Title: file.Title, Builtin: true}
	for i, f := range file.Fields {
		kind := model.Kind(f.Type)
		if !kind.IsLeaf() {
			return Template{}, fmt.Errorf("catalog: %s field %d: unsupported type %q", source, i, f.Type)
		}
		if strings.TrimSpace(f.ID) == "" {
			return Template{}, fmt.Errorf("catalog: %s field %d: id is required", source, i)
		}
		input := model.Input{
			Base: model.Base{
				ID:                 f.ID,
				Label:              f.Label,
				Required:           f.Required,
				DisplayOnShortForm: f.DisplayOnShortForm,
			},
			Kind: kind,
		}
		if len(f.Options) > 0 {
			input.Options = ToOptions(f.Options...)
		}
		tpl.Fields = append(tpl.Fields, input)
	}
	return tpl, nil
}

func isTemplateFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
