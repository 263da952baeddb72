// Package catalog holds the static registry of frameworks and their variants
// that a project can be scaffolded from. A catalog is built once at startup
// and never mutated; accessors hand out copies.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/frontkit/create-frontend/internal/pkgjson"
	"go.yaml.in/yaml/v3"
)

//go:embed frameworks.yaml
var defaultCatalog []byte

// ErrNotFound is matched by errors.Is for unknown template ids.
var ErrNotFound = errors.New("template not found")

// NotFoundError reports a template id that is not in the catalog.
type NotFoundError struct {
	TemplateID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q not found in catalog", e.TemplateID)
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Variant is a selectable flavour of a framework. Its Name is the template id.
type Variant struct {
	Name    string `yaml:"name"`
	Display string `yaml:"display"`
	Color   string `yaml:"color"`
}

// Label returns the display name, falling back to Name.
func (v Variant) Label() string {
	if v.Display != "" {
		return v.Display
	}
	return v.Name
}

// Framework groups variants sharing one manifest overlay. A framework with
// no variants is a template on its own.
type Framework struct {
	Name     string           `yaml:"name"`
	Display  string           `yaml:"display"`
	Color    string           `yaml:"color"`
	Overlay  pkgjson.Fragment `yaml:"overlay"`
	Variants []Variant        `yaml:"variants"`
}

// Label returns the display name, falling back to Name.
func (f Framework) Label() string {
	if f.Display != "" {
		return f.Display
	}
	return f.Name
}

// TemplateIDs returns the template ids this framework contributes.
func (f Framework) TemplateIDs() []string {
	if len(f.Variants) == 0 {
		return []string{f.Name}
	}
	ids := make([]string, len(f.Variants))
	for i, v := range f.Variants {
		ids[i] = v.Name
	}
	return ids
}

func (f Framework) clone() Framework {
	out := f
	out.Overlay = f.Overlay.Clone()
	out.Variants = append([]Variant(nil), f.Variants...)
	return out
}

// Catalog is an immutable, ordered set of frameworks plus the overlay every
// scaffold receives.
type Catalog struct {
	common     pkgjson.Fragment
	frameworks []Framework
	ids        []string
	owner      map[string]int
}

type document struct {
	Common     pkgjson.Fragment `yaml:"common"`
	Frameworks []Framework      `yaml:"frameworks"`
}

// New builds a catalog. Template ids must be unique across all frameworks and
// every overlay must pass pkgjson validation.
func New(common pkgjson.Fragment, frameworks ...Framework) (*Catalog, error) {
	if len(frameworks) == 0 {
		return nil, fmt.Errorf("catalog has no frameworks")
	}
	if err := common.Validate(); err != nil {
		return nil, fmt.Errorf("common overlay: %w", err)
	}

	c := &Catalog{
		common: common.Clone(),
		owner:  make(map[string]int),
	}
	names := make(map[string]bool)
	for i, f := range frameworks {
		if f.Name == "" {
			return nil, fmt.Errorf("framework #%d has no name", i+1)
		}
		if names[f.Name] {
			return nil, fmt.Errorf("duplicate framework %q", f.Name)
		}
		names[f.Name] = true
		if err := f.Overlay.Validate(); err != nil {
			return nil, fmt.Errorf("framework %q overlay: %w", f.Name, err)
		}
		for _, id := range f.TemplateIDs() {
			if id == "" {
				return nil, fmt.Errorf("framework %q has a variant with no name", f.Name)
			}
			if prev, ok := c.owner[id]; ok {
				return nil, fmt.Errorf("template %q is declared by both %q and %q",
					id, frameworks[prev].Name, f.Name)
			}
			c.owner[id] = i
			c.ids = append(c.ids, id)
		}
		c.frameworks = append(c.frameworks, f.clone())
	}
	return c, nil
}

// Load parses and validates a catalog document.
func Load(data []byte) (*Catalog, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, result.Err()
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(doc.Common, doc.Frameworks...)
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Load(defaultCatalog)
}

// Frameworks returns the frameworks in declaration order. The first one is
// the default interactive choice.
func (c *Catalog) Frameworks() []Framework {
	out := make([]Framework, len(c.frameworks))
	for i, f := range c.frameworks {
		out[i] = f.clone()
	}
	return out
}

// TemplateIDs returns every valid template id in declaration order.
func (c *Catalog) TemplateIDs() []string {
	return append([]string(nil), c.ids...)
}

// Has reports whether id is a template id of this catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.owner[id]
	return ok
}

// Owner returns the framework declaring template id.
func (c *Catalog) Owner(id string) (Framework, error) {
	i, ok := c.owner[id]
	if !ok {
		return Framework{}, &NotFoundError{TemplateID: id}
	}
	return c.frameworks[i].clone(), nil
}

// ResolveOverlay returns the manifest overlay of the framework owning id.
// Variants share their framework's overlay. A framework that declares none
// yields an empty fragment.
func (c *Catalog) ResolveOverlay(id string) (pkgjson.Fragment, error) {
	f, err := c.Owner(id)
	if err != nil {
		return pkgjson.Fragment{}, err
	}
	return f.Overlay, nil
}

// Common returns the overlay applied to every scaffold before the
// framework's own overlay.
func (c *Catalog) Common() pkgjson.Fragment {
	return c.common.Clone()
}
