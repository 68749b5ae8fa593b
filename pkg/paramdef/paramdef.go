// Package paramdef models the externally supplied field-layout schemas
// (paramdefs) that drive the param table codec, and the provider/cache
// plumbing that resolves a table's internal name to its schema.
package paramdef

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FieldDef describes one field slot in a table schema. Field order within
// a ParamDef is the on-disk decode and encode order.
type FieldDef struct {
	Name         string `yaml:"name"`
	DebugName    string `yaml:"debug_name,omitempty"`
	InternalType string `yaml:"type"`
	// BitSize is 0 for whole-byte fields, else 1-7.
	BitSize int `yaml:"bit_size,omitempty"`
	// Size is the declared byte width, used by dummy8 and fixstr fields.
	Size int `yaml:"size"`
}

// ParamDef is the ordered field layout for one table's internal name.
type ParamDef struct {
	ParamName string     `yaml:"param_name"`
	Fields    []FieldDef `yaml:"fields"`
}

// Field returns the named field definition.
func (d *ParamDef) Field(name string) (FieldDef, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Validate checks the schema's internal consistency.
func (d *ParamDef) Validate() error {
	if d.ParamName == "" {
		return fmt.Errorf("paramdef has no param_name")
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("paramdef %s: field %d has no name", d.ParamName, i)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("paramdef %s: duplicate field %q", d.ParamName, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.BitSize < 0 || f.BitSize > 7 {
			return fmt.Errorf("paramdef %s: field %q bit_size %d out of range [0,7]",
				d.ParamName, f.Name, f.BitSize)
		}
		if f.InternalType == "" {
			return fmt.Errorf("paramdef %s: field %q has no type", d.ParamName, f.Name)
		}
	}
	return nil
}

// NotFoundError reports a table name with no known schema.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no paramdef for table %q", e.Name)
}

// Provider resolves a table's internal name to its schema. Implementations
// must return fields in exact on-disk order.
type Provider interface {
	ParamDef(name string) (*ParamDef, error)
}

// StaticProvider serves schemas from an in-memory map, keyed by table name.
type StaticProvider map[string]*ParamDef

func (p StaticProvider) ParamDef(name string) (*ParamDef, error) {
	def, ok := p[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return def, nil
}

// DirProvider reads one YAML schema file per table name from a directory
// (<dir>/<TABLE_NAME>.yaml).
type DirProvider struct {
	dir string
}

func NewDirProvider(dir string) *DirProvider {
	return &DirProvider{dir: dir}
}

func (p *DirProvider) ParamDef(name string) (*ParamDef, error) {
	path := filepath.Join(p.dir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("read paramdef %s: %w", path, err)
	}
	var def ParamDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse paramdef %s: %w", path, err)
	}
	if def.ParamName == "" {
		def.ParamName = name
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Cache memoizes provider lookups. One cache is constructed by the caller
// and shared by reference into every table parse; there is no process-wide
// schema state.
type Cache struct {
	provider Provider

	mu   sync.Mutex
	defs map[string]*ParamDef
}

func NewCache(p Provider) *Cache {
	return &Cache{
		provider: p,
		defs:     make(map[string]*ParamDef),
	}
}

// Get returns the schema for a table name, loading it through the provider
// on first use.
func (c *Cache) Get(name string) (*ParamDef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if def, ok := c.defs[name]; ok {
		return def, nil
	}
	def, err := c.provider.ParamDef(name)
	if err != nil {
		return nil, err
	}
	c.defs[name] = def
	return def, nil
}
