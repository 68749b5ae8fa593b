// Package bank loads every param table an archive holds through one shared
// schema cache, and writes packed tables back. It is the aggregation layer
// over the core codec: one bank per archive, tables keyed by their archive
// entry name.
package bank

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ashenlab/paramforge/pkg/archive"
	"github.com/ashenlab/paramforge/pkg/enums"
	"github.com/ashenlab/paramforge/pkg/param"
	"github.com/ashenlab/paramforge/pkg/paramdef"
)

// Bank is a set of parsed tables backed by one archive.
type Bank struct {
	archive archive.Archive
	defs    *paramdef.Cache
	reg     *enums.Registry
	log     *logrus.Logger

	tables map[string]*param.Table
}

// New builds a bank over an archive. The schema cache and registry are
// shared by reference; log may be nil for silent operation.
func New(a archive.Archive, defs *paramdef.Cache, reg *enums.Registry, log *logrus.Logger) *Bank {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &Bank{
		archive: a,
		defs:    defs,
		reg:     reg,
		log:     log,
		tables:  make(map[string]*param.Table),
	}
}

// Load parses every blob the archive lists. A table that fails to parse
// fails the whole load; param blobs do not partially recover.
func (b *Bank) Load() error {
	names, err := b.archive.List()
	if err != nil {
		return fmt.Errorf("bank: list archive: %w", err)
	}
	for _, name := range names {
		data, err := b.archive.Read(name)
		if err != nil {
			return fmt.Errorf("bank: read %s: %w", name, err)
		}
		t, err := param.Parse(data, b.defs, b.reg)
		if err != nil {
			return fmt.Errorf("bank: parse %s: %w", name, err)
		}
		b.tables[name] = t
		b.log.WithFields(logrus.Fields{
			"entry":   name,
			"param":   t.Name,
			"entries": t.Len(),
		}).Debug("loaded param table")
	}
	b.log.WithField("tables", len(b.tables)).Info("param bank loaded")
	return nil
}

// Save packs every table and writes it back under its archive entry name.
func (b *Bank) Save() error {
	for _, name := range b.Names() {
		t := b.tables[name]
		data, err := t.Pack()
		if err != nil {
			return fmt.Errorf("bank: pack %s: %w", name, err)
		}
		if err := b.archive.Write(name, data); err != nil {
			return fmt.Errorf("bank: write %s: %w", name, err)
		}
		b.log.WithFields(logrus.Fields{"entry": name, "bytes": len(data)}).Debug("saved param table")
	}
	return nil
}

// Table returns the table stored under an archive entry name.
func (b *Bank) Table(name string) (*param.Table, bool) {
	t, ok := b.tables[name]
	return t, ok
}

// Find returns the first table whose internal param name matches.
func (b *Bank) Find(paramName string) (*param.Table, bool) {
	for _, name := range b.Names() {
		if b.tables[name].Name == paramName {
			return b.tables[name], true
		}
	}
	return nil, false
}

// Names returns the loaded archive entry names, sorted.
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.tables))
	for name := range b.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of loaded tables.
func (b *Bank) Len() int {
	return len(b.tables)
}
