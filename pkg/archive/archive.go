// Package archive supplies raw param table blobs and accepts packed blobs
// back. The codec itself never opens files; callers hand it bytes obtained
// through an Archive.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when an archive has no blob under the requested
// name.
var ErrNotFound = errors.New("archive: entry not found")

// Archive is a named blob source/sink.
type Archive interface {
	// List returns all blob names, sorted.
	List() ([]string, error)
	// Read returns the blob stored under name.
	Read(name string) ([]byte, error)
	// Write stores a blob under name, replacing any existing one.
	Write(name string, data []byte) error
	Close() error
}

// Dir is an Archive over a directory of .param files, one blob per file.
type Dir struct {
	root string
}

// OpenDir opens a directory archive.
func OpenDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open archive dir %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open archive dir %s: not a directory", root)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("list archive dir %s: %w", d.root, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".param") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (d *Dir) path(name string) (string, error) {
	if name != filepath.Base(name) {
		return "", fmt.Errorf("archive: invalid entry name %q", name)
	}
	return filepath.Join(d.root, name), nil
}

func (d *Dir) Read(name string) ([]byte, error) {
	path, err := d.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	return data, nil
}

func (d *Dir) Write(name string, data []byte) error {
	path, err := d.path(name)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (d *Dir) Close() error {
	return nil
}
