package archive

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// Pebble is an Archive storing blobs in a pebble database, keyed by entry
// name. Useful when many extracted tables are edited repeatedly without a
// directory of loose files.
type Pebble struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) a pebble-backed archive at path.
func OpenPebble(path string) (*Pebble, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble archive %s: %w", path, err)
	}
	return &Pebble{db: db}, nil
}

func (p *Pebble) List() ([]string, error) {
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var names []string
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, string(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *Pebble) Read(name string) ([]byte, error) {
	data, closer, err := p.db.Get([]byte(name))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (p *Pebble) Write(name string, data []byte) error {
	return p.db.Set([]byte(name), data, pebble.Sync)
}

func (p *Pebble) Close() error {
	return p.db.Close()
}
