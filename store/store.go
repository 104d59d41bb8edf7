// Package store persists learned tables so runs can be resumed or served. A
// table is anything that round-trips through JSON, which covers the value,
// action-value and policy tables.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Store saves and loads named tables
type Store interface {
	Save(ctx context.Context, name string, table json.Marshaler) error
	Load(ctx context.Context, name string, table json.Unmarshaler) error
	// List returns the saved table names in sorted order
	List(ctx context.Context) ([]string, error)
}

// FileStore keeps one <name>.json file per table under a directory
type FileStore struct {
	dir string
}

var _ Store = &FileStore{}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir is the directory the store writes under
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

func (f *FileStore) Save(_ context.Context, name string, table json.Marshaler) error {
	bs, err := table.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling table %s: %w", name, err)
	}
	return os.WriteFile(f.path(name), bs, 0644)
}

func (f *FileStore) Load(_ context.Context, name string, table json.Unmarshaler) error {
	bs, err := os.ReadFile(f.path(name))
	if err != nil {
		return fmt.Errorf("reading table %s: %w", name, err)
	}
	return table.UnmarshalJSON(bs)
}

func (f *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name()[:len(e.Name())-len(".json")])
	}
	sort.Strings(names)
	return names, nil
}

// Raw returns the serialized bytes of a saved table without decoding them
func (f *FileStore) Raw(name string) ([]byte, error) {
	return os.ReadFile(f.path(name))
}
