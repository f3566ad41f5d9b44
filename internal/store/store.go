// Package store persists generated schema files under a fixed directory,
// one flat JSON file per integration.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type Store struct {
	dir string
}

// Entry describes one persisted schema file.
type Entry struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Path returns the schema file path for an integration name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// EnsureDir creates the schemas directory. Failure here is a batch-level
// error: nothing can be persisted without it.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("creating schemas directory %s: %w", s.dir, err)
	}
	return nil
}

// Write replaces the integration's schema file in full.
func (s *Store) Write(name string, data []byte) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path(name), data, 0o600); err != nil {
		return fmt.Errorf("writing schema for %s: %w", name, err)
	}
	return nil
}

// List returns all persisted schema files sorted by integration name.
// A missing directory is treated as empty.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading schemas directory %s: %w", s.dir, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(de.Name(), ".json")
		entries = append(entries, Entry{
			Name:    name,
			Path:    s.Path(name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
