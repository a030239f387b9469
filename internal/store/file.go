package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrykeightley/wordcrossing-generator/internal/level"
)

// FileStore writes one artifact per level into a directory, named
// <level name>.<format>.
type FileStore struct {
	dir    string
	format string
}

// NewFileStore creates the directory if needed. Format is "json" or "yaml".
func NewFileStore(dir, format string) (*FileStore, error) {
	switch format {
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown artifact format %q", format)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &FileStore{dir: dir, format: format}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+"."+s.format)
}

// Save writes the level artifact, replacing any previous one.
func (s *FileStore) Save(lvl *level.Level) error {
	var data []byte
	var err error
	if s.format == "yaml" {
		data, err = yaml.Marshal(lvl)
	} else {
		data, err = json.MarshalIndent(lvl, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode level %s: %w", lvl.Name, err)
	}
	if err := os.WriteFile(s.path(lvl.Name), data, 0644); err != nil {
		return fmt.Errorf("write level %s: %w", lvl.Name, err)
	}
	return nil
}

// Load reads a level artifact by name.
func (s *FileStore) Load(name string) (*level.Level, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}
	var lvl level.Level
	if s.format == "yaml" {
		err = yaml.Unmarshal(data, &lvl)
	} else {
		err = json.Unmarshal(data, &lvl)
	}
	if err != nil {
		return nil, fmt.Errorf("decode level %s: %w", name, err)
	}
	return &lvl, nil
}

// List returns the stored level names in sorted order.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	suffix := "." + s.format
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), suffix))
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op for file storage.
func (s *FileStore) Close() error { return nil }
