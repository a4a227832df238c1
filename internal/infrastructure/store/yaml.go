package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RecordFile is the on-disk form of a single record.
type RecordFile struct {
	ID         string         `yaml:"id,omitempty"`
	Attributes map[string]any `yaml:"attributes"`
}

// LoadFile reads a record file and creates the record in the store.
func (s *Store) LoadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read record file: %w", err)
	}

	var file RecordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Record{}, fmt.Errorf("parse record file %s: %w", path, err)
	}

	rec := s.Create(file.ID, file.Attributes)
	s.log.WithFields(map[string]any{"record": rec.ID(), "path": path}).Debug("record loaded")
	return rec, nil
}
