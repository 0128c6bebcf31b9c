package formdef

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and parses every JSON/YAML definition file. A file holds
// either a single definition or a list under "forms". Duplicate ids across
// files are rejected.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}
		defs, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if _, exists := store.definitions[def.ID]; exists {
				return fmt.Errorf("formdef: duplicate form %q (file %s)", def.ID, path)
			}
			store.definitions[def.ID] = def
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes the definitions held by one file. JSON is tried first, then
// YAML.
func Parse(data []byte, source string) ([]Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formdef: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("formdef: parse %s: invalid JSON or YAML", source)
		}
	}

	var defs []Definition
	if doc.Forms != nil {
		defs = doc.Forms
	} else {
		defs = []Definition{doc.Definition}
	}

	out := make([]Definition, 0, len(defs))
	for i, def := range defs {
		def.ID = strings.TrimSpace(def.ID)
		if def.ID == "" {
			return nil, fmt.Errorf("formdef: file %s form %d has an empty id", source, i)
		}
		if len(def.Fields) == 0 {
			return nil, fmt.Errorf("formdef: file %s form %q declares no fields", source, def.ID)
		}
		def.Source = source
		out = append(out, def)
	}
	return out, nil
}

type documentFile struct {
	Definition `yaml:",inline"`
	Forms      []Definition `json:"forms" yaml:"forms"`
}

// Definition returns the definition registered under id.
func (s *Store) Definition(id string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.definitions[id]
	return def, ok
}

// IDs returns the sorted definition ids.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.definitions))
	for id := range s.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
