// Package history remembers the last value picked from each item source so
// the picker can preselect it next time.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/nicobailon/dropnav/internal/config"
)

const maxEntries = 50

type Entry struct {
	Source     string    `json:"source"`
	Value      string    `json:"value"`
	Label      string    `json:"label,omitempty"`
	LastAccess time.Time `json:"last_access"`
}

type Store struct {
	Entries []Entry `json:"entries"`
	path    string
}

func Load() (*Store, error) {
	return LoadFrom(filepath.Join(config.Dir(), "history.json"))
}

// LoadFrom reads the store at path. A missing or corrupt file yields an
// empty store.
func LoadFrom(path string) (*Store, error) {
	s := &Store{path: path, Entries: []Entry{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return &Store{path: path, Entries: []Entry{}}, nil
	}
	s.path = path
	return s, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Add records value as the latest pick for source.
func (s *Store) Add(source, value, label string) {
	for i, e := range s.Entries {
		if e.Source == source {
			s.Entries[i].Value = value
			s.Entries[i].Label = label
			s.Entries[i].LastAccess = time.Now()
			s.prune()
			return
		}
	}

	s.Entries = append(s.Entries, Entry{
		Source:     source,
		Value:      value,
		Label:      label,
		LastAccess: time.Now(),
	})

	s.prune()
}

func (s *Store) Get(source string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Source == source {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Store) prune() {
	sort.SliceStable(s.Entries, func(i, j int) bool {
		return s.Entries[i].LastAccess.After(s.Entries[j].LastAccess)
	})

	if len(s.Entries) > maxEntries {
		s.Entries = s.Entries[:maxEntries]
	}
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) []Entry {
	out := append([]Entry(nil), s.Entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastAccess.After(out[j].LastAccess)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *Store) Remove(source string) {
	var filtered []Entry
	for _, e := range s.Entries {
		if e.Source != source {
			filtered = append(filtered, e)
		}
	}
	s.Entries = filtered
}
