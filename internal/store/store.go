// Package store persists user-defined merchant-to-category overrides as a
// YAML file. Overrides always win over the built-in keyword rules.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// mappingsFile is the on-disk shape of the overrides database.
type mappingsFile struct {
	Mappings map[string]string `yaml:"mappings"`
}

// CategoryStore manages loading and saving of merchant category overrides.
// Lookups are case-insensitive on the merchant name.
type CategoryStore struct {
	Path string

	mu       sync.RWMutex
	mappings map[string]string
	loaded   bool
	dirty    bool
}

// NewCategoryStore creates a store backed by the given YAML file. The file
// does not need to exist yet.
func NewCategoryStore(path string) *CategoryStore {
	return &CategoryStore{
		Path:     path,
		mappings: make(map[string]string),
	}
}

// Load reads the overrides file into memory. A missing file is not an
// error: the store just starts empty.
func (s *CategoryStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *CategoryStore) loadLocked() error {
	if s.loaded {
		return nil
	}
	s.loaded = true

	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		log.WithField("file", s.Path).Debug("No category overrides file, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading category overrides %s: %w", s.Path, err)
	}

	var file mappingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("error parsing category overrides %s: %w", s.Path, err)
	}
	for merchant, category := range file.Mappings {
		s.mappings[strings.ToLower(strings.TrimSpace(merchant))] = category
	}
	log.WithField("count", len(s.mappings)).Debug("Loaded category overrides")
	return nil
}

// Lookup returns the override category for a merchant, matching on a
// case-insensitive substring of the transaction description.
func (s *CategoryStore) Lookup(description string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		log.WithError(err).Warn("Failed to load category overrides")
		return "", false
	}

	lower := strings.ToLower(description)
	if category, ok := s.mappings[lower]; ok {
		return category, true
	}
	// Longest merchant key first keeps substring matching deterministic.
	keys := make([]string, 0, len(s.mappings))
	for k := range s.mappings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if strings.Contains(lower, k) {
			return s.mappings[k], true
		}
	}
	return "", false
}

// Set records an override in memory. Save persists it.
func (s *CategoryStore) Set(merchant, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		log.WithError(err).Warn("Failed to load category overrides before update")
	}
	s.mappings[strings.ToLower(strings.TrimSpace(merchant))] = category
	s.dirty = true
}

// Save writes the overrides back to disk when they changed since loading.
func (s *CategoryStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	file := mappingsFile{Mappings: s.mappings}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("error encoding category overrides: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating overrides directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("error writing category overrides %s: %w", s.Path, err)
	}
	s.dirty = false
	log.WithField("count", len(s.mappings)).Info("Saved category overrides")
	return nil
}
