// Package presetstore persists named bone mappings and rig presets in
// the platform's per-user data directory.
package presetstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/quasilyte/gdata"
	"go.uber.org/zap"

	"github.com/Faultbox/rigforge/pkg/rigmap"
)

const mappingIndexKey = "mapping-index"

// SavedMapping is the on-disk form of a resolved bone mapping.
type SavedMapping struct {
	Name      string                  `json:"name"`
	SavedAt   time.Time               `json:"savedAt"`
	Entries   map[string]rigmap.Entry `json:"entries"`
	Unmatched []string                `json:"unmatched,omitempty"`
}

// Store wraps a gdata manager. All methods are nil-safe: a Store that
// failed to open degrades to a no-op so the rest of the app keeps
// working without persistence.
type Store struct {
	m   *gdata.Manager
	log *zap.Logger
}

// Open creates the store for the given application name. The returned
// error is advisory; the Store is usable (as a no-op) either way.
func Open(appName string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		logger.Warn("persistence unavailable", zap.Error(err))
		return &Store{log: logger}, err
	}
	return &Store{m: m, log: logger}, nil
}

// SaveMapping stores a mapping under the given name, overwriting any
// previous mapping with that name.
func (s *Store) SaveMapping(name string, m *rigmap.Mapping) error {
	if s.m == nil {
		return nil
	}
	saved := SavedMapping{
		Name:      name,
		SavedAt:   time.Now().UTC(),
		Entries:   m.Entries,
		Unmatched: m.UnmatchedCanonical,
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("encoding mapping %q: %w", name, err)
	}
	if err := s.m.SaveItem(mappingKey(name), data); err != nil {
		return fmt.Errorf("saving mapping %q: %w", name, err)
	}
	s.updateIndex(name, true)
	s.log.Info("mapping saved", zap.String("name", name), zap.Int("entries", len(m.Entries)))
	return nil
}

// LoadMapping retrieves a named mapping. Returns (nil, nil) when no
// mapping with that name exists.
func (s *Store) LoadMapping(name string) (*SavedMapping, error) {
	if s.m == nil {
		return nil, nil
	}
	data, err := s.m.LoadItem(mappingKey(name))
	if err != nil {
		return nil, fmt.Errorf("loading mapping %q: %w", name, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var saved SavedMapping
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("decoding mapping %q: %w", name, err)
	}
	return &saved, nil
}

// ClearMapping deletes a named mapping. Clearing a missing name is not
// an error.
func (s *Store) ClearMapping(name string) error {
	if s.m == nil {
		return nil
	}
	if err := s.m.SaveItem(mappingKey(name), nil); err != nil {
		return fmt.Errorf("clearing mapping %q: %w", name, err)
	}
	s.updateIndex(name, false)
	return nil
}

// ListMappings returns the saved mapping names, sorted.
func (s *Store) ListMappings() []string {
	if s.m == nil {
		return nil
	}
	data, err := s.m.LoadItem(mappingIndexKey)
	if err != nil || len(data) == 0 {
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		s.log.Warn("corrupt mapping index", zap.Error(err))
		return nil
	}
	sort.Strings(names)
	return names
}

func (s *Store) updateIndex(name string, present bool) {
	names := s.ListMappings()
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	if present {
		out = append(out, name)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := s.m.SaveItem(mappingIndexKey, data); err != nil {
		s.log.Warn("mapping index update failed", zap.Error(err))
	}
}

func mappingKey(name string) string {
	return "mapping-" + name
}
