// Package progress tracks and persists playback positions across sessions.
package progress

import (
	"github.com/metafates/gache"
	"github.com/sapphirebluet/Movix/filesystem"
	"github.com/sapphirebluet/Movix/log"
	"github.com/sapphirebluet/Movix/streaming"
	"github.com/sapphirebluet/Movix/where"
)

// MinRecordable is the floor below which positions are not persisted.
// It keeps instant back-outs from polluting the store.
const MinRecordable = 5.0

// Store is a disk-backed registry of last playback positions, keyed by
// content id. An absent or corrupt file reads as empty, never as a failure.
type Store struct {
	cacher *gache.Cache[map[streaming.ContentID]float64]
}

// NewStore opens the per-user progress store.
func NewStore() *Store {
	return &Store{
		cacher: gache.New[map[streaming.ContentID]float64](
			&gache.Options{
				Path:       where.Progress(),
				FileSystem: &filesystem.GacheFs{},
			},
		),
	}
}

// All returns every persisted position record.
func (s *Store) All() map[streaming.ContentID]float64 {
	cached, expired, err := s.cacher.Get()
	if err != nil || expired || cached == nil {
		return make(map[streaming.ContentID]float64)
	}
	return cached
}

// Get returns the persisted position for id, if one was ever recorded.
func (s *Store) Get(id streaming.ContentID) (float64, bool) {
	seconds, ok := s.All()[id]
	return seconds, ok
}

// Set persists the playback position for id. Positions at or below
// MinRecordable never create or overwrite an entry.
func (s *Store) Set(id streaming.ContentID, seconds float64) error {
	if seconds <= MinRecordable {
		return nil
	}

	records := s.All()
	records[id] = seconds

	if err := s.cacher.Set(records); err != nil {
		log.Errorf("persist progress for %d: %v", id, err)
		return err
	}
	return nil
}

// Remove deletes the persisted position for id.
func (s *Store) Remove(id streaming.ContentID) error {
	records := s.All()
	delete(records, id)
	return s.cacher.Set(records)
}
