package models

import (
	"strings"
	"sync"
	"time"
)

// GroupStore keeps saved groups in insertion order, keyed by the
// canonical group key.
type GroupStore struct {
	mu    sync.RWMutex
	byKey map[string]*StoredGroup
	order []string
}

func NewGroupStore() *GroupStore {
	return &GroupStore{
		byKey: make(map[string]*StoredGroup),
	}
}

// Upsert inserts the group or replaces the note of an existing one. The
// first-seen URL, GID, name and AddedAt are preserved on updates.
func (s *GroupStore) Upsert(group StoredGroup, note string, now time.Time) UpsertResult {
	note = strings.TrimSpace(note)

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.byKey[group.Key]; ok {
		if note == "" || note == rec.Note {
			return UpsertExists
		}
		rec.Note = note
		return UpsertUpdated
	}

	rec := group
	rec.Note = note
	rec.AddedAt = now
	s.byKey[group.Key] = &rec
	s.order = append(s.order, group.Key)
	return UpsertAdded
}

func (s *GroupStore) Get(key string) (StoredGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byKey[key]
	if !ok {
		return StoredGroup{}, false
	}
	return *rec, true
}

func (s *GroupStore) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byKey[key]; !ok {
		return false
	}
	delete(s.byKey, key)
	for i, v := range s.order {
		if v == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *GroupStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.order)
	s.byKey = make(map[string]*StoredGroup)
	s.order = nil
	return n
}

func (s *GroupStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *GroupStore) All() []StoredGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StoredGroup, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, *s.byKey[key])
	}
	return out
}

func (s *GroupStore) Page(page, size int) ([]StoredGroup, int, int) {
	all := s.All()
	return paginate(all, page, size)
}

func (s *GroupStore) PutAll(records []StoredGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKey = make(map[string]*StoredGroup, len(records))
	s.order = s.order[:0]
	for i := range records {
		rec := records[i]
		if rec.Key == "" {
			continue
		}
		if _, ok := s.byKey[rec.Key]; ok {
			continue
		}
		s.byKey[rec.Key] = &rec
		s.order = append(s.order, rec.Key)
	}
}
