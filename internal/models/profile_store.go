package models

import (
	"strings"
	"sync"
	"time"
)

// ProfileStore keeps saved profiles in insertion order.
type ProfileStore struct {
	mu    sync.RWMutex
	byID  map[string]*StoredProfile
	order []string
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		byID: make(map[string]*StoredProfile),
	}
}

// Upsert inserts the profile or replaces its note. The original AddedAt
// survives note updates; an empty or identical note is a no-op.
func (s *ProfileStore) Upsert(id, note string, now time.Time) UpsertResult {
	note = strings.TrimSpace(note)

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.byID[id]; ok {
		if note == "" || note == rec.Note {
			return UpsertExists
		}
		rec.Note = note
		return UpsertUpdated
	}

	s.byID[id] = &StoredProfile{ID: id, Note: note, AddedAt: now}
	s.order = append(s.order, id)
	return UpsertAdded
}

func (s *ProfileStore) Get(id string) (StoredProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return StoredProfile{}, false
	}
	return *rec, true
}

func (s *ProfileStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *ProfileStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.order)
	s.byID = make(map[string]*StoredProfile)
	s.order = nil
	return n
}

func (s *ProfileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// All returns copies of all records in insertion order.
func (s *ProfileStore) All() []StoredProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StoredProfile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out
}

// Page returns one page of records plus the clamped page number and the
// page count. Pages are 1-based; out-of-range requests clamp to the
// nearest valid page.
func (s *ProfileStore) Page(page, size int) ([]StoredProfile, int, int) {
	all := s.All()
	return paginate(all, page, size)
}

// PutAll replaces the whole collection, used when loading from disk.
func (s *ProfileStore) PutAll(records []StoredProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[string]*StoredProfile, len(records))
	s.order = s.order[:0]
	for i := range records {
		rec := records[i]
		if rec.ID == "" {
			continue
		}
		if _, ok := s.byID[rec.ID]; ok {
			continue
		}
		s.byID[rec.ID] = &rec
		s.order = append(s.order, rec.ID)
	}
}

func paginate[T any](all []T, page, size int) ([]T, int, int) {
	if size <= 0 {
		size = 10
	}
	pages := (len(all) + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * size
	if start >= len(all) {
		return nil, page, pages
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], page, pages
}
