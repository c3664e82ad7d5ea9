package models

import "sync"

// SettingsStore keeps the per-guild automatic-detection toggle.
// A guild with no explicit entry counts as enabled.
type SettingsStore struct {
	mu      sync.RWMutex
	byGuild map[string]bool
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		byGuild: make(map[string]bool),
	}
}

func (s *SettingsStore) Enabled(guildID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enabled, ok := s.byGuild[guildID]
	if !ok {
		return true
	}
	return enabled
}

func (s *SettingsStore) Set(guildID string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byGuild[guildID] = enabled
}

func (s *SettingsStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byGuild)
}

func (s *SettingsStore) All() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.byGuild))
	for k, v := range s.byGuild {
		out[k] = v
	}
	return out
}

func (s *SettingsStore) PutAll(settings map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byGuild = make(map[string]bool, len(settings))
	for k, v := range settings {
		s.byGuild[k] = v
	}
}
