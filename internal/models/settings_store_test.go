package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsStore_DefaultsToEnabled(t *testing.T) {
	s := NewSettingsStore()
	assert.True(t, s.Enabled("unknown-guild"))
	assert.Equal(t, 0, s.Len())
}

func TestSettingsStore_Toggle(t *testing.T) {
	s := NewSettingsStore()

	s.Set("g1", false)
	assert.False(t, s.Enabled("g1"))
	assert.True(t, s.Enabled("g2"))

	s.Set("g1", true)
	assert.True(t, s.Enabled("g1"))
	assert.Equal(t, 1, s.Len())
}

func TestSettingsStore_PutAllReplaces(t *testing.T) {
	s := NewSettingsStore()
	s.Set("old", false)

	s.PutAll(map[string]bool{"g1": false, "g2": true})

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Enabled("old"))
	assert.False(t, s.Enabled("g1"))
}
