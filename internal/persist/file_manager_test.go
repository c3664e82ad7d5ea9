package persist

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sld/internal/models"
	"sld/internal/structures"
	"sld/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileManager(t *testing.T) (*FileManager, *models.ProfileStore, *models.GroupStore, *models.SettingsStore, string) {
	t.Helper()
	dir := t.TempDir()
	conf := &structures.Config{}
	conf.Persistence.Dir = dir
	conf.Persistence.Mode = 0644

	profiles := models.NewProfileStore()
	groups := models.NewGroupStore()
	settings := models.NewSettingsStore()
	fm := NewFileManager(conf, profiles, groups, settings, &testutil.MockLogger{}, &testutil.MockMetrics{})
	return fm, profiles, groups, settings, dir
}

func TestFileManager_RoundTrip(t *testing.T) {
	fm, profiles, groups, settings, dir := newTestFileManager(t)

	added := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	profiles.Upsert("76561198000000001", "friend", added)
	profiles.Upsert("76561198000000002", "", added)
	groups.Upsert(models.StoredGroup{
		Key:  "groups:valvesoftware",
		URL:  "https://steamcommunity.com/groups/ValveSoftware",
		Name: "ValveSoftware",
	}, "", added)
	settings.Set("g1", false)

	require.NoError(t, fm.SaveAll())

	// A fresh manager over the same dir sees everything back, in order.
	fm2, profiles2, groups2, settings2, _ := func() (*FileManager, *models.ProfileStore, *models.GroupStore, *models.SettingsStore, string) {
		conf := &structures.Config{}
		conf.Persistence.Dir = dir
		conf.Persistence.Mode = 0644
		p := models.NewProfileStore()
		g := models.NewGroupStore()
		s := models.NewSettingsStore()
		return NewFileManager(conf, p, g, s, &testutil.MockLogger{}, &testutil.MockMetrics{}), p, g, s, dir
	}()

	require.NoError(t, fm2.Restore())
	assert.Equal(t, 2, profiles2.Len())

	all := profiles2.All()
	assert.Equal(t, "76561198000000001", all[0].ID)
	assert.Equal(t, "friend", all[0].Note)
	assert.Equal(t, added, all[0].AddedAt)

	rec, ok := groups2.Get("groups:valvesoftware")
	require.True(t, ok)
	assert.Equal(t, "ValveSoftware", rec.Name)

	assert.False(t, settings2.Enabled("g1"))
	assert.True(t, settings2.Enabled("g2"))
}

func TestFileManager_RestoreMissingFilesStartsEmpty(t *testing.T) {
	fm, profiles, groups, settings, _ := newTestFileManager(t)

	require.NoError(t, fm.Restore())
	assert.Equal(t, 0, profiles.Len())
	assert.Equal(t, 0, groups.Len())
	assert.Equal(t, 0, settings.Len())
}

func TestFileManager_RestoreMalformedStartsEmpty(t *testing.T) {
	fm, profiles, _, _, dir := newTestFileManager(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ProfilesFile), []byte("{not json"), 0644))

	require.NoError(t, fm.Restore())
	assert.Equal(t, 0, profiles.Len())
}

func TestFileManager_RestoreCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	conf := &structures.Config{}
	conf.Persistence.Dir = dir
	conf.Persistence.Mode = 0644
	fm := NewFileManager(conf, models.NewProfileStore(), models.NewGroupStore(), models.NewSettingsStore(), &testutil.MockLogger{}, &testutil.MockMetrics{})

	require.NoError(t, fm.Restore())
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestFileManager_SaveLeavesNoTempFiles(t *testing.T) {
	fm, profiles, _, _, dir := newTestFileManager(t)
	profiles.Upsert("1", "", time.Now())

	require.NoError(t, fm.SaveProfiles())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ProfilesFile, entries[0].Name())
}
