package persist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sld/internal/structures"
	"sld/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackup(t *testing.T, ttl time.Duration) (*Backup, string, string) {
	t.Helper()
	dataDir := t.TempDir()
	backupDir := t.TempDir()

	conf := &structures.Config{}
	conf.Backup.Enabled = true
	conf.Backup.Dir = backupDir
	conf.Backup.TTL = ttl
	conf.Persistence.Dir = dataDir

	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(compressor.Close)

	return NewBackup(conf, compressor, &testutil.MockLogger{}), dataDir, backupDir
}

func TestBackup_SnapshotCompressesPresentFiles(t *testing.T) {
	b, dataDir, backupDir := newTestBackup(t, time.Hour)

	payload := []byte(`[{"id":"76561198000000001"}]`)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, ProfilesFile), payload, 0644))

	require.NoError(t, b.Snapshot())

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only present collections get a snapshot")
	assert.True(t, strings.HasPrefix(entries[0].Name(), "profiles-"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json.zst"))

	compressed, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	require.NoError(t, err)

	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	defer compressor.Close()
	restored, err := compressor.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestBackup_SnapshotDisabledIsNoop(t *testing.T) {
	b, dataDir, backupDir := newTestBackup(t, time.Hour)
	b.enabled = false

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, ProfilesFile), []byte("[]"), 0644))
	require.NoError(t, b.Snapshot())

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBackup_PruneRemovesExpiredSnapshots(t *testing.T) {
	b, _, backupDir := newTestBackup(t, time.Hour)

	stale := filepath.Join(backupDir, "profiles-20240101T000000.json.zst")
	fresh := filepath.Join(backupDir, "groups-20240101T000000.json.zst")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0644))

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	require.NoError(t, b.prune(time.Now()))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestBackup_PruneIgnoresForeignFiles(t *testing.T) {
	b, _, backupDir := newTestBackup(t, time.Hour)

	foreign := filepath.Join(backupDir, "notes.txt")
	require.NoError(t, os.WriteFile(foreign, []byte("keep"), 0644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(foreign, old, old))

	require.NoError(t, b.prune(time.Now()))

	_, err := os.Stat(foreign)
	assert.NoError(t, err)
}

func TestZstdCompression_RoundTrip(t *testing.T) {
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	defer compressor.Close()

	in := []byte(strings.Repeat("steamcommunity ", 200))
	compressed, err := compressor.Compress(in)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(in))

	out, err := compressor.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
