package persist

import (
	"os"
	"path/filepath"
	"sld/internal/persist/interfaces"
	"sld/internal/providers"
	"sld/internal/structures"
	"strings"
	"time"
)

// Backup writes zstd-compressed snapshots of the directory files and
// prunes snapshots past their TTL. Snapshots are named
// <collection>-<UTC timestamp>.json.zst.
type Backup struct {
	enabled    bool
	dir        string
	dataDir    string
	ttl        time.Duration
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewBackup(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *Backup {
	return &Backup{
		enabled:    conf.Backup.Enabled,
		dir:        conf.Backup.Dir,
		dataDir:    conf.Persistence.Dir,
		ttl:        conf.Backup.TTL,
		compressor: compressor,
		logger:     logger,
	}
}

func (b *Backup) Enabled() bool {
	return b.enabled
}

// Snapshot copies every present collection file into the backup dir and
// then prunes. Individual file failures are logged and skipped so one
// unreadable collection does not block the others.
func (b *Backup) Snapshot() error {
	if !b.enabled {
		return nil
	}
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return err
	}

	now := time.Now()
	for _, name := range []string{ProfilesFile, GroupsFile, SettingsFile} {
		data, err := os.ReadFile(filepath.Join(b.dataDir, name))
		if err != nil {
			if !os.IsNotExist(err) {
				b.logger.Warnf(providers.TypeStore, "Backup skipped %s: %s", name, err)
			}
			continue
		}

		compressed, err := b.compressor.Compress(data)
		if err != nil {
			b.logger.Errorf(providers.TypeStore, "Backup compression failed for %s: %s", name, err)
			continue
		}

		target := b.snapshotPath(name, now)
		if err := os.WriteFile(target, compressed, 0644); err != nil {
			b.logger.Errorf(providers.TypeStore, "Backup write failed for %s: %s", name, err)
			continue
		}
	}

	return b.prune(now)
}

// prune removes snapshots whose modification time is older than the TTL.
func (b *Backup) prune(now time.Time) error {
	if b.ttl <= 0 {
		return nil
	}

	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json.zst") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > b.ttl {
			_ = os.Remove(filepath.Join(b.dir, entry.Name()))
		}
	}
	return nil
}

func (b *Backup) snapshotPath(name string, now time.Time) string {
	base := strings.TrimSuffix(name, ".json")
	return filepath.Join(b.dir, base+"-"+now.UTC().Format("20060102T150405")+".json.zst")
}

func (b *Backup) Close() {
	b.compressor.Close()
}
