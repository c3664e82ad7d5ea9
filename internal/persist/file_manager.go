package persist

import (
	"os"
	"path/filepath"
	"sld/internal/models"
	"sld/internal/providers"
	"sld/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

const (
	ProfilesFile = "profiles.json"
	GroupsFile   = "groups.json"
	SettingsFile = "settings.json"
)

// FileManager persists each collection as one plain JSON document in the
// data directory. A missing or malformed file loads as an empty
// collection, never as an error.
type FileManager struct {
	dir      string
	mode     os.FileMode
	profiles *models.ProfileStore
	groups   *models.GroupStore
	settings *models.SettingsStore
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewFileManager(conf *structures.Config, profiles *models.ProfileStore, groups *models.GroupStore, settings *models.SettingsStore, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileManager {
	return &FileManager{
		dir:      conf.Persistence.Dir,
		mode:     os.FileMode(conf.Persistence.Mode),
		profiles: profiles,
		groups:   groups,
		settings: settings,
		logger:   logger,
		metrics:  metrics,
	}
}

func (f *FileManager) SaveProfiles() error {
	return f.save(ProfilesFile, f.profiles.All())
}

func (f *FileManager) SaveGroups() error {
	return f.save(GroupsFile, f.groups.All())
}

func (f *FileManager) SaveSettings() error {
	return f.save(SettingsFile, f.settings.All())
}

func (f *FileManager) SaveAll() error {
	var firstErr error
	for _, fn := range []func() error{f.SaveProfiles, f.SaveGroups, f.SaveSettings} {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Restore loads all three collections. Only a directory that cannot be
// created is fatal; unreadable content starts empty.
func (f *FileManager) Restore() error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return err
	}

	var profiles []models.StoredProfile
	if f.load(ProfilesFile, &profiles) {
		f.profiles.PutAll(profiles)
	}

	var groups []models.StoredGroup
	if f.load(GroupsFile, &groups) {
		f.groups.PutAll(groups)
	}

	var settings map[string]bool
	if f.load(SettingsFile, &settings) {
		f.settings.PutAll(settings)
	}

	return nil
}

func (f *FileManager) save(name string, v any) error {
	start := time.Now()

	jsonData, err := json.Marshal(v)
	if err != nil {
		return err
	}

	fileName := filepath.Join(f.dir, name)
	tmpFile := fileName + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.mode)
	if err != nil {
		return err
	}

	_, err = file.Write(jsonData)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return err
	}

	f.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func (f *FileManager) load(name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warnf(providers.TypeStore, "Failed to read %s: %s", name, err)
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		f.logger.Warnf(providers.TypeStore, "Malformed %s, starting empty: %s", name, err)
		return false
	}
	return true
}
