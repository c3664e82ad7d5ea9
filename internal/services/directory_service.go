package services

import (
	"context"
	"fmt"
	"sld/internal/models"
	"sld/internal/persist"
	"sld/internal/providers"
	"sld/internal/steam"
	"sld/internal/structures"
	"time"
)

type ImportReport struct {
	Processed int
	Added     int
	Updated   int
	Exists    int
	Failed    int
	Truncated int
}

func (r ImportReport) String() string {
	s := fmt.Sprintf("Processed %d: %d added, %d updated, %d already saved, %d failed.",
		r.Processed, r.Added, r.Updated, r.Exists, r.Failed)
	if r.Truncated > 0 {
		s += fmt.Sprintf(" %d entries past the import cap were skipped.", r.Truncated)
	}
	return s
}

type DirectoryServiceInterface interface {
	ToggleDetection(guildID string, enabled bool)
	DetectionEnabled(guildID string) bool

	AddProfile(ctx context.Context, raw, note string) (models.StoredProfile, models.UpsertResult, error)
	RemoveProfile(ctx context.Context, raw string) (bool, error)
	ProfilesPage(page int) ([]models.StoredProfile, int, int)
	ClearProfiles() int
	ImportProfiles(ctx context.Context, lines []string) ImportReport

	AddGroup(raw, note string) (models.StoredGroup, models.UpsertResult, bool)
	RemoveGroup(raw string) bool
	GroupsPage(page int) ([]models.StoredGroup, int, int)
	ClearGroups() int
	ImportGroups(lines []string) ImportReport
}

// DirectoryService owns every mutation of the saved-profile and
// saved-group collections. All state is held here and in the stores it
// was constructed with; persistence happens synchronously on each
// mutation and a failed write is logged and swallowed, so memory may run
// ahead of disk. That weak guarantee is deliberate.
type DirectoryService struct {
	profiles    *models.ProfileStore
	groups      *models.GroupStore
	settings    *models.SettingsStore
	resolver    *steam.Resolver
	fileManager *persist.FileManager
	cache       providers.CacheProviderInterface
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	pageSize    int
	importCap   int
}

func NewDirectoryService(conf *structures.Config, profiles *models.ProfileStore, groups *models.GroupStore, settings *models.SettingsStore, resolver *steam.Resolver, fileManager *persist.FileManager, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) DirectoryServiceInterface {
	return &DirectoryService{
		profiles:    profiles,
		groups:      groups,
		settings:    settings,
		resolver:    resolver,
		fileManager: fileManager,
		cache:       cache,
		logger:      logger,
		metrics:     metrics,
		pageSize:    conf.Directory.PageSize,
		importCap:   conf.Import.MaxItems,
	}
}

func (ds *DirectoryService) ToggleDetection(guildID string, enabled bool) {
	ds.settings.Set(guildID, enabled)
	ds.persist("settings", ds.fileManager.SaveSettings)
}

func (ds *DirectoryService) DetectionEnabled(guildID string) bool {
	return ds.settings.Enabled(guildID)
}

func (ds *DirectoryService) AddProfile(ctx context.Context, raw, note string) (models.StoredProfile, models.UpsertResult, error) {
	id, err := ds.resolver.ResolveProfile(ctx, raw)
	if err != nil {
		return models.StoredProfile{}, 0, err
	}

	result := ds.profiles.Upsert(id, note, time.Now())
	ds.metrics.IncStoreOps("profiles", result.String())
	if result != models.UpsertExists {
		ds.persist("profiles", ds.fileManager.SaveProfiles)
	}

	rec, _ := ds.profiles.Get(id)
	return rec, result, nil
}

func (ds *DirectoryService) RemoveProfile(ctx context.Context, raw string) (bool, error) {
	id, err := ds.resolver.ResolveProfile(ctx, raw)
	if err != nil {
		return false, err
	}

	removed := ds.profiles.Remove(id)
	if removed {
		ds.metrics.IncStoreOps("profiles", "removed")
		ds.persist("profiles", ds.fileManager.SaveProfiles)
	}
	return removed, nil
}

func (ds *DirectoryService) ProfilesPage(page int) ([]models.StoredProfile, int, int) {
	return ds.profiles.Page(page, ds.pageSize)
}

func (ds *DirectoryService) ClearProfiles() int {
	n := ds.profiles.Clear()
	ds.metrics.IncStoreOps("profiles", "cleared")
	ds.persist("profiles", ds.fileManager.SaveProfiles)
	return n
}

// ImportProfiles resolves each line independently and never aborts on a
// single failure. Lines past the cap are dropped and reported.
func (ds *DirectoryService) ImportProfiles(ctx context.Context, lines []string) ImportReport {
	var report ImportReport
	lines, report.Truncated = capLines(lines, ds.importCap)

	now := time.Now()
	for _, line := range lines {
		report.Processed++
		id, err := ds.resolver.ResolveProfile(ctx, line)
		if err != nil {
			report.Failed++
			continue
		}
		switch ds.profiles.Upsert(id, "", now) {
		case models.UpsertAdded:
			report.Added++
		case models.UpsertUpdated:
			report.Updated++
		default:
			report.Exists++
		}
	}

	if report.Added > 0 || report.Updated > 0 {
		ds.persist("profiles", ds.fileManager.SaveProfiles)
	}
	ds.recordImport(report)
	return report
}

func (ds *DirectoryService) AddGroup(raw, note string) (models.StoredGroup, models.UpsertResult, bool) {
	ref, ok := steam.ParseGroup(raw)
	if !ok {
		return models.StoredGroup{}, 0, false
	}

	group := models.StoredGroup{Key: ref.Key, URL: ref.URL, GID: ref.GID, Name: ref.Name}
	result := ds.groups.Upsert(group, note, time.Now())
	ds.metrics.IncStoreOps("groups", result.String())
	if result != models.UpsertExists {
		ds.persist("groups", ds.fileManager.SaveGroups)
	}

	rec, _ := ds.groups.Get(ref.Key)
	return rec, result, true
}

// RemoveGroup accepts either a raw group reference or the literal
// composite key.
func (ds *DirectoryService) RemoveGroup(raw string) bool {
	key := raw
	if ref, ok := steam.ParseGroup(raw); ok {
		if _, stored := ds.groups.Get(ref.Key); stored {
			key = ref.Key
		}
	}

	removed := ds.groups.Remove(key)
	if removed {
		ds.metrics.IncStoreOps("groups", "removed")
		ds.persist("groups", ds.fileManager.SaveGroups)
	}
	return removed
}

func (ds *DirectoryService) GroupsPage(page int) ([]models.StoredGroup, int, int) {
	return ds.groups.Page(page, ds.pageSize)
}

func (ds *DirectoryService) ClearGroups() int {
	n := ds.groups.Clear()
	ds.metrics.IncStoreOps("groups", "cleared")
	ds.persist("groups", ds.fileManager.SaveGroups)
	return n
}

func (ds *DirectoryService) ImportGroups(lines []string) ImportReport {
	var report ImportReport
	lines, report.Truncated = capLines(lines, ds.importCap)

	now := time.Now()
	for _, line := range lines {
		report.Processed++
		ref, ok := steam.ParseGroup(line)
		if !ok {
			report.Failed++
			continue
		}
		group := models.StoredGroup{Key: ref.Key, URL: ref.URL, GID: ref.GID, Name: ref.Name}
		switch ds.groups.Upsert(group, "", now) {
		case models.UpsertAdded:
			report.Added++
		case models.UpsertUpdated:
			report.Updated++
		default:
			report.Exists++
		}
	}

	if report.Added > 0 || report.Updated > 0 {
		ds.persist("groups", ds.fileManager.SaveGroups)
	}
	ds.recordImport(report)
	return report
}

func (ds *DirectoryService) persist(collection string, save func() error) {
	if err := save(); err != nil {
		ds.logger.Errorf(providers.TypeStore, "Failed to persist %s: %s", collection, err)
	}
	ds.cache.Del(collection)
}

func (ds *DirectoryService) recordImport(report ImportReport) {
	ds.metrics.IncImportItems("added", report.Added)
	ds.metrics.IncImportItems("updated", report.Updated)
	ds.metrics.IncImportItems("exists", report.Exists)
	ds.metrics.IncImportItems("failed", report.Failed)
	ds.metrics.IncImportItems("truncated", report.Truncated)
}

func capLines(lines []string, limit int) ([]string, int) {
	if limit <= 0 || len(lines) <= limit {
		return lines, 0
	}
	return lines[:limit], len(lines) - limit
}
