package persist

import (
	"sld/internal/persist/interfaces"
	"sld/internal/providers"
	"sld/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
)

// Scheduler owns startup restore, the periodic backup job, and the final
// flush on shutdown. Directory mutations persist synchronously on their
// own; the scheduler only adds the backup cadence on top.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	fileManager *FileManager
	backup      *Backup
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	if s.backup.Enabled() {
		s.cron.AddFunc(gron.Every(s.config.Backup.Interval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			if err := s.backup.Snapshot(); err != nil {
				s.logger.Errorf(providers.TypeStore, "Backup snapshot failed: %s", err)
				return
			}
			s.logger.Infof(providers.TypeStore, "Backup snapshot written to %s", s.config.Backup.Dir)
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.Restore()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStore, "Flushing directory files...")
	if err := s.fileManager.SaveAll(); err != nil {
		s.logger.Errorf(providers.TypeStore, "Error while persisting data: %s", err)
		return err
	}
	if err := s.backup.Snapshot(); err != nil {
		s.logger.Errorf(providers.TypeStore, "Final backup snapshot failed: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, fileManager *FileManager, backup *Backup) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		fileManager: fileManager,
		backup:      backup,
	}
}
