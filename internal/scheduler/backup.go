package scheduler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/flare/internal/services"
)

const (
	backupFilePrefix    = "flare-export-"
	backupFilePattern   = backupFilePrefix + "*." + services.ExportFormatJSON
	backupTimestampForm = "20060102T150405Z"
)

var ErrSchedulerRunning = errors.New("backup scheduler already running")

type Exporter interface {
	Export() services.ExportDocument
}

// BackupScheduler periodically writes the export document into a directory
// and keeps only the newest files.
type BackupScheduler struct {
	mu         sync.Mutex
	cronEngine *cron.Cron
	exporter   Exporter
	logger     *logrus.Logger
	dir        string
	spec       string
	keep       int
	running    bool
}

func NewBackupScheduler(exporter Exporter, dir string, spec string, keep int, location *time.Location, logger *logrus.Logger) *BackupScheduler {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if keep < 1 {
		keep = 1
	}
	return &BackupScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		exporter:   exporter,
		logger:     logger,
		dir:        dir,
		spec:       spec,
		keep:       keep,
	}
}

func (s *BackupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrSchedulerRunning
	}
	if _, err := s.cronEngine.AddFunc(s.spec, s.runJob); err != nil {
		return fmt.Errorf("add backup job %q: %w", s.spec, err)
	}
	s.cronEngine.Start()
	s.running = true
	s.logger.WithFields(logrus.Fields{
		"dir":      s.dir,
		"schedule": s.spec,
		"keep":     s.keep,
	}).Info("backup scheduler started")
	return nil
}

// Stop waits for a running backup to finish.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("backup scheduler stopped")
}

// RunOnce writes one backup file and prunes old ones. It returns the path
// written.
func (s *BackupScheduler) RunOnce() (string, error) {
	document := s.exporter.Export()
	payload, err := services.EncodeExport(document, services.ExportFormatJSON)
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(s.dir, backupFileName(document.ExportDate))
	if err := writeFileAtomic(path, payload); err != nil {
		return "", err
	}

	removed, err := pruneBackups(s.dir, s.keep)
	if err != nil {
		return path, err
	}
	for _, name := range removed {
		s.logger.WithField("file", name).Debug("old backup removed")
	}
	return path, nil
}

func (s *BackupScheduler) runJob() {
	path, err := s.RunOnce()
	if err != nil {
		s.logger.WithError(err).Error("scheduled backup failed")
		return
	}
	s.logger.WithField("file", path).Info("scheduled backup written")
}

func writeFileAtomic(path string, payload []byte) error {
	temp, err := os.CreateTemp(filepath.Dir(path), ".flare-backup-*")
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	tempPath := temp.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, err := temp.Write(payload); err != nil {
		_ = temp.Close()
		return fmt.Errorf("write backup file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("close backup file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("move backup file: %w", err)
	}
	return nil
}

// backupFileName stamps the export instant in UTC down to the second so
// several runs on one day each keep their own file.
func backupFileName(exportedAt time.Time) string {
	return backupFilePrefix + exportedAt.UTC().Format(backupTimestampForm) + "." + services.ExportFormatJSON
}

// pruneBackups deletes export files beyond the newest keep. File names carry
// the export instant, so name order is age order.
func pruneBackups(dir string, keep int) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, backupFilePattern))
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	if len(matches) <= keep {
		return nil, nil
	}

	removed := make([]string, 0, len(matches)-keep)
	for _, path := range matches[keep:] {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove old backup: %w", err)
		}
		removed = append(removed, strings.TrimPrefix(path, dir+string(filepath.Separator)))
	}
	return removed, nil
}
