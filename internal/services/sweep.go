package services

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cloudpaste/cloudpaste/internal/models"
)

// Sweeper periodically deletes expired and view-exhausted shares from both
// namespaces. It runs on a dedicated ticker; the persisted last-sweep
// marker keeps restarts within the interval from re-running early.
type Sweeper struct {
	db       *gorm.DB
	pastes   *PasteService
	files    *FileService
	interval time.Duration
	log      zerolog.Logger
}

// NewSweeper creates a sweeper over both share services.
func NewSweeper(db *gorm.DB, pastes *PasteService, files *FileService, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{db: db, pastes: pastes, files: files, interval: interval, log: log}
}

// Start launches the background sweep loop. It returns immediately; the
// loop stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		s.sweepIfDue()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweepIfDue()
			}
		}
	}()
}

func (s *Sweeper) sweepIfDue() {
	due, err := s.Due(nowUTC())
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read last sweep marker")
		return
	}
	if !due {
		return
	}
	deleted, err := s.Run()
	if err != nil {
		s.log.Error().Err(err).Msg("sweep failed")
		return
	}
	s.log.Info().Int("deleted", deleted).Msg("sweep completed")
}

// Due reports whether at least one interval has passed since the persisted
// last-sweep marker.
func (s *Sweeper) Due(now time.Time) (bool, error) {
	raw, err := getSetting(s.db, settingLastSweepAt, "0")
	if err != nil {
		return false, err
	}
	last, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		last = 0
	}
	return now.Sub(time.Unix(last, 0)) >= s.interval, nil
}

// Run scans both namespaces once and deletes every expired or exhausted
// entry. Individual failures are logged and skipped; one bad entry never
// aborts the sweep. Returns the number of shares deleted.
func (s *Sweeper) Run() (int, error) {
	now := nowUTC()
	deleted := 0

	var pastes []models.TextShare
	if err := s.db.Find(&pastes).Error; err != nil {
		s.log.Warn().Err(err).Msg("sweep: failed to scan text shares")
	} else {
		for _, p := range pastes {
			if !p.IsExpired(now) && !p.Exhausted() {
				continue
			}
			if err := s.pastes.Delete(p.Slug); err != nil {
				s.log.Warn().Err(err).Str("slug", p.Slug).Msg("sweep: failed to delete text share")
				continue
			}
			deleted++
		}
	}

	var files []models.FileShare
	if err := s.db.Find(&files).Error; err != nil {
		s.log.Warn().Err(err).Msg("sweep: failed to scan file shares")
	} else {
		for _, f := range files {
			if !f.IsExpired(now) && !f.Exhausted() {
				continue
			}
			if err := s.files.Delete(f.Slug); err != nil {
				s.log.Warn().Err(err).Str("slug", f.Slug).Msg("sweep: failed to delete file share")
				continue
			}
			deleted++
		}
	}

	if err := setSetting(s.db, settingLastSweepAt, strconv.FormatInt(now.Unix(), 10)); err != nil {
		return deleted, err
	}
	return deleted, nil
}
