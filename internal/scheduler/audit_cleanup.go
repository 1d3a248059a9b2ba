// Package scheduler runs periodic maintenance jobs over the application
// database.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/satriadi/perpustakaan/internal/audit"
	"github.com/satriadi/perpustakaan/internal/config"
)

// AuditCleanupScheduler prunes expired audit events on a cron schedule.
type AuditCleanupScheduler struct {
	auditService *audit.Service
	cfg          config.Audit

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewAuditCleanupScheduler creates a new scheduler instance.
func NewAuditCleanupScheduler(auditService *audit.Service, cfg config.Audit) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		auditService: auditService,
		cfg:          cfg,
		cron:         cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. A non-positive retention disables pruning.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.cfg.RetentionDays <= 0 {
		log.Printf("Audit cleanup scheduler: disabled (no retention configured)")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.CleanupSchedule, func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s', retention %d days",
		s.cfg.CleanupSchedule, s.cfg.RetentionDays)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	log.Printf("Audit cleanup scheduler: stopped")
}

// RunNow triggers an immediate cleanup pass.
func (s *AuditCleanupScheduler) RunNow() {
	s.runCleanup()
}

// IsRunning returns whether the scheduler is active.
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next cleanup will occur.
func (s *AuditCleanupScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *AuditCleanupScheduler) runCleanup() {
	retention := time.Duration(s.cfg.RetentionDays) * 24 * time.Hour

	pruned, err := s.auditService.DeleteOldEvents(retention)
	if err != nil {
		log.Printf("Audit cleanup: failed to prune events: %v", err)
		return
	}
	if pruned > 0 {
		log.Printf("Audit cleanup: pruned %d events older than %d days", pruned, s.cfg.RetentionDays)
	}
}
