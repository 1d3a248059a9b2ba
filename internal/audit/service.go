// Package audit provides high-level activity logging on top of the
// audit repository. Events are recorded in the background so a slow or
// failing write never blocks the request that triggered it.
package audit

import (
	"log"
	"time"

	"github.com/satriadi/perpustakaan/internal/database/audit"
	"github.com/satriadi/perpustakaan/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogAuth records an authentication event (register, login, logout,
// password change).
func (s *Service) LogAuth(userID int, action, detail string) {
	s.LogAsync(&entities.AuditEvent{
		UserID: userID,
		Action: action,
		Detail: truncate(detail, 500),
	})
}

// LogBook records a catalog mutation against a book title.
func (s *Service) LogBook(userID int, action, title string) {
	s.LogAsync(&entities.AuditEvent{
		UserID: userID,
		Action: action,
		Detail: truncate(title, 500),
	})
}

// GetEvents retrieves recent audit events. A zero userID returns events
// for all users.
func (s *Service) GetEvents(userID int, limit int) ([]entities.AuditEvent, error) {
	return s.repo.GetEvents(userID, limit)
}

// DeleteOldEvents removes events older than the specified retention and
// returns the number of rows pruned.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOlderThan(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
