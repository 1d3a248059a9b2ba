// Package audit provides database operations for the activity log.
package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/satriadi/perpustakaan/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.Create(event).Error
}

// GetEvents retrieves audit events for a user, most recent first. A zero
// userID returns events for all users.
func (r *Repository) GetEvents(userID int, limit int) ([]entities.AuditEvent, error) {
	var events []entities.AuditEvent

	query := r.db.Model(&entities.AuditEvent{})
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	if limit <= 0 {
		limit = 50
	}

	err := query.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

// DeleteOlderThan removes events created before the cutoff and returns the
// number of rows pruned.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
