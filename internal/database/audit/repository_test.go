package audit

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/satriadi/perpustakaan/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_audit_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_LogEvent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	event := &entities.AuditEvent{UserID: 1, Action: entities.AuditActionLogin}
	require.NoError(t, repo.LogEvent(event))

	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero()) // stamped on save
}

func TestRepository_GetEvents(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{UserID: 1, Action: entities.AuditActionLogin, CreatedAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{UserID: 1, Action: entities.AuditActionBookAdd}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{UserID: 2, Action: entities.AuditActionLogin}))

	events, err := repo.GetEvents(1, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	// most recent first
	assert.Equal(t, entities.AuditActionBookAdd, events[0].Action)

	all, err := repo.GetEvents(0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{UserID: 1, Action: entities.AuditActionLogin, CreatedAt: time.Now().AddDate(0, 0, -45)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{UserID: 1, Action: entities.AuditActionLogout}))

	pruned, err := repo.DeleteOlderThan(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.EqualValues(t, 1, pruned)

	events, err := repo.GetEvents(1, 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
