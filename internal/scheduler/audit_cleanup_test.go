package scheduler

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/satriadi/perpustakaan/internal/audit"
	"github.com/satriadi/perpustakaan/internal/config"
	auditrepo "github.com/satriadi/perpustakaan/internal/database/audit"
	"github.com/satriadi/perpustakaan/internal/entities"
)

func setupScheduler(t *testing.T, cfg config.Audit) (*AuditCleanupScheduler, *audit.Service, func()) {
	t.Helper()

	dbPath := "./test_scheduler_" + t.Name() + ".db"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.AuditEvent{}))

	svc := audit.NewService(auditrepo.NewRepository(db))
	sched := NewAuditCleanupScheduler(svc, cfg)

	cleanup := func() {
		sched.Stop()
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return sched, svc, cleanup
}

func TestScheduler_StartAndStop(t *testing.T) {
	sched, _, cleanup := setupScheduler(t, config.Audit{
		RetentionDays:   30,
		CleanupSchedule: "0 3 * * *",
	})
	defer cleanup()

	require.NoError(t, sched.Start(context.Background()))
	assert.True(t, sched.IsRunning())
	assert.NotNil(t, sched.NextRunTime())

	sched.Stop()
	assert.False(t, sched.IsRunning())
	assert.Nil(t, sched.NextRunTime())
}

func TestScheduler_DisabledWithoutRetention(t *testing.T) {
	sched, _, cleanup := setupScheduler(t, config.Audit{
		RetentionDays:   0,
		CleanupSchedule: "0 3 * * *",
	})
	defer cleanup()

	require.NoError(t, sched.Start(context.Background()))
	assert.False(t, sched.IsRunning())
}

func TestScheduler_RejectsBadSchedule(t *testing.T) {
	sched, _, cleanup := setupScheduler(t, config.Audit{
		RetentionDays:   30,
		CleanupSchedule: "not a schedule",
	})
	defer cleanup()

	assert.Error(t, sched.Start(context.Background()))
}

func TestScheduler_RunNowPrunesExpiredEvents(t *testing.T) {
	sched, svc, cleanup := setupScheduler(t, config.Audit{
		RetentionDays:   30,
		CleanupSchedule: "0 3 * * *",
	})
	defer cleanup()

	require.NoError(t, svc.Log(&entities.AuditEvent{
		UserID:    1,
		Action:    entities.AuditActionLogin,
		CreatedAt: time.Now().AddDate(0, 0, -45),
	}))
	require.NoError(t, svc.Log(&entities.AuditEvent{
		UserID: 1,
		Action: entities.AuditActionLogout,
	}))

	sched.RunNow()

	events, err := svc.GetEvents(1, 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	sched, _, cleanup := setupScheduler(t, config.Audit{
		RetentionDays:   30,
		CleanupSchedule: "0 3 * * *",
	})
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, sched.Start(ctx))
	require.True(t, sched.IsRunning())

	cancel()

	assert.Eventually(t, func() bool {
		return !sched.IsRunning()
	}, 2*time.Second, 10*time.Millisecond)
}
