package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	s := New(openTestDB(t), Policy{MaxAttempts: 3, BaseDelay: 10 * time.Millisecond})
	clock := &fakeClock{}
	clock.install(s.retrier)
	return s, clock
}

func TestExecuteRunsAgainstDatabase(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := Execute(context.Background(), s, "ping", func(tx *gorm.DB) (int, error) {
		var n int
		err := tx.Raw("SELECT 41 + 1").Scan(&n).Error
		return n, err
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestExecuteRetriesAttemptTimeout(t *testing.T) {
	s, clock := newTestStore(t)
	WithAttemptTimeout(time.Millisecond)(s)

	calls := 0
	_, err := Execute(context.Background(), s, "slow", func(tx *gorm.DB) (int, error) {
		calls++
		<-tx.Statement.Context.Done()
		return 0, tx.Statement.Context.Err()
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, clock.delays, 2)
	assert.Equal(t, KindConnectionTimeout, KindOf(err))
}

func TestCheckHealth(t *testing.T) {
	s, _ := newTestStore(t)
	assert.True(t, s.CheckHealth(context.Background()))
}

func TestCheckHealthNeverFails(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Close())

	assert.NotPanics(t, func() {
		assert.False(t, s.CheckHealth(context.Background()))
	})
}

func TestPoolSnapshotFallsBack(t *testing.T) {
	s, _ := newTestStore(t)

	// sqlite has no pg_stat_activity
	assert.Equal(t, DefaultPoolInfo, s.PoolSnapshot(context.Background()))

	require.NoError(t, s.Close())
	assert.Equal(t, PoolInfo{ActiveConnections: 0, MaxConnections: 100}, s.PoolSnapshot(context.Background()))
}
