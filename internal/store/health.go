package store

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolInfo is a best-effort view of database session usage.
type PoolInfo struct {
	ActiveConnections int `json:"active_connections"`
	MaxConnections    int `json:"max_connections"`
}

var DefaultPoolInfo = PoolInfo{ActiveConnections: 0, MaxConnections: 100}

const poolInfoSQL = `
SELECT count(*) AS active_connections, setting::int AS max_connections
FROM pg_stat_activity
CROSS JOIN pg_settings
WHERE pg_settings.name = 'max_connections'
AND pg_stat_activity.state = 'active'
GROUP BY setting`

// CheckHealth performs a trivial round-trip under the default policy. It never
// returns an error: any failure is logged and reported as false.
func (s *Store) CheckHealth(ctx context.Context) bool {
	_, err := Retry(ctx, s.retrier.WithPolicy(DefaultPolicy), "health.ping", func(ctx context.Context) (int, error) {
		var one int
		err := s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
		return one, err
	})
	if err != nil {
		zap.L().Error("database health check failed", zap.Error(err))
		return false
	}
	return true
}

// PoolSnapshot queries the server's session statistics. Failures, including
// non-postgres dialects, yield DefaultPoolInfo.
func (s *Store) PoolSnapshot(ctx context.Context) PoolInfo {
	var rows []PoolInfo
	err := s.db.WithContext(ctx).Session(&gorm.Session{Logger: s.db.Logger.LogMode(logger.Silent)}).
		Raw(poolInfoSQL).Scan(&rows).Error
	if err != nil {
		zap.L().Warn("failed to get connection pool info", zap.Error(err))
		return DefaultPoolInfo
	}
	if len(rows) == 0 {
		return DefaultPoolInfo
	}
	return rows[0]
}
