package app

import (
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/drwskincare/storefront/config"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// poolParams are the connection pool settings carried in the database URL.
// They belong to the client pool and must not reach the server as runtime
// parameters.
type poolParams struct {
	ConnectionLimit int
	PoolTimeout     time.Duration
}

// splitPoolParams removes connection_limit and pool_timeout from a postgres
// URL and returns them separately.
func splitPoolParams(dsn string) (string, poolParams, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", poolParams{}, errors.Wrap(err, "parse database url")
	}
	q := u.Query()
	params := poolParams{
		ConnectionLimit: cast.ToInt(q.Get("connection_limit")),
		PoolTimeout:     time.Duration(cast.ToInt(q.Get("pool_timeout"))) * time.Second,
	}
	q.Del("connection_limit")
	q.Del("pool_timeout")
	u.RawQuery = q.Encode()
	return u.String(), params, nil
}

func gormLogger(debug bool) logger.Interface {
	if debug {
		return logger.Default.LogMode(logger.Info)
	}
	return logger.Default.LogMode(logger.Warn)
}

func sqlitePath(cfg *config.AppConfig) string {
	name := strings.TrimSpace(cfg.Database.Name)
	switch {
	case name == "" || name == "drwskincare":
		return path.Join(cfg.GetDataDir(), "storefront.db")
	case name == ":memory:" || strings.HasPrefix(name, "file:") || path.IsAbs(name):
		return name
	default:
		return path.Join(cfg.GetDataDir(), name)
	}
}

// openDatabase opens the configured database and applies the pool settings.
// The returned duration is the per-attempt pool timeout, zero when unset.
func openDatabase(cfg *config.AppConfig) (*gorm.DB, time.Duration, error) {
	gcfg := &gorm.Config{Logger: gormLogger(cfg.Database.Debug)}

	var (
		db     *gorm.DB
		err    error
		params poolParams
	)
	switch strings.ToLower(cfg.Database.Type) {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(sqlitePath(cfg)), gcfg)
		params.ConnectionLimit = 1
	case "", "postgres", "postgresql":
		var dsn string
		dsn, err = cfg.DatabaseURL()
		if err != nil {
			return nil, 0, err
		}
		dsn, params, err = splitPoolParams(dsn)
		if err != nil {
			return nil, 0, err
		}
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
	default:
		return nil, 0, errors.Errorf("unsupported database type %q", cfg.Database.Type)
	}
	if err != nil {
		return nil, 0, errors.Wrap(err, "open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, 0, errors.Wrap(err, "database handle")
	}
	if params.ConnectionLimit > 0 {
		sqlDB.SetMaxOpenConns(params.ConnectionLimit)
	}
	if cfg.Database.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.IdleConn)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	zap.L().Info("database pool configured",
		zap.String("type", cfg.Database.Type),
		zap.Int("connection_limit", params.ConnectionLimit),
		zap.Duration("pool_timeout", params.PoolTimeout))
	return db, params.PoolTimeout, nil
}
