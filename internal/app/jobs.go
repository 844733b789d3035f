package app

import (
	"context"
	"time"

	"github.com/drwskincare/storefront/pkg/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

const jobTimeout = 30 * time.Second

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err = a.sched.AddFunc("@every 60s", a.SchedPoolMonitorTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@hourly", a.SchedBrokenImageTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedPoolMonitorTask logs the pool snapshot and the health check result.
func (a *Application) SchedPoolMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	pool := a.store.PoolSnapshot(ctx)
	metrics.Record(metrics.PoolActive, float64(pool.ActiveConnections))

	healthy := a.store.CheckHealth(ctx)
	if !healthy {
		metrics.Record(metrics.HealthCheckFailed, 1)
	}
	zap.L().Info("database pool",
		zap.Int("active_connections", pool.ActiveConnections),
		zap.Int("max_connections", pool.MaxConnections),
		zap.Bool("healthy", healthy))
}

// SchedBrokenImageTask reports photo rows that cannot be rendered.
func (a *Application) SchedBrokenImageTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	stats, err := a.catalog.BrokenImageStats(ctx)
	if err != nil {
		zap.L().Warn("broken image scan failed", zap.Error(err))
		return
	}
	if stats.TotalBroken > 0 {
		zap.L().Warn("broken images in catalog",
			zap.Int("total_broken", stats.TotalBroken),
			zap.Int("products_affected", stats.ProductsAffected))
	}
}
