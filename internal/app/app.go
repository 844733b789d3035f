package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/drwskincare/storefront/config"
	"github.com/drwskincare/storefront/internal/catalog"
	"github.com/drwskincare/storefront/internal/store"
	"github.com/drwskincare/storefront/pkg/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

// Application owns every long-lived resource of the process. Nothing here
// is global; handlers reach it through AppContext.
type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	store     *store.Store
	catalog   *catalog.Service
	sched     *cron.Cron
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ StoreProvider     = (*Application)(nil)
	_ CatalogProvider   = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Store() *store.Store {
	return a.store
}

func (a *Application) Catalog() *catalog.Service {
	return a.catalog
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// RetryPolicy is the store policy derived from configuration.
func (a *Application) RetryPolicy() store.Policy {
	return store.Policy{
		MaxAttempts: a.appConfig.Storefront.Retry.MaxAttempts,
		BaseDelay:   a.appConfig.BaseDelay(),
	}
}

// OverrideDB replaces the application's database handle and rebuilds the
// components that depend on it (used in tests).
func (a *Application) OverrideDB(db *gorm.DB, opts ...store.Option) {
	a.gormDB = db
	a.store = store.New(db, a.RetryPolicy(), opts...)
	a.catalog = catalog.NewService(catalog.NewGormRepository(a.store))
}

func initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	var err error
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Init sets up logging, metrics and the database, then starts the
// background jobs.
func (a *Application) Init(cfg *config.AppConfig) error {
	a.appConfig = cfg
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	initLogger(cfg)

	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	db, poolTimeout, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	var opts []store.Option
	if poolTimeout > 0 {
		opts = append(opts, store.WithAttemptTimeout(poolTimeout))
	}
	a.OverrideDB(db, opts...)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	a.checkSchema()

	a.initJob()
	return nil
}

// Release stops background jobs and closes every owned resource.
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			zap.L().Warn("close database", zap.Error(err))
		}
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
