package app

import (
	"github.com/drwskincare/storefront/config"
	"github.com/drwskincare/storefront/internal/catalog"
	"github.com/drwskincare/storefront/internal/store"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the retrying data access layer
type StoreProvider interface {
	Store() *store.Store
}

// CatalogProvider provides the catalog read service
type CatalogProvider interface {
	Catalog() *catalog.Service
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	StoreProvider
	CatalogProvider
	SchedulerProvider
}
