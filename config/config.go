package config

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DBConfig Database configuration
type DBConfig struct {
	Type           string `yaml:"type"` // postgres or sqlite
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Name           string `yaml:"name"`
	User           string `yaml:"user"`
	Passwd         string `yaml:"passwd"`
	URL            string `yaml:"url"`             // full DSN, overrides discrete fields
	MaxConn        int    `yaml:"max_conn"`        // connection_limit
	IdleConn       int    `yaml:"idle_conn"`
	PoolTimeout    int    `yaml:"pool_timeout"`    // seconds
	ConnectTimeout int    `yaml:"connect_timeout"` // seconds
	Debug          bool   `yaml:"debug"`
}

// SysConfig System configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig Web server configuration
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogConfig Logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// RetryConfig store retry policy
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	BaseDelayMs int `yaml:"base_delay_ms"`
}

// StorefrontConfig catalog and checkout settings
type StorefrontConfig struct {
	SiteName       string      `yaml:"site_name"`
	SiteURL        string      `yaml:"site_url"`
	WhatsappNumber string      `yaml:"whatsapp_number"`
	DefaultRole    string      `yaml:"default_role"`
	PageSize       int         `yaml:"page_size"`
	Retry          RetryConfig `yaml:"retry"`
}

type AppConfig struct {
	System     SysConfig        `yaml:"system"`
	Web        WebConfig        `yaml:"web"`
	Database   DBConfig         `yaml:"database"`
	Logger     LogConfig        `yaml:"logger"`
	Storefront StorefrontConfig `yaml:"storefront"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

// BaseDelay returns the configured backoff base as a duration.
func (c *AppConfig) BaseDelay() time.Duration {
	return time.Duration(c.Storefront.Retry.BaseDelayMs) * time.Millisecond
}

// DatabaseURL builds the postgres DSN, adding the pool parameters the
// deployment has always relied on when they are not already present.
func (c *AppConfig) DatabaseURL() (string, error) {
	raw := strings.TrimSpace(c.Database.URL)
	if raw == "" {
		raw = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			url.QueryEscape(c.Database.User),
			url.QueryEscape(c.Database.Passwd),
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
		)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(err, "invalid database url")
	}
	q := u.Query()
	if !q.Has("pool_timeout") {
		q.Set("pool_timeout", strconv.Itoa(c.Database.PoolTimeout))
	}
	if !q.Has("connection_limit") {
		q.Set("connection_limit", strconv.Itoa(c.Database.MaxConn))
	}
	if !q.Has("connect_timeout") {
		q.Set("connect_timeout", strconv.Itoa(c.Database.ConnectTimeout))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "DrwStorefront",
		Location: "Asia/Jakarta",
		Workdir:  "/var/storefront",
		Debug:    false,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 3000,
	},
	Database: DBConfig{
		Type:           "postgres",
		Host:           "127.0.0.1",
		Port:           5432,
		Name:           "drwskincare",
		User:           "postgres",
		Passwd:         "postgres",
		MaxConn:        8,
		IdleConn:       2,
		PoolTimeout:    60,
		ConnectTimeout: 30,
		Debug:          false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/storefront/logs/storefront.log",
	},
	Storefront: StorefrontConfig{
		SiteName:       "DR.W Skincare",
		SiteURL:        "https://drwskincare.com",
		WhatsappNumber: "6281234567890",
		DefaultRole:    "umum",
		PageSize:       12,
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelayMs: 1000,
		},
	},
}

// LoadConfig reads the yaml file when it exists, then applies environment
// overrides. An empty path yields the defaults plus the environment.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile == "" {
		cfile = "storefront.yml"
	}
	if data, err := os.ReadFile(cfile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", cfile)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "read config %s", cfile)
	}

	setEnvValue("STOREFRONT_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("STOREFRONT_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("STOREFRONT_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("STOREFRONT_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("STOREFRONT_WEB_PORT", &cfg.Web.Port)

	setEnvValue("STOREFRONT_DB_TYPE", &cfg.Database.Type)
	setEnvValue("STOREFRONT_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("STOREFRONT_DB_PORT", &cfg.Database.Port)
	setEnvValue("STOREFRONT_DB_NAME", &cfg.Database.Name)
	setEnvValue("STOREFRONT_DB_USER", &cfg.Database.User)
	setEnvValue("STOREFRONT_DB_PWD", &cfg.Database.Passwd)
	setEnvIntValue("STOREFRONT_DB_MAX_CONN", &cfg.Database.MaxConn)
	setEnvIntValue("STOREFRONT_DB_IDLE_CONN", &cfg.Database.IdleConn)
	setEnvBoolValue("STOREFRONT_DB_DEBUG", &cfg.Database.Debug)
	setEnvValue("DATABASE_URL", &cfg.Database.URL)

	setEnvValue("STOREFRONT_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("STOREFRONT_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	setEnvValue("STOREFRONT_SITE_NAME", &cfg.Storefront.SiteName)
	setEnvValue("STOREFRONT_WHATSAPP_NUMBER", &cfg.Storefront.WhatsappNumber)
	setEnvValue("STOREFRONT_DEFAULT_ROLE", &cfg.Storefront.DefaultRole)
	setEnvIntValue("STOREFRONT_PAGE_SIZE", &cfg.Storefront.PageSize)
	setEnvIntValue("STOREFRONT_RETRY_MAX_ATTEMPTS", &cfg.Storefront.Retry.MaxAttempts)
	setEnvIntValue("STOREFRONT_RETRY_BASE_DELAY_MS", &cfg.Storefront.Retry.BaseDelayMs)

	if cfg.Storefront.PageSize <= 0 {
		cfg.Storefront.PageSize = DefaultAppConfig.Storefront.PageSize
	}
	if cfg.Storefront.Retry.MaxAttempts <= 0 {
		cfg.Storefront.Retry.MaxAttempts = 1
	}

	cfg.initDirs()
	return &cfg, nil
}

func setEnvValue(name string, val *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*val = cast.ToBool(v)
	}
}

func setEnvIntValue(name string, val *int) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		if n, err := cast.ToIntE(v); err == nil {
			*val = n
		}
	}
}
