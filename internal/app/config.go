package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/skyring/file-explorer-service/internal/dao"
	"github.com/skyring/file-explorer-service/internal/service"
	"github.com/skyring/file-explorer-service/pkg/storage"
	"github.com/skyring/file-explorer-service/pkg/util"
	"github.com/skyring/file-explorer-service/pkg/workerpool"
	"github.com/skyring/file-explorer-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig application configuration
type AppConfig struct {
	File     string         `yaml:"-"` // config file path, not serialized
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Upload   UploadConfig   `yaml:"upload"`
	Export   ExportConfig   `yaml:"export"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig logging configuration
type LogConfig struct {
	// Level see zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File log file path, stderr only when empty
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production enables JSON output
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	// RunMode gin run mode
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort public HTTP listen address
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout read timeout in seconds
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout write timeout in seconds
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen private HTTP listen address (metrics, pprof)
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	// Type database type, sqlite or mysql
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite database file path
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName MySQL user
	UserName string `yaml:"username"`
	// Password MySQL password
	Password string `yaml:"password"`
	// Host MySQL host
	Host string `yaml:"host"`
	// Name MySQL database name
	Name string `yaml:"name"`
	// TablePrefix table prefix
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate run schema migration at startup
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset MySQL charset
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime MySQL parseTime DSN flag
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns max idle connections
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns max open connections
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
}

// AppSettings application settings
type AppSettings struct {
	// DefaultContextTimeout per-request context timeout in seconds
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// TempPath scratch directory, emptied at startup
	TempPath string `yaml:"temp-path" default:"storage/temp"`

	// Worker pool settings (preview warmup)
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"8"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"256"`

	// Write queue settings
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"128"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
}

// UploadConfig upload acceptance rules
type UploadConfig struct {
	// MaxSizeMB per-file size cap in megabytes
	MaxSizeMB int `yaml:"max-size-mb" default:"32"`
	// MaxFiles cap on files per request
	MaxFiles int `yaml:"max-files" default:"10"`
	// AllowExts accepted file extensions, empty means all
	AllowExts []string `yaml:"allow-exts"`
	// AllowMimes accepted mime type prefixes, empty means all
	AllowMimes []string `yaml:"allow-mimes"`
}

// ExportConfig periodic tree snapshot export
type ExportConfig struct {
	// Enabled turns the export task on
	Enabled bool `yaml:"enabled" default:"false"`
	// Schedule cron expression for the export task
	Schedule string `yaml:"schedule" default:"0 3 * * *"`
	// Storage snapshot destination
	Storage storage.Config `yaml:"storage"`
}

// TracerConfig request tracing configuration
type TracerConfig struct {
	// Enabled turns trace id propagation on
	Enabled bool `yaml:"enabled" default:"true"`
	// Header trace id header name
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig loads configuration from a file, returning the config and
// the file's absolute path.
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// defaults.Set only fills zero-value fields, run it again to cover
	// fields that were present in the YAML but left empty
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save writes the configuration back to its file.
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}
	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}
	return nil
}

// GetDBConfig maps the database section onto the DAO config.
func (c *AppConfig) GetDBConfig() dao.DBConfig {
	return dao.DBConfig{
		Type:         c.Database.Type,
		Path:         c.Database.Path,
		UserName:     c.Database.UserName,
		Password:     c.Database.Password,
		Host:         c.Database.Host,
		Name:         c.Database.Name,
		TablePrefix:  c.Database.TablePrefix,
		Charset:      c.Database.Charset,
		ParseTime:    c.Database.ParseTime,
		MaxIdleConns: c.Database.MaxIdleConns,
		MaxOpenConns: c.Database.MaxOpenConns,
		RunMode:      c.Server.RunMode,
	}
}

// GetWorkerPoolConfig resolves the worker pool configuration.
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()
	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}
	return cfg
}

// GetWriteQueueConfig resolves the write queue configuration.
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()
	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}
	return cfg
}

// GetUploadConfig maps the upload section onto the service config.
func (c *AppConfig) GetUploadConfig() service.UploadConfig {
	return service.UploadConfig{
		AllowExts:  c.Upload.AllowExts,
		AllowMimes: c.Upload.AllowMimes,
		MaxSizeMB:  c.Upload.MaxSizeMB,
		MaxFiles:   c.Upload.MaxFiles,
	}
}

// GetContextTimeout resolves the per-request context timeout.
func (c *AppConfig) GetContextTimeout() time.Duration {
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}
