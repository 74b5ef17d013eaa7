package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Chart    ChartConfig    `yaml:"chart"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            string        `yaml:"port" default:"8080" validate:"required,numeric"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
}

// Addr returns the listen address
func (s *ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// DatabaseConfig selects and configures the backing store
type DatabaseConfig struct {
	Driver   string         `yaml:"driver" default:"sqlite" validate:"oneof=sqlite postgres"`
	Path     string         `yaml:"path" default:"data/timbers_future.db" validate:"required_if=Driver sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL configuration
type PostgresConfig struct {
	Host     string `yaml:"host" default:"localhost"`
	Port     string `yaml:"port" default:"5432"`
	User     string `yaml:"user" default:"postgres"`
	Password string `yaml:"password" default:"postgres"`
	DBName   string `yaml:"dbname" default:"lumber"`
	SSLMode  string `yaml:"sslmode" default:"disable"`
}

// ImportConfig controls where price rows are read from
type ImportConfig struct {
	SourcePath string `yaml:"source_path" default:"LumberFut.xlsx" validate:"required"`
	// Sheet overrides the workbook's first sheet when set.
	Sheet       string `yaml:"sheet"`
	RefreshCron string `yaml:"refresh_cron"`
}

// ChartConfig controls chart layout. When Autorange is false the axes use
// the fixed bands below.
type ChartConfig struct {
	Autorange bool    `yaml:"autorange"`
	YMin      float64 `yaml:"y_min" default:"0"`
	YMax      float64 `yaml:"y_max" default:"1600" validate:"gtfield=YMin"`
	XStart    string  `yaml:"x_start" default:"2022-01-03" validate:"datetime=2006-01-02"`
	XEnd      string  `yaml:"x_end" default:"2022-10-06" validate:"datetime=2006-01-02"`
	Width     int     `yaml:"width" default:"1400" validate:"gt=0"`
	Height    int     `yaml:"height" default:"700" validate:"gt=0"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"console" validate:"oneof=json console"`
	Output string `yaml:"output" default:"stdout"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return cfg, nil
}

// Validate checks that all fields hold usable values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"SERVER_HOST", &cfg.Server.Host},
		{"SERVER_PORT", &cfg.Server.Port},
		{"DB_DRIVER", &cfg.Database.Driver},
		{"SQLITE_PATH", &cfg.Database.Path},
		{"DB_HOST", &cfg.Database.Postgres.Host},
		{"DB_PORT", &cfg.Database.Postgres.Port},
		{"DB_USER", &cfg.Database.Postgres.User},
		{"DB_PASSWORD", &cfg.Database.Postgres.Password},
		{"DB_NAME", &cfg.Database.Postgres.DBName},
		{"DB_SSLMODE", &cfg.Database.Postgres.SSLMode},
		{"IMPORT_SOURCE", &cfg.Import.SourcePath},
		{"IMPORT_REFRESH_CRON", &cfg.Import.RefreshCron},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"LOG_FORMAT", &cfg.Log.Format},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
}

// ConnectionString returns the PostgreSQL connection string
func (p *PostgresConfig) ConnectionString() string {
	return "postgres://" + p.User + ":" + p.Password + "@" + p.Host + ":" + p.Port + "/" + p.DBName + "?sslmode=" + p.SSLMode
}

// DSN returns the data source name for the configured driver
func (d *DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return d.Postgres.ConnectionString()
	}
	return d.Path
}
