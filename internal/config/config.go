// Package config loads the hospreport service configuration from a YAML
// file with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/hospreport/format"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Archive ArchiveConfig `yaml:"archive"`
	Report  ReportConfig  `yaml:"report"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBatch        int           `yaml:"max_batch"`
}

// BackendConfig points at the REST API that owns the records.
type BackendConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// ArchiveConfig selects where generated reports are kept.
// Type is "none", "local" or "s3".
type ArchiveConfig struct {
	Type     string `yaml:"type"`
	Dir      string `yaml:"dir"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	KMSKeyID string `yaml:"kms_key_id"`
}

// ReportConfig holds document-wide settings.
type ReportConfig struct {
	Institution  string   `yaml:"institution"`
	Author       string   `yaml:"author"`
	Timezone     string   `yaml:"timezone"`
	ZeroPolicy   string   `yaml:"zero_policy"` // "missing" or "value"
	RepeatHeader bool     `yaml:"repeat_header"`
	Footer       []string `yaml:"footer"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// Default returns a configuration that serves on :8080 against a local
// backend and keeps no archive.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBatch:        50,
		},
		Backend: BackendConfig{
			URL:     "http://localhost:3000",
			Timeout: 10 * time.Second,
		},
		Archive: ArchiveConfig{Type: "none", Dir: "./data/reports"},
		Report: ReportConfig{
			Institution: "Hospital",
			Author:      "hospreport",
			Timezone:    "America/Sao_Paulo",
			ZeroPolicy:  "missing",
			Footer:      []string{"Documento gerado automaticamente pelo sistema de gestão hospitalar."},
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads configuration from a YAML file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns Default when path is empty or the
// file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from HOSPREPORT_* variables. getenv is
// os.Getenv outside tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("HOSPREPORT_ADDR", &c.Server.Addr)
	str("HOSPREPORT_BACKEND_URL", &c.Backend.URL)
	str("HOSPREPORT_BACKEND_TOKEN", &c.Backend.Token)
	str("HOSPREPORT_ARCHIVE", &c.Archive.Type)
	str("HOSPREPORT_ARCHIVE_DIR", &c.Archive.Dir)
	str("HOSPREPORT_S3_BUCKET", &c.Archive.Bucket)
	str("HOSPREPORT_S3_PREFIX", &c.Archive.Prefix)
	str("AWS_REGION", &c.Archive.Region)
	str("HOSPREPORT_INSTITUTION", &c.Report.Institution)
	str("HOSPREPORT_TIMEZONE", &c.Report.Timezone)
	str("HOSPREPORT_ZERO_POLICY", &c.Report.ZeroPolicy)
	str("HOSPREPORT_LOG_LEVEL", &c.Log.Level)
	str("HOSPREPORT_LOG_FORMAT", &c.Log.Format)

	if v := getenv("HOSPREPORT_BACKEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HOSPREPORT_BACKEND_TIMEOUT: %w", err)
		}
		c.Backend.Timeout = d
	}
	if v := getenv("HOSPREPORT_REPEAT_HEADER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HOSPREPORT_REPEAT_HEADER: %w", err)
		}
		c.Report.RepeatHeader = b
	}
	return nil
}

// Validate checks values that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url is required")
	}
	return c.ValidateLocal()
}

// ValidateLocal is Validate without the backend settings, for rendering
// records read from files.
func (c *Config) ValidateLocal() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.Report.ZeroPolicy {
	case "", "missing", "value":
	default:
		return fmt.Errorf("report.zero_policy must be \"missing\" or \"value\", got %q", c.Report.ZeroPolicy)
	}
	switch c.Archive.Type {
	case "", "none", "local":
	case "s3":
		if c.Archive.Bucket == "" {
			return fmt.Errorf("archive.bucket is required for the s3 archive")
		}
	default:
		return fmt.Errorf("unknown archive.type %q", c.Archive.Type)
	}
	return nil
}

// Location resolves Report.Timezone; empty means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Report.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("report.timezone: %w", err)
	}
	return loc, nil
}

// Formatter builds the pt-BR formatter described by the report settings.
func (c *Config) Formatter() (*format.Formatter, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	f := format.New()
	f.Location = loc
	f.ZeroPolicy = format.ParseZeroPolicy(c.Report.ZeroPolicy)
	return f, nil
}
