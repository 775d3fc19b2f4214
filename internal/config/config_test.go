package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lvillar/hospreport/format"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
backend:
  url: https://api.hospital.local
  timeout: 3s
archive:
  type: local
  dir: /var/lib/hospreport
report:
  institution: Hospital Municipal
  zero_policy: value
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.URL != "https://api.hospital.local" || cfg.Backend.Timeout != 3*time.Second {
		t.Errorf("backend = %+v", cfg.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Error("unset fields should keep defaults")
	}
	f, err := cfg.Formatter()
	if err != nil {
		t.Fatal(err)
	}
	if f.ZeroPolicy != format.ZeroAsValue || f.Location.String() != "America/Sao_Paulo" {
		t.Errorf("formatter = %+v", f)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil || cfg.Server.Addr != ":8080" {
		t.Errorf("cfg = %+v, err = %v", cfg, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Report.Institution = "Hospital Regional"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Report.Institution != "Hospital Regional" || got.Server.WriteTimeout != cfg.Server.WriteTimeout {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"HOSPREPORT_ADDR":            ":9090",
		"HOSPREPORT_BACKEND_TOKEN":   "secret",
		"HOSPREPORT_BACKEND_TIMEOUT": "2s",
		"HOSPREPORT_ARCHIVE":         "s3",
		"HOSPREPORT_S3_BUCKET":       "reports",
		"HOSPREPORT_REPEAT_HEADER":   "true",
	}
	cfg := Default()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9090" || cfg.Backend.Token != "secret" || cfg.Backend.Timeout != 2*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Archive.Type != "s3" || cfg.Archive.Bucket != "reports" || !cfg.Report.RepeatHeader {
		t.Errorf("archive/report = %+v %+v", cfg.Archive, cfg.Report)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	bad := Default()
	if err := bad.ApplyEnv(func(k string) string {
		if k == "HOSPREPORT_BACKEND_TIMEOUT" {
			return "soon"
		}
		return ""
	}); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no backend", func(c *Config) { c.Backend.URL = "" }},
		{"bad zone", func(c *Config) { c.Report.Timezone = "Mars/Olympus" }},
		{"bad policy", func(c *Config) { c.Report.ZeroPolicy = "sometimes" }},
		{"s3 without bucket", func(c *Config) { c.Archive.Type = "s3" }},
		{"unknown archive", func(c *Config) { c.Archive.Type = "ftp" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateLocalWithoutBackend(t *testing.T) {
	cfg := Default()
	cfg.Backend.URL = ""
	if err := cfg.ValidateLocal(); err != nil {
		t.Errorf("ValidateLocal: %v", err)
	}
	cfg.Report.ZeroPolicy = "sometimes"
	if err := cfg.ValidateLocal(); err == nil {
		t.Error("expected error for a bad zero policy")
	}
}
