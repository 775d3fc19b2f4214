package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/archive"
	"github.com/lvillar/hospreport/backend"
	"github.com/lvillar/hospreport/internal/config"
	"github.com/lvillar/hospreport/internal/telemetry"
	"github.com/lvillar/hospreport/reports"
	"github.com/lvillar/hospreport/stats"
)

// app is the set of collaborators built from the configuration.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	source  *backend.Client
	reports *reports.Generator
	stats   *stats.Report
}

// loadConfig reads path and the environment. The backend URL is only
// required when the command fetches records.
func loadConfig(path string, needBackend bool) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	validate := cfg.ValidateLocal
	if needBackend {
		validate = cfg.Validate
	}
	if err := validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newApp(configPath string, needBackend bool) (*app, error) {
	cfg, err := loadConfig(configPath, needBackend)
	if err != nil {
		return nil, err
	}
	logger := telemetry.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	f, err := cfg.Formatter()
	if err != nil {
		return nil, err
	}
	gen := reports.NewGenerator(cfg.Report.Institution, f,
		hospreport.WithAuthor(cfg.Report.Author),
		hospreport.WithRepeatHeader(cfg.Report.RepeatHeader),
	)
	if len(cfg.Report.Footer) > 0 {
		gen.Footer = cfg.Report.Footer
	}
	st := stats.NewReport(cfg.Report.Institution)
	st.Formatter = f

	return &app{
		cfg:     cfg,
		logger:  logger,
		source:  backend.New(cfg.Backend.URL, cfg.Backend.Token, cfg.Backend.Timeout),
		reports: gen,
		stats:   st,
	}, nil
}

// archive returns the configured store, or nil when reports are not kept.
func (a *app) archive(ctx context.Context) (archive.Store, error) {
	c := a.cfg.Archive
	switch c.Type {
	case "local":
		return archive.NewLocal(c.Dir), nil
	case "s3":
		return archive.NewS3(ctx, c.Region, c.Bucket, c.Prefix, c.KMSKeyID)
	}
	return nil, nil
}
