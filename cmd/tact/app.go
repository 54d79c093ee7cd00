package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lyndonlyu/tact/internal/clipboard"
	"github.com/lyndonlyu/tact/internal/config"
	"github.com/lyndonlyu/tact/internal/history"
	"github.com/lyndonlyu/tact/internal/session"
	"github.com/lyndonlyu/tact/internal/tokenizer"
)

// app bundles everything one command invocation needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	lib     *tokenizer.Tiktoken
	session *session.Session
	history *history.DB
}

// bootstrap loads config, opens the logger and history database and starts
// a session tagged with source. It does not import the startup CSV; see
// startupCSV.
func bootstrap(source string, clip clipboard.Clipboard) (*app, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	logger, err := initLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		lib:    tokenizer.NewTiktoken(tokenizer.Options{Offline: cfg.Tokenizer.Offline}),
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithSource(source),
	}
	if clip != nil {
		opts = append(opts, session.WithClipboard(clip))
	}
	if cfg.History.Enabled {
		db, err := history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history unavailable", zap.String("path", cfg.History.Path), zap.Error(err))
		} else {
			a.history = db
			opts = append(opts, session.WithRecorder(db))
		}
	}
	a.session = session.New(a.lib, opts...)

	logger.Debug("session started",
		zap.String("source", source),
		zap.String("config", path),
		zap.Bool("offline", cfg.Tokenizer.Offline))
	return a, nil
}

// startupCSV is the CSV named by --models-csv, else by models.csv in config.
func (a *app) startupCSV() string {
	if modelsCSV != "" {
		return modelsCSV
	}
	return a.cfg.Models.CSV
}

// selectDefault selects the configured default model when the registry
// has it; otherwise the registry's first model stays selected.
func (a *app) selectDefault() {
	if m := a.cfg.Tokenizer.DefaultModel; a.session.Registry().Contains(m) {
		_ = a.session.Select(m)
	}
}

// prepare imports the startup CSV, if any, and applies the default model.
func (a *app) prepare() (session.Notice, error) {
	var n session.Notice
	if csv := a.startupCSV(); csv != "" {
		var err error
		n, err = a.session.ImportCSV(csv)
		if err != nil {
			return session.Notice{}, err
		}
	}
	a.selectDefault()
	return n, nil
}

func (a *app) close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn("history close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
