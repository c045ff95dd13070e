package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/lectern/internal/config"
	"github.com/felixgeelhaar/lectern/internal/library"
	"github.com/felixgeelhaar/lectern/internal/llm"
	"github.com/felixgeelhaar/lectern/internal/storage/kv"
)

// app bundles the pieces every command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  kv.Store
	lib    *library.Library
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// newApp loads config, sets up file logging, and opens the lesson store.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dir, err := config.EnsureDir()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(dir, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg, dir)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		lib:    library.New(store, logger),
	}, nil
}

// newLogger writes structured logs to ~/.lectern/logs/lectern.log so they
// never interleave with the interactive terminal output.
func newLogger(dir, level string) (*slog.Logger, error) {
	f, err := os.OpenFile(filepath.Join(dir, "logs", "lectern.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl})), nil
}

func openStore(cfg *config.Config, dir string) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return kv.NewSQLite(filepath.Join(dir, "data", "lectern.db"))
	default:
		return kv.NewFile(filepath.Join(dir, "data"))
	}
}

// requireAPIKey returns the configured key or a setup hint.
func (a *app) requireAPIKey() (string, error) {
	if a.cfg.APIKey == "" {
		return "", fmt.Errorf("no API key configured (run 'lectern key set <api-key>' first)")
	}
	return a.cfg.APIKey, nil
}

// openaiProvider builds the raw OpenAI provider from config.
func (a *app) openaiProvider() (*llm.OpenAIProvider, error) {
	key, err := a.requireAPIKey()
	if err != nil {
		return nil, err
	}
	return llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:             key,
		BaseURL:            a.cfg.LLM.BaseURL,
		Model:              a.cfg.LLM.GenerationModel,
		TranscriptionModel: a.cfg.LLM.TranscriptionModel,
	}), nil
}
