// Package config layers lectern's configuration: compiled defaults, then
// ~/.lectern/config.yaml, then LECTERN_* environment variables. The API key
// lives in secrets.yaml, never in config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Storage  StorageConfig `yaml:"storage"`
	LLM      LLMConfig     `yaml:"llm"`

	// APIKey is loaded from secrets.yaml or the environment, never from
	// config.yaml.
	APIKey string `yaml:"-"`
}

// StorageConfig selects the lesson store backend.
type StorageConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `yaml:"backend"`
}

// LLMConfig holds model selection and pricing.
type LLMConfig struct {
	BaseURL            string  `yaml:"base_url,omitempty"`
	GenerationModel    string  `yaml:"generation_model"`
	ChatModel          string  `yaml:"chat_model"`
	TranscriptionModel string  `yaml:"transcription_model"`
	InputCostPer1M     float64 `yaml:"input_cost_per_1m"`
	OutputCostPer1M    float64 `yaml:"output_cost_per_1m"`
}

// Default returns the compiled-in defaults.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Storage: StorageConfig{
			Backend: "file",
		},
		LLM: LLMConfig{
			GenerationModel:    "gpt-4o",
			ChatModel:          "gpt-4o-mini",
			TranscriptionModel: "whisper-1",
			InputCostPer1M:     2.50,
			OutputCostPer1M:    10.00,
		},
	}
}

// Load reads configuration from ~/.lectern/config.yaml, secrets.yaml, a
// .env file in the working directory, and the environment. Missing files
// fall back to defaults.
func Load() (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	if data, err := os.ReadFile(filepath.Join(dir, "config.yaml")); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	key, err := loadAPIKey(dir)
	if err != nil {
		return nil, err
	}
	cfg.APIKey = key

	applyEnv(cfg)

	if cfg.Storage.Backend != "file" && cfg.Storage.Backend != "sqlite" {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.LogLevel = getEnv("LECTERN_LOG_LEVEL", cfg.LogLevel)
	cfg.Storage.Backend = getEnv("LECTERN_STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.LLM.BaseURL = getEnv("LECTERN_LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.GenerationModel = getEnv("LECTERN_GENERATION_MODEL", cfg.LLM.GenerationModel)
	cfg.LLM.ChatModel = getEnv("LECTERN_CHAT_MODEL", cfg.LLM.ChatModel)
	cfg.LLM.TranscriptionModel = getEnv("LECTERN_TRANSCRIPTION_MODEL", cfg.LLM.TranscriptionModel)
	cfg.LLM.InputCostPer1M = getEnvFloat("LECTERN_INPUT_COST_PER_1M", cfg.LLM.InputCostPer1M)
	cfg.LLM.OutputCostPer1M = getEnvFloat("LECTERN_OUTPUT_COST_PER_1M", cfg.LLM.OutputCostPer1M)

	if key := os.Getenv("LECTERN_API_KEY"); key != "" {
		cfg.APIKey = key
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.APIKey == "" {
		cfg.APIKey = key
	}
}

// Save writes cfg to ~/.lectern/config.yaml.
func Save(cfg *Config) error {
	dir, err := EnsureDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
