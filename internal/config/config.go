package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"stylemirror/internal/mirror"
	"stylemirror/internal/workspace"
)

type Config struct {
	App     AppConfig
	LLM     LLMConfig
	Rewrite RewriteConfig
	Weights mirror.Weights
}

type AppConfig struct {
	Environment string
	Workspace   string
	DBPath      string
	LogFile     string
}

type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

type RewriteConfig struct {
	Workers      int
	ChunkChars   int
	ContextChars int
}

// Load reads an optional .env file, then the process environment. LLM
// provider, model and base URL fall back to the workspace settings.json
// before the built-in defaults. It reports whether a .env file was found.
func Load() (Config, bool, error) {
	found := godotenv.Load() == nil

	root := getenv("STYLEMIRROR_WORKSPACE", "")
	if root == "" {
		if def, err := workspace.DefaultRoot(); err == nil {
			root = def
		}
	}
	settings, err := workspace.LoadSettings(root)
	if err != nil {
		return Config{}, found, fmt.Errorf("workspace settings: %w", err)
	}
	defaults := mirror.DefaultWeights()
	cfg := Config{
		App: AppConfig{
			Environment: getenv("STYLEMIRROR_ENV", "development"),
			Workspace:   root,
			DBPath:      getenv("STYLEMIRROR_DB_PATH", filepath.Join(root, "history.db")),
			LogFile:     getenv("STYLEMIRROR_LOG_FILE", filepath.Join(root, "logs", "stylemirror.log")),
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getenv("LLM_PROVIDER", orDefault(settings.Provider, "mock"))),
			Model:    getenv("LLM_MODEL", orDefault(settings.Model, "gpt-4o-mini")),
			APIKey:   getenv("LLM_API_KEY", ""),
			BaseURL:  getenv("LLM_BASE_URL", settings.BaseURL),
			Timeout:  time.Duration(getenvInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		Rewrite: RewriteConfig{
			Workers:      getenvInt("REWRITE_WORKERS", 4),
			ChunkChars:   getenvInt("CHUNK_MAX_CHARS", 1200),
			ContextChars: getenvInt("CHUNK_CONTEXT_CHARS", 200),
		},
		Weights: mirror.Weights{
			Sentence:    getenvFloat("MIRROR_WEIGHT_SENTENCE", defaults.Sentence),
			Connectors:  getenvFloat("MIRROR_WEIGHT_CONNECTORS", defaults.Connectors),
			Punctuation: getenvFloat("MIRROR_WEIGHT_PUNCTUATION", defaults.Punctuation),
			Templates:   getenvFloat("MIRROR_WEIGHT_TEMPLATES", defaults.Templates),
		},
	}
	return cfg, found, nil
}

func (c Config) IsProd() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getenv(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getenvInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getenvFloat(name string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
