package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all settings for the analyzer CLI and its collaborators.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `yaml:"analysis"`

	// Corpus cache settings
	Corpus CorpusConfig `yaml:"corpus"`

	// Optional history store (Postgres)
	History HistoryConfig `yaml:"history"`

	// Optional structural graph (Neo4j)
	Structural StructuralConfig `yaml:"structural"`
}

type AnalysisConfig struct {
	DefaultDepth int    `yaml:"default_depth"`
	RulesFile    string `yaml:"rules_file"` // optional integration rule overrides (YAML)
}

type CorpusConfig struct {
	CachePath string `yaml:"cache_path"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

type StructuralConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Default returns the built-in configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Analysis: AnalysisConfig{
			DefaultDepth: 2,
		},
		Corpus: CorpusConfig{
			CachePath: filepath.Join(homeDir, ".brisk", "corpus.db"),
		},
		Structural: StructuralConfig{
			User: "neo4j",
		},
	}
}

// Load reads configuration from .env files, a YAML config file, and
// BRISK_-prefixed environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("analysis", cfg.Analysis)
	v.SetDefault("corpus", cfg.Corpus)
	v.SetDefault("history", cfg.History)
	v.SetDefault("structural", cfg.Structural)

	v.SetEnvPrefix("BRISK")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".brisk")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".brisk"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine; defaults apply.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnv := filepath.Join(homeDir, ".brisk", ".env")
	if _, err := os.Stat(homeEnv); err == nil {
		godotenv.Load(homeEnv)
	}
}

// applyEnvOverrides maps the conventional unprefixed variables onto the
// config, taking precedence over file values.
func applyEnvOverrides(cfg *Config) {
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.History.Enabled = true
		cfg.History.DSN = dsn
	}
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		cfg.Structural.Enabled = true
		cfg.Structural.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		cfg.Structural.User = user
	}
	if password := os.Getenv("NEO4J_PASSWORD"); password != "" {
		cfg.Structural.Password = password
	}
}
