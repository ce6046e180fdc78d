package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ModeProduction  = "production"
	ModeDevelopment = "development"

	DefaultLanguage   = "english"
	DefaultStorageKey = "save"
	DefaultDSN        = "sqlite://./ponydex.db"
	DefaultPublicURL  = "https://all-the-ponies-api.vercel.app/"
)

type ProjectConfig struct {
	Version int           `yaml:"version"`
	Catalog CatalogConfig `yaml:"catalog"`
	Storage StorageConfig `yaml:"storage"`
	API     APIConfig     `yaml:"api"`
}

type CatalogConfig struct {
	Path     string `yaml:"path"`
	Language string `yaml:"language"`
}

type StorageConfig struct {
	DSN string `yaml:"dsn"`
	Key string `yaml:"key"`
}

type APIConfig struct {
	PublicURL string  `yaml:"public_url"`
	LocalURL  string  `yaml:"local_url"`
	Mode      string  `yaml:"mode"`
	RateLimit float64 `yaml:"rate_limit"`
}

// Development reports whether the local endpoint should be tried first.
func (c APIConfig) Development() bool {
	return strings.EqualFold(c.Mode, ModeDevelopment)
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration written by `ponydex init`.
func Default(catalogPath string) *ProjectConfig {
	cfg := &ProjectConfig{
		Version: 1,
		Catalog: CatalogConfig{Path: catalogPath},
		API:     APIConfig{RateLimit: 2},
	}
	applyDefaults(cfg)
	return cfg
}

// Marshal renders the config as yaml.
func (c *ProjectConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func applyDefaults(cfg *ProjectConfig) {
	if strings.TrimSpace(cfg.Catalog.Language) == "" {
		cfg.Catalog.Language = DefaultLanguage
	}
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		cfg.Storage.DSN = DefaultDSN
	}
	if strings.TrimSpace(cfg.Storage.Key) == "" {
		cfg.Storage.Key = DefaultStorageKey
	}
	if strings.TrimSpace(cfg.API.PublicURL) == "" {
		cfg.API.PublicURL = DefaultPublicURL
	}
	if strings.TrimSpace(cfg.API.Mode) == "" {
		cfg.API.Mode = ModeProduction
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Catalog.Path) == "" {
		return fmt.Errorf("catalog path is required")
	}

	switch scheme := dsnScheme(cfg.Storage.DSN); scheme {
	case "sqlite":
		if sqlitePathEmpty(cfg.Storage.DSN) {
			return fmt.Errorf("storage dsn is missing a sqlite database path")
		}
	case "postgres", "postgresql", "memory":
	default:
		return fmt.Errorf("unsupported storage dsn scheme: %q", scheme)
	}

	switch strings.ToLower(cfg.API.Mode) {
	case ModeProduction, ModeDevelopment:
	default:
		return fmt.Errorf("unsupported api mode: %s", cfg.API.Mode)
	}
	if err := validateURL("api public_url", cfg.API.PublicURL); err != nil {
		return err
	}
	if cfg.API.Development() {
		if strings.TrimSpace(cfg.API.LocalURL) == "" {
			return fmt.Errorf("api local_url is required in development mode")
		}
		if err := validateURL("api local_url", cfg.API.LocalURL); err != nil {
			return err
		}
	}
	if cfg.API.RateLimit < 0 {
		return fmt.Errorf("api rate_limit must not be negative")
	}

	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url", field)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", field)
	}
	return nil
}

func dsnScheme(dsn string) string {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return ""
	}
	return strings.ToLower(scheme)
}

func sqlitePathEmpty(dsn string) bool {
	_, rest, _ := strings.Cut(dsn, "://")
	path, _, _ := strings.Cut(rest, "?")
	return strings.TrimSpace(path) == ""
}
