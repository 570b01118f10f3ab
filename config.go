package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultAPIBase        = "https://dummyjson.com"
	defaultPageSize       = 20
	defaultSearchDebounce = 700 // milliseconds
	defaultAuthExpiresMin = 60
	defaultSelectFields   = "title,category,price,brand,sku,rating,stock"
)

type uiConfig struct {
	APIBase        string `yaml:"api_base,omitempty"`
	PageSize       int    `yaml:"page_size,omitempty"`
	SearchDebounce int    `yaml:"search_debounce_ms,omitempty"`
	AuthExpiresMin int    `yaml:"auth_expires_min,omitempty"`
	Theme          string `yaml:"theme,omitempty"`
	ExportDir      string `yaml:"export_dir,omitempty"`
}

func loadUIConfig() (*uiConfig, string) {
	configDir := resolveConfigDir()
	path := filepath.Join(configDir, "ui.yaml")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return applyConfigDefaults(&uiConfig{}), path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return applyConfigDefaults(&uiConfig{}), path
	}
	var cfg uiConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return applyConfigDefaults(&uiConfig{}), path
	}
	return applyConfigDefaults(&cfg), path
}

func saveUIConfig(cfg *uiConfig, path string) error {
	if cfg == nil {
		cfg = &uiConfig{}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Environment wins over the yaml file; the yaml file wins over the
// built-in defaults. A .env next to the binary is loaded in main.
func applyConfigDefaults(cfg *uiConfig) *uiConfig {
	if base := strings.TrimSpace(os.Getenv("WAREROOM_API_BASE")); base != "" {
		cfg.APIBase = base
	}
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")

	if raw := strings.TrimSpace(os.Getenv("WAREROOM_PAGE_SIZE")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			cfg.PageSize = parsed
		}
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}

	if raw := strings.TrimSpace(os.Getenv("WAREROOM_SEARCH_DEBOUNCE_MS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			cfg.SearchDebounce = parsed
		}
	}
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = defaultSearchDebounce
	}

	if cfg.AuthExpiresMin <= 0 {
		cfg.AuthExpiresMin = defaultAuthExpiresMin
	}
	return cfg
}

func resolveConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "wareroom")
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
