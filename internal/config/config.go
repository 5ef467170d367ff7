package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields reelgrid needs to talk to its Appwrite
// project: where the API lives, which database backs the gallery, and
// which collections and bucket hold the content.
type Config struct {
	Endpoint           string
	Project            string
	APIKey             string
	DatabaseID         string
	ReelsCollection    string
	FeaturedCollection string
	BucketID           string
	PageSize           int
	LogDir             string
}

const (
	defaultConfigPath = "~/.config/reelgrid/config.toml"
	defaultLogDir     = "~/.local/share/reelgrid/logs"
	defaultEndpoint   = "https://cloud.appwrite.io/v1"
	defaultReels      = "reels"
	defaultFeatured   = "featured"
	defaultPageSize   = 20
)

type rawConfig struct {
	Endpoint           string `toml:"endpoint"`
	Project            string `toml:"project"`
	APIKey             string `toml:"api_key"`
	DatabaseID         string `toml:"database"`
	ReelsCollection    string `toml:"reels_collection"`
	FeaturedCollection string `toml:"featured_collection"`
	BucketID           string `toml:"bucket"`
	PageSize           int    `toml:"page_size"`
	LogDir             string `toml:"log_dir"`
}

// Load locates and parses the reelgrid config. A missing file yields
// defaults; project and database must then come from flags.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LogDir = mustExpand(defaultLogDir)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	apply(&cfg.Endpoint, raw.Endpoint)
	apply(&cfg.Project, raw.Project)
	apply(&cfg.APIKey, raw.APIKey)
	apply(&cfg.DatabaseID, raw.DatabaseID)
	apply(&cfg.ReelsCollection, raw.ReelsCollection)
	apply(&cfg.FeaturedCollection, raw.FeaturedCollection)
	apply(&cfg.BucketID, raw.BucketID)
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	apply(&cfg.LogDir, raw.LogDir)
	cfg.LogDir = mustExpand(cfg.LogDir)

	return cfg, nil
}

// Validate reports the first missing required field. Called after flag
// overrides so the config file alone does not have to be complete.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Project) == "":
		return fmt.Errorf("project id is required")
	case strings.TrimSpace(c.DatabaseID) == "":
		return fmt.Errorf("database id is required")
	case strings.TrimSpace(c.BucketID) == "":
		return fmt.Errorf("bucket id is required")
	}
	return nil
}

// LogPath returns the path of the primary log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/reelgrid.log")
	}
	return filepath.Join(c.LogDir, "reelgrid.log")
}

func defaults() Config {
	return Config{
		Endpoint:           defaultEndpoint,
		ReelsCollection:    defaultReels,
		FeaturedCollection: defaultFeatured,
		PageSize:           defaultPageSize,
		LogDir:             defaultLogDir,
	}
}

func apply(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
