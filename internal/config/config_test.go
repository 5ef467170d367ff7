package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != defaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, defaultEndpoint)
	}
	if cfg.ReelsCollection != defaultReels || cfg.FeaturedCollection != defaultFeatured {
		t.Fatalf("collections = (%q, %q), want defaults", cfg.ReelsCollection, cfg.FeaturedCollection)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, defaultPageSize)
	}

	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
endpoint = "  https://aw.example.com/v1  "
project = "portfolio"
database = "main"
bucket = "thumbnails"
reels_collection = "clips"
page_size = 12
log_dir = "  ~/.reelgrid/logs  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != "https://aw.example.com/v1" {
		t.Fatalf("Endpoint = %q, want trimmed value", cfg.Endpoint)
	}
	if cfg.Project != "portfolio" || cfg.DatabaseID != "main" || cfg.BucketID != "thumbnails" {
		t.Fatalf("ids = (%q, %q, %q), want parsed values", cfg.Project, cfg.DatabaseID, cfg.BucketID)
	}
	if cfg.ReelsCollection != "clips" {
		t.Fatalf("ReelsCollection = %q, want %q", cfg.ReelsCollection, "clips")
	}
	if cfg.FeaturedCollection != defaultFeatured {
		t.Fatalf("FeaturedCollection = %q, want untouched default", cfg.FeaturedCollection)
	}
	if cfg.PageSize != 12 {
		t.Fatalf("PageSize = %d, want 12", cfg.PageSize)
	}
	if !strings.HasPrefix(cfg.LogDir, home) {
		t.Fatalf("LogDir = %q, want it under HOME %q", cfg.LogDir, home)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
endpoint = "   "
reels_collection = ""
page_size = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != defaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, defaultEndpoint)
	}
	if cfg.ReelsCollection != defaultReels {
		t.Fatalf("ReelsCollection = %q, want %q", cfg.ReelsCollection, defaultReels)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, defaultPageSize)
	}
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`endpoint = [broken`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted malformed toml")
	}
}

func TestValidate_RequiresBackendIDs(t *testing.T) {
	cfg := defaults()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate accepted config without project")
	}
	cfg.Project = "portfolio"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate accepted config without database")
	}
	cfg.DatabaseID = "main"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate accepted config without bucket")
	}
	cfg.BucketID = "thumbnails"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate rejected complete config: %v", err)
	}
}

func TestLogPath(t *testing.T) {
	cfg := Config{LogDir: "/var/log/reelgrid"}
	if got := cfg.LogPath(); got != "/var/log/reelgrid/reelgrid.log" {
		t.Fatalf("LogPath = %q, want %q", got, "/var/log/reelgrid/reelgrid.log")
	}
}
