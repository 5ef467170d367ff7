// Package config handles loading and parsing reelgrid configuration files.
//
// # Overview
//
// This package reads reelgrid's TOML configuration to discover the
// Appwrite endpoint, project, and the database, collections, and bucket
// backing the gallery.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/reelgrid/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/reelgrid/config.toml
//   - API endpoint: https://cloud.appwrite.io/v1
//   - Collections: reels, featured
//   - Page size: 20
//   - Log directory: ~/.local/share/reelgrid/logs
//
// # TOML Format
//
// Example config.toml:
//
//	endpoint = "https://cloud.appwrite.io/v1"
//	project = "portfolio"
//	api_key = "standard_abc..."
//	database = "main"
//	reels_collection = "reels"
//	featured_collection = "featured"
//	bucket = "thumbnails"
//	page_size = 20
//	log_dir = "~/.local/share/reelgrid/logs"
//
// All fields are optional in the file, but project, database, and bucket
// must be present after flag overrides; Validate enforces this.
// Tilde expansion is performed automatically on paths.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead, and
// the required ids can come from command line flags.
//
// # Design Philosophy
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config
