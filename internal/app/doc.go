// Package app provides the orchestration layer for the reelgrid application.
//
// # Overview
//
// This package wires together configuration, the Appwrite client, the
// gallery manager, the player deck, and the UI to create the complete
// reelgrid TUI. It serves as the composition root where all dependencies
// are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load reelgrid configuration from ~/.config/reelgrid/config.toml
//  2. Build the JSON file logger so the TUI owns the terminal
//  3. Initialize the Appwrite HTTP client (databases, storage, account)
//  4. Create the gallery.Manager as the single source of item state
//  5. Create the player.Deck with an mpv factory for featured playback
//  6. Launch the background refresher goroutine
//  7. Start the TUI and block until the user exits or context cancels
//
// # Refresh Behavior
//
// The refresher runs continuously in the background at a configurable
// interval (default: 30 seconds). On each tick it refetches the pages
// already loaded into the gallery and merges updates in place, so view
// and like counters stay current without disturbing pagination. Errors
// are logged and back off exponentially; the UI keeps reading snapshots
// at its own pace.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid or missing required ids
//   - Logger or Appwrite client initialization failure
//
// Recoverable errors (logged, execution continues):
//   - Background refresh failures
//   - Playback and thumbnail cleanup failures
package app
