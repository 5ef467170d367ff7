// Package gallery owns the reel collection state shown in the TUI.
//
// Manager is the single source of truth: it loads pages from the
// backend, normalizes every document through the reel package, and
// hands the UI immutable snapshots. Pagination is offset-based with a
// load-more cursor that advances by the count actually returned, so a
// shrinking backend collection never strands the cursor past the end.
//
// A filtered listing that fails retries once without the filter and
// applies the published filter client-side; only when both attempts
// fail does the gallery settle empty and surface a FetchError.
//
// Lane distribution and aspect assignment live in lanes.go. Aspects are
// assigned once, when an item first enters the collection, and survive
// refetches, edits, and redistribution.
package gallery
