// Package ui implements the reelgrid terminal interface with Bubble Tea.
//
// The Model holds three views: the three-lane gallery grid, the featured
// carousel that drives the player deck, and the upload form. Edit and
// delete run as overlays on top of the gallery. All backend work happens
// in tea.Cmd closures so the event loop never blocks on the network; the
// resulting messages re-read the gallery manager's snapshot, which is the
// single source of truth for item state.
//
// Navigation follows the lane layout: left/right move through the
// canonical item order, up/down jump a full row. Walking past the last
// loaded row triggers the next page unless a fetch is already in flight
// or the collection is exhausted.
package ui
