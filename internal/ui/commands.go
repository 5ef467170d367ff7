package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reelgrid/reelgrid/internal/gallery"
	"github.com/reelgrid/reelgrid/internal/player"
	"github.com/reelgrid/reelgrid/internal/reel"
	"github.com/reelgrid/reelgrid/internal/upload"
)

type galleryLoadedMsg struct {
	err error
}

type featuredLoadedMsg struct {
	items []reel.Item
	err   error
}

type editReadyMsg struct {
	item reel.Item
	err  error
}

type editedMsg struct {
	item reel.Item
	err  error
}

type deletedMsg struct {
	id  string
	err error
}

type submittedMsg struct {
	item reel.Item
	err  error
}

type playbackMsg struct {
	err error
}

// tickInterval paces the periodic repaint that picks up background
// refresher merges and live playback state.
const tickInterval = 2 * time.Second

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadInitialCmd(ctx context.Context, m *gallery.Manager) tea.Cmd {
	return func() tea.Msg {
		return galleryLoadedMsg{err: m.LoadInitial(ctx)}
	}
}

func loadMoreCmd(ctx context.Context, m *gallery.Manager) tea.Cmd {
	return func() tea.Msg {
		return galleryLoadedMsg{err: m.LoadMore(ctx)}
	}
}

func loadFeaturedCmd(ctx context.Context, store gallery.Store, collection string) tea.Cmd {
	return func() tea.Msg {
		items, err := gallery.LoadFeatured(ctx, store, collection)
		return featuredLoadedMsg{items: items, err: err}
	}
}

func reloadCmd(ctx context.Context, m *gallery.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		item, err := m.Reload(ctx, id)
		return editReadyMsg{item: item, err: err}
	}
}

func editCmd(ctx context.Context, m *gallery.Manager, id string, patch gallery.Patch) tea.Cmd {
	return func() tea.Msg {
		item, err := m.ApplyEdit(ctx, id, patch)
		return editedMsg{item: item, err: err}
	}
}

func deleteCmd(ctx context.Context, m *gallery.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: m.ApplyDelete(ctx, id)}
	}
}

func submitCmd(ctx context.Context, svc upload.Service, collection string, form upload.Form) tea.Cmd {
	return func() tea.Msg {
		item, err := upload.Submit(ctx, svc, collection, form, nil)
		return submittedMsg{item: item, err: err}
	}
}

func setActiveCmd(ctx context.Context, deck *player.Deck, id, mediaURL string) tea.Cmd {
	return func() tea.Msg {
		return playbackMsg{err: deck.SetActive(ctx, id, mediaURL)}
	}
}

func togglePlaybackCmd(ctx context.Context, deck *player.Deck) tea.Cmd {
	return func() tea.Msg {
		return playbackMsg{err: deck.Toggle(ctx)}
	}
}
