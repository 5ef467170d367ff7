package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/reelgrid/reelgrid/internal/prefs"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// A pending delete swallows everything except confirm and escape.
	if m.pendingDelete != "" {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			id := m.pendingDelete
			m.pendingDelete = ""
			return m, deleteCmd(m.ctx, m.manager, id)
		case key.Matches(msg, m.keys.Escape):
			m.pendingDelete = ""
			return m, nil
		}
		return m, nil
	}

	// Overlays with text entry get the raw key stream.
	if m.edit != nil {
		return m.handleEditKey(msg)
	}
	if m.currentView == ViewUpload {
		return m.handleUploadKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme()

	case key.Matches(msg, m.keys.ViewGallery):
		m.currentView = ViewGallery
		return m, nil

	case key.Matches(msg, m.keys.ViewCarousel):
		m.currentView = ViewCarousel
		if m.autoplay {
			return m, m.activateCarouselItem()
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewUpload):
		m.currentView = ViewUpload
		m.form.focusFirst()
		return m, nil
	}

	switch m.currentView {
	case ViewGallery:
		return m.handleGalleryKey(msg)
	case ViewCarousel:
		return m.handleCarouselKey(msg)
	}
	return m, nil
}

func (m Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-laneCount)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(laneCount)
		return m.withLoadMoreAtEnd()

	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
		return m.withLoadMoreAtEnd()

	case key.Matches(msg, m.keys.LoadMore):
		return m.startLoadMore()

	case key.Matches(msg, m.keys.Refresh):
		m.fetching = true
		m.statusMsg = "refreshing"
		return m, tea.Batch(
			loadInitialCmd(m.ctx, m.manager),
			loadFeaturedCmd(m.ctx, m.store, m.featCol),
		)

	case key.Matches(msg, m.keys.Edit):
		// Refetch first so the overlay opens on the freshest record.
		if item, ok := m.selectedItem(); ok {
			return m, reloadCmd(m.ctx, m.manager, item.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selectedItem(); ok {
			m.pendingDelete = item.ID
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleCarouselKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		if len(m.featured) > 0 {
			m.carouselIdx = (m.carouselIdx - 1 + len(m.featured)) % len(m.featured)
			return m, m.followSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		if len(m.featured) > 0 {
			m.carouselIdx = (m.carouselIdx + 1) % len(m.featured)
			return m, m.followSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.PlayPause):
		if m.deck == nil {
			return m, nil
		}
		if m.deck.ActiveID() == "" {
			return m, m.activateCarouselItem()
		}
		return m, togglePlaybackCmd(m.ctx, m.deck)

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewGallery
		if m.deck != nil {
			ctx := m.ctx
			deck := m.deck
			return m, func() tea.Msg {
				return playbackMsg{err: deck.Pause(ctx)}
			}
		}
		return m, nil
	}
	return m, nil
}

// startLoadMore kicks off pagination unless a fetch is already running
// or the collection is exhausted.
func (m Model) startLoadMore() (tea.Model, tea.Cmd) {
	if m.fetching || !m.snapshot.HasMore {
		return m, nil
	}
	m.fetching = true
	m.statusMsg = "loading more"
	return m, loadMoreCmd(m.ctx, m.manager)
}

// withLoadMoreAtEnd fetches the next page when the selection has walked
// onto the last loaded row.
func (m Model) withLoadMoreAtEnd() (tea.Model, tea.Cmd) {
	if m.selected >= len(m.snapshot.Items)-laneCount {
		return m.startLoadMore()
	}
	return m, nil
}

// followSelection starts playback of the newly selected carousel item
// when autoplay is on or something is already playing; otherwise moving
// through the strip stays silent until the user hits play.
func (m Model) followSelection() tea.Cmd {
	if m.autoplay || (m.deck != nil && m.deck.ActiveID() != "") {
		return m.activateCarouselItem()
	}
	return nil
}

func (m Model) activateCarouselItem() tea.Cmd {
	if m.deck == nil || len(m.featured) == 0 {
		return nil
	}
	item := m.featured[m.carouselIdx]
	return setActiveCmd(m.ctx, m.deck, item.ID, item.MediaURL)
}

func (m *Model) moveSelection(delta int) {
	next := m.selected + delta
	if next < 0 || next >= len(m.snapshot.Items) {
		return
	}
	m.selected = next
}

func (m *Model) clampSelection() {
	if len(m.snapshot.Items) == 0 {
		m.selected = 0
		return
	}
	if m.selected >= len(m.snapshot.Items) {
		m.selected = len(m.snapshot.Items) - 1
	}
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	next := NextTheme(m.theme.Name)
	m.theme = GetTheme(next)
	m.styles = m.theme.Styles()

	prefsPath := m.prefsPath
	log := m.log
	return m, func() tea.Msg {
		p, _ := prefs.Load(prefsPath)
		p.Theme = next
		if err := prefs.Save(prefsPath, p); err != nil {
			log.Warn("saving theme preference failed", zap.Error(err))
		}
		return nil
	}
}
