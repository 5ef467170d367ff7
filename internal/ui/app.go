// Package ui provides the Bubble Tea terminal interface for reelgrid.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/reelgrid/reelgrid/internal/gallery"
	"github.com/reelgrid/reelgrid/internal/player"
	"github.com/reelgrid/reelgrid/internal/prefs"
	"github.com/reelgrid/reelgrid/internal/reel"
	"github.com/reelgrid/reelgrid/internal/upload"
)

// View represents the current active view.
type View int

const (
	ViewGallery View = iota
	ViewCarousel
	ViewUpload
)

// Options configures the UI.
type Options struct {
	Context            context.Context
	Manager            *gallery.Manager
	Store              gallery.Store
	Deck               *player.Deck
	Uploader           upload.Service
	ReelsCollection    string
	FeaturedCollection string
	ThemeName          string
	Autoplay           bool
	PrefsPath          string
	Log                *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	manager   *gallery.Manager
	store     gallery.Store
	deck      *player.Deck
	uploader  upload.Service
	reelsCol  string
	featCol   string
	prefsPath string
	log       *zap.Logger

	// UI state
	theme       Theme
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot    gallery.Snapshot
	featured    []reel.Item
	lastUpdated time.Time

	// Gallery state
	selected  int // index into snapshot.Items
	fetching  bool
	statusMsg string
	banner    string

	// Carousel state
	carouselIdx int
	autoplay    bool

	// Upload form state
	form uploadForm

	// Edit overlay state
	edit *editForm

	// Delete confirmation
	pendingDelete string // item id awaiting confirmation

	// Help overlay
	showHelp bool

	keys keyMap
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	theme := GetTheme(themeName)
	return Model{
		ctx:       ctx,
		manager:   opts.Manager,
		store:     opts.Store,
		deck:      opts.Deck,
		uploader:  opts.Uploader,
		reelsCol:  opts.ReelsCollection,
		featCol:   opts.FeaturedCollection,
		prefsPath: prefsPath,
		log:       log,
		theme:     theme,
		styles:    theme.Styles(),
		autoplay:  opts.Autoplay,
		keys:      DefaultKeyMap(),
		form:      newUploadForm(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		loadInitialCmd(m.ctx, m.manager),
		loadFeaturedCmd(m.ctx, m.store, m.featCol),
		tickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		// Picks up merges from the background refresher and live deck
		// state, which otherwise only repaint on user mutations.
		m.snapshot = m.manager.Snapshot()
		m.clampSelection()
		return m, tickCmd()

	case galleryLoadedMsg:
		m.fetching = false
		m.snapshot = m.manager.Snapshot()
		m.lastUpdated = time.Now()
		if msg.err != nil {
			m.banner = "load failed: " + describeError(msg.err) + " (r to retry)"
		} else {
			m.banner = ""
			m.clampSelection()
		}
		return m, nil

	case featuredLoadedMsg:
		if msg.err == nil {
			m.featured = msg.items
			if m.carouselIdx >= len(m.featured) {
				m.carouselIdx = 0
			}
		}
		return m, nil

	case editReadyMsg:
		if msg.err != nil {
			// Stale is better than nothing; open on the cached item.
			if item, ok := m.selectedItem(); ok {
				form := newEditForm(item)
				m.edit = &form
			}
			return m, nil
		}
		m.snapshot = m.manager.Snapshot()
		form := newEditForm(msg.item)
		m.edit = &form
		return m, nil

	case editedMsg:
		if msg.err != nil {
			m.banner = "edit failed: " + describeError(msg.err)
			return m, nil
		}
		m.snapshot = m.manager.Snapshot()
		m.edit = nil
		m.statusMsg = "saved " + msg.item.Title
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.banner = "delete failed: " + describeError(msg.err)
			return m, nil
		}
		m.snapshot = m.manager.Snapshot()
		m.clampSelection()
		m.statusMsg = "deleted"
		return m, nil

	case submittedMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.form.err = msg.err
			return m, nil
		}
		m.form = newUploadForm()
		m.statusMsg = "published " + msg.item.Title
		m.currentView = ViewGallery
		m.fetching = true
		return m, tea.Batch(
			loadInitialCmd(m.ctx, m.manager),
			loadFeaturedCmd(m.ctx, m.store, m.featCol),
		)

	case playbackMsg:
		if msg.err != nil {
			m.banner = "playback: " + msg.err.Error()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Run starts the UI and blocks until the user quits or the context is
// cancelled. The player deck is torn down on the way out.
func Run(opts Options) error {
	model := New(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := program.Run()
	if opts.Deck != nil {
		opts.Deck.CloseAll()
	}
	// A cancelled context is an orderly shutdown, not a failure.
	if opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
