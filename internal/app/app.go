package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/reelgrid/reelgrid/internal/appwrite"
	"github.com/reelgrid/reelgrid/internal/config"
	"github.com/reelgrid/reelgrid/internal/gallery"
	"github.com/reelgrid/reelgrid/internal/player"
	"github.com/reelgrid/reelgrid/internal/prefs"
	"github.com/reelgrid/reelgrid/internal/reel"
	"github.com/reelgrid/reelgrid/internal/ui"
)

// Options configure the reelgrid application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/reelgrid/prefs.toml
	Project      string // overrides the config file when set
	RefreshEvery int    // seconds; zero uses default
}

// Run boots the reelgrid TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Project != "" {
		cfg.Project = opts.Project
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := appwrite.NewClient(cfg.Endpoint, cfg.Project, cfg.DatabaseID, cfg.BucketID)
	if err != nil {
		return fmt.Errorf("init appwrite client: %w", err)
	}
	// Auth: prefer an API key; otherwise sign in with an email session
	// when credentials are in the environment. Anonymous works too for
	// read access on public collections.
	if cfg.APIKey != "" {
		client.SetKey(cfg.APIKey)
	} else if email := os.Getenv("REELGRID_EMAIL"); email != "" {
		if _, err := client.CreateEmailSession(ctx, email, os.Getenv("REELGRID_PASSWORD")); err != nil {
			return fmt.Errorf("sign in: %w", err)
		}
		if user, err := client.CurrentUser(ctx); err == nil {
			log.Info("signed in", zap.String("user", user.Email))
		}
		defer func() {
			if err := client.DeleteSession(context.Background()); err != nil {
				log.Warn("sign out failed", zap.Error(err))
			}
		}()
	}

	manager := gallery.NewManager(client, cfg.ReelsCollection, cfg.PageSize, log)
	if userPrefs.Category != "" {
		if reel.ValidCategory(userPrefs.Category) {
			manager.SetCategory(userPrefs.Category)
		} else {
			log.Warn("ignoring unknown category preference", zap.String("category", userPrefs.Category))
		}
	}

	deck := player.NewDeck(func(ctx context.Context, mediaURL string) (player.Player, error) {
		return player.NewMPV(ctx, mediaURL, log)
	}, log)

	interval := defaultRefreshInterval
	if opts.RefreshEvery > 0 {
		interval = time.Duration(opts.RefreshEvery) * time.Second
	}
	StartRefresher(ctx, manager, log, interval)

	uiOpts := ui.Options{
		Context:            ctx,
		Manager:            manager,
		Store:              client,
		Deck:               deck,
		Uploader:           client,
		ReelsCollection:    cfg.ReelsCollection,
		FeaturedCollection: cfg.FeaturedCollection,
		ThemeName:          userPrefs.Theme,
		Autoplay:           userPrefs.Autoplay,
		PrefsPath:          opts.PrefsPath,
		Log:                log,
	}
	return ui.Run(uiOpts)
}

// newLogger builds a JSON file logger so the TUI owns the terminal.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{cfg.LogPath()}
	zcfg.ErrorOutputPaths = []string{cfg.LogPath()}
	return zcfg.Build()
}
