package player

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Factory builds a player for one media URL. The returned player starts
// uninitialized and signals Ready once the media is loaded.
type Factory func(ctx context.Context, mediaURL string) (Player, error)

// retryDelay is the pause before the single playback retry.
const retryDelay = 300 * time.Millisecond

// Deck owns every live player and enforces the single-active rule:
// activating an item pauses and rewinds the previously active one, and
// playback on a still-loading player is deferred until it reports ready.
type Deck struct {
	factory Factory
	log     *zap.Logger
	delay   time.Duration

	mu      sync.Mutex
	players map[string]Player
	active  string
	wg      sync.WaitGroup
}

// NewDeck builds an empty deck. A nil logger disables logging.
func NewDeck(factory Factory, log *zap.Logger) *Deck {
	if log == nil {
		log = zap.NewNop()
	}
	return &Deck{
		factory: factory,
		log:     log,
		delay:   retryDelay,
		players: make(map[string]Player),
	}
}

// SetActive makes the given item the playing one. The previous active
// player is paused and rewound first. If the target player is still
// loading, playback starts as soon as it reports ready; SetActive does
// not block on that.
func (d *Deck) SetActive(ctx context.Context, id, mediaURL string) error {
	d.mu.Lock()
	if d.active == id {
		p := d.players[id]
		d.mu.Unlock()
		if p != nil && p.State() == StatePaused {
			return d.playWithRetry(ctx, id, p)
		}
		return nil
	}

	prevID := d.active
	prev := d.players[prevID]
	p, ok := d.players[id]
	if !ok {
		var err error
		p, err = d.factory(ctx, mediaURL)
		if err != nil {
			d.mu.Unlock()
			return err
		}
		d.players[id] = p
	}
	d.active = id
	d.mu.Unlock()

	if prev != nil {
		d.rest(ctx, prevID, prev)
	}

	select {
	case <-p.Ready():
		return d.playWithRetry(ctx, id, p)
	default:
	}

	// Still loading. Play fires from a watcher goroutine once the media
	// is in, unless the selection has moved on by then.
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		select {
		case <-ctx.Done():
			return
		case <-p.Ready():
		}
		if p.State() == StateDestroyed {
			return
		}
		d.mu.Lock()
		stillActive := d.active == id
		d.mu.Unlock()
		if !stillActive {
			return
		}
		if err := d.playWithRetry(ctx, id, p); err != nil {
			d.log.Warn("deferred playback failed", zap.String("id", id), zap.Error(err))
		}
	}()
	return nil
}

// Pause stops the active player without changing the selection.
func (d *Deck) Pause(ctx context.Context) error {
	d.mu.Lock()
	p := d.players[d.active]
	d.mu.Unlock()
	if p == nil {
		return nil
	}
	return p.Pause(ctx)
}

// Toggle flips the active player between playing and paused.
func (d *Deck) Toggle(ctx context.Context) error {
	d.mu.Lock()
	id := d.active
	p := d.players[id]
	d.mu.Unlock()
	if p == nil {
		return nil
	}
	if p.State() == StateActive {
		return p.Pause(ctx)
	}
	return d.playWithRetry(ctx, id, p)
}

// ActiveState reports the state of the active player, StateDestroyed
// when nothing is selected.
func (d *Deck) ActiveState() State {
	d.mu.Lock()
	p := d.players[d.active]
	d.mu.Unlock()
	if p == nil {
		return StateDestroyed
	}
	return p.State()
}

// ActiveID reports the currently selected item, "" when none.
func (d *Deck) ActiveID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// CloseAll destroys every player. Called on unmount; the deck is not
// usable afterwards except to be garbage collected.
func (d *Deck) CloseAll() {
	d.mu.Lock()
	players := d.players
	d.players = make(map[string]Player)
	d.active = ""
	d.mu.Unlock()

	for id, p := range players {
		if err := p.Destroy(); err != nil {
			d.log.Warn("player teardown failed", zap.String("id", id), zap.Error(err))
		}
	}
	d.wg.Wait()
}

// rest pauses the outgoing player and rewinds it so the next activation
// starts from the beginning.
func (d *Deck) rest(ctx context.Context, id string, p Player) {
	if err := p.Pause(ctx); err != nil {
		d.log.Warn("pausing previous player failed", zap.String("id", id), zap.Error(err))
		return
	}
	if err := p.SeekStart(ctx); err != nil {
		d.log.Warn("rewinding previous player failed", zap.String("id", id), zap.Error(err))
	}
}

// playWithRetry starts playback, retrying once after a short delay. A
// first attempt can race the backend settling right after load.
func (d *Deck) playWithRetry(ctx context.Context, id string, p Player) error {
	err := p.Play(ctx)
	if err == nil {
		return nil
	}
	d.log.Debug("playback attempt failed, retrying once",
		zap.String("id", id), zap.Error(err))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.delay):
	}
	return p.Play(ctx)
}
