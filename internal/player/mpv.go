package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// socketDialTimeout bounds the wait for mpv to create its IPC socket.
const socketDialTimeout = 5 * time.Second

// MPV drives one mpv process over its JSON IPC socket. The process is
// started paused with the media preloading; the file-loaded event moves
// the player to ready.
type MPV struct {
	machine *machine
	log     *zap.Logger

	cmd    *exec.Cmd
	socket string

	connMu sync.Mutex
	conn   net.Conn

	closeOnce sync.Once
}

// NewMPV spawns an mpv process for the given media URL. The returned
// player is uninitialized until mpv reports the file loaded.
func NewMPV(ctx context.Context, mediaURL string, log *zap.Logger) (*MPV, error) {
	if log == nil {
		log = zap.NewNop()
	}
	socket := filepath.Join(os.TempDir(), "reelgrid-mpv-"+uuid.NewString()+".sock")

	cmd := exec.CommandContext(
		ctx,
		"mpv",
		"--no-terminal",
		"--pause",
		"--keep-open=yes",
		"--input-ipc-server="+socket,
		mediaURL,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting mpv: %w", err)
	}

	p := &MPV{
		machine: newMachine(),
		log:     log,
		cmd:     cmd,
		socket:  socket,
	}
	go p.run(ctx)
	return p, nil
}

// run connects to the IPC socket and pumps events until the process or
// context dies. Any exit path destroys the player.
func (p *MPV) run(ctx context.Context) {
	defer p.Destroy()

	conn, err := dialSocket(ctx, p.socket)
	if err != nil {
		p.log.Warn("mpv ipc connect failed", zap.Error(err))
		return
	}
	p.connMu.Lock()
	p.conn = conn
	p.connMu.Unlock()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var event struct {
			Event string `json:"event"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue
		}
		if event.Event == "file-loaded" {
			p.machine.markReady()
		}
	}
}

func dialSocket(ctx context.Context, socket string) (net.Conn, error) {
	deadline := time.Now().Add(socketDialTimeout)
	for {
		conn, err := net.Dial("unix", socket)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("mpv socket %s: %w", socket, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// command sends one IPC command. mpv replies on the same socket but the
// event pump owns reads, so commands are fire-and-forget; failures
// surface as write errors.
func (p *MPV) command(args ...any) error {
	p.connMu.Lock()
	defer p.connMu.Unlock()
	if p.conn == nil {
		return ErrNotReady
	}
	payload, err := json.Marshal(map[string]any{"command": args})
	if err != nil {
		return err
	}
	_, err = p.conn.Write(append(payload, '\n'))
	return err
}

func (p *MPV) Play(ctx context.Context) error {
	if err := p.machine.toActive(); err != nil {
		return err
	}
	return p.command("set_property", "pause", false)
}

func (p *MPV) Pause(ctx context.Context) error {
	if err := p.machine.toPaused(); err != nil {
		return err
	}
	return p.command("set_property", "pause", true)
}

func (p *MPV) SeekStart(ctx context.Context) error {
	if p.machine.current() == StateDestroyed {
		return ErrDestroyed
	}
	return p.command("seek", 0, "absolute")
}

func (p *MPV) State() State {
	return p.machine.current()
}

func (p *MPV) Ready() <-chan struct{} {
	return p.machine.readyCh()
}

// Destroy kills the process and removes the socket. Safe to call more
// than once and from the event pump.
func (p *MPV) Destroy() error {
	if !p.machine.toDestroyed() {
		return nil
	}
	p.closeOnce.Do(func() {
		p.connMu.Lock()
		if p.conn != nil {
			p.conn.Close()
			p.conn = nil
		}
		p.connMu.Unlock()

		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
			_ = p.cmd.Wait()
		}
		os.Remove(p.socket)
	})
	return nil
}

var _ Player = (*MPV)(nil)
