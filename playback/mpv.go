package playback

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kyoku-cli/kyoku/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements the Sink interface using mpv's JSON-IPC protocol.
type MPV struct {
	// mu serializes IPC traffic and guards the process state fields:
	// Play runs on one goroutine while the end-of-media watch and stall
	// check read the same fields from their own.
	mu         sync.Mutex
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	tickerStop chan struct{} // signals ticker to stop
}

// NewMPV creates a new MPV sink instance (does not start playback).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// Play starts playback of the given target. If mpv is already running,
// it loads the new target into the existing instance via IPC.
func (m *MPV) Play(target string, title string) error {
	// Sanitize the target to prevent flag injection
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	// Sanitize title to prevent IPC issues
	safeTitle := sanitizeTitle(title)

	if m.IsRunning() {
		log.Infof("loading %s into running mpv", safeTitle)
		if _, err = m.sendCommand([]interface{}{"loadfile", safeTarget, "replace"}); err != nil {
			return fmt.Errorf("load into running mpv: %w", err)
		}
		return m.Set("force-media-title", safeTitle)
	}

	// Generate a random socket path using os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/)
	m.mu.Lock()
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("kyoku-%x.sock", randomBytes))
	}
	socketPath := m.socketPath
	m.mu.Unlock()

	// Build mpv arguments.
	// CRUCIAL: Pass ONLY the socket, title, and target.
	// Do not force --vo, --profile or --hwdec; the user's mpv.conf stays in charge.
	// --keep-open keeps the engine at the last frame so end-of-media is
	// observable via eof-reached instead of the process disappearing.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--title=%s", safeTitle), // Some mpv builds only respect --title
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		safeTarget,
	}

	cmd := exec.Command("mpv", args...)

	// Detach from parent process group to prevent cascading shell panics.
	cmd.SysProcAttr = sysProcAttr()

	// Disable standard pipes to prevent resource leaks.
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Background goroutine to reap the process and prevent zombies
	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	m.mu.Lock()
	m.cmd = cmd
	m.exited = exited
	m.mu.Unlock()

	// Wait for the IPC socket to become available
	if err := waitForSocket(socketPath, exited); err != nil {
		// If socket never became ready, kill the orphaned process
		if cmd.Process != nil {
			select {
			case <-exited:
				// Already exited
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// socket reads the IPC socket path under the lock.
func (m *MPV) socket() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.socketPath
}

// exitSignal reads the current process exit channel under the lock.
func (m *MPV) exitSignal() chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exited
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exitSignal()
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func waitForSocket(socketPath string, exited <-chan struct{}) error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		// Check if process already exited
		select {
		case <-exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", socketPath, socketWaitRetries)
}

// State reports the engine's current lifecycle state by inspecting
// mpv properties over IPC.
func (m *MPV) State() (State, error) {
	if m.socket() == "" {
		return StateNothing, nil
	}

	select {
	case <-m.exitSignal():
		return StateStopped, nil
	default:
	}

	if eof, err := m.getBoolProperty("eof-reached"); err == nil && eof {
		return StateEnded, nil
	}

	idle, err := m.getBoolProperty("idle-active")
	if err != nil {
		return StateError, err
	}
	if idle {
		// Idle with no file loaded means playback never started or was aborted.
		return StateStopped, nil
	}

	if paused, err := m.getBoolProperty("pause"); err == nil && paused {
		return StatePaused, nil
	}

	// A loaded file without a time position is still buffering.
	if active, err := m.hasActivePlayback(); err == nil && !active {
		return StateOpening, nil
	}

	return StatePlaying, nil
}

// Position returns the current playback position in seconds.
func (m *MPV) Position() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// Duration returns the total duration of the current media in seconds.
func (m *MPV) Duration() (float64, error) {
	return m.getFloatProperty("duration")
}

// hasActivePlayback checks if mpv currently has active media playing.
// Returns false (not error) when the property is unavailable, meaning nothing is loaded.
func (m *MPV) hasActivePlayback() (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", "time-pos"})
	if err != nil {
		// "property unavailable" just means nothing is loaded yet
		if strings.Contains(err.Error(), "property unavailable") {
			return false, nil
		}
		return false, err
	}
	return data != nil, nil
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socket() == "" {
		return false
	}

	// Fast check: process already exited?
	select {
	case <-m.exitSignal():
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// StartTicker starts a background ticker that polls the player for time-pos
// and calls the given callback every second.
func (m *MPV) StartTicker(callback func(position int, duration int)) {
	m.mu.Lock()
	if m.tickerStop != nil {
		// Ticker already running
		m.mu.Unlock()
		return
	}

	stop := make(chan struct{})
	m.tickerStop = stop
	exited := m.exited
	m.mu.Unlock()

	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-exited:
				// Player exited, stop ticker
				m.mu.Lock()
				if m.tickerStop == stop {
					m.tickerStop = nil
				}
				m.mu.Unlock()
				return
			case <-ticker.C:
				if !m.IsRunning() {
					continue
				}

				pos, err := m.Position()
				if err != nil {
					continue
				}

				dur, err := m.Duration()
				if err != nil {
					// Duration might be unknown for streams, just send 0 or keep polling
					dur = 0
				}

				callback(int(pos), int(dur))
			}
		}
	}()
}

// StopTicker stops the background ticker if it's running.
func (m *MPV) StopTicker() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tickerStop != nil {
		close(m.tickerStop)
		m.tickerStop = nil
	}
}

// Stop unloads the current media, leaving mpv idle.
func (m *MPV) Stop() error {
	_, err := m.sendCommand([]interface{}{"stop"})
	return err
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	m.StopTicker()

	socketPath := m.socket()
	if socketPath == "" {
		return nil
	}

	// Try graceful quit via IPC
	_, _ = m.sendCommand([]interface{}{"quit"})

	// Wait for process to exit (with timeout)
	select {
	case <-m.exitSignal():
		// Clean exit
	case <-time.After(3 * time.Second):
		// Force kill if graceful quit didn't work
		m.mu.Lock()
		cmd := m.cmd
		m.mu.Unlock()
		_ = killProcess(cmd)
	}

	// Clean up the socket file
	_ = os.Remove(socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socket()
}

// TogglePause toggles the pause state
func (m *MPV) TogglePause() error {
	_, err := m.sendCommand([]interface{}{"cycle", "pause"})
	return err
}

// Set a property
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// getBoolProperty is a helper to retrieve a bool mpv property via IPC.
func (m *MPV) getBoolProperty(name string) (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return false, err
	}

	val, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a target is safe to pass to mpv.
// Prevents flag injection from untrusted extraction output.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	// Reject control characters
	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: URLs must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	// If it contains "://", validate as URL
	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}

// sanitizeTitle cleanups up the title for MPV
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	// Remove null bytes
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
