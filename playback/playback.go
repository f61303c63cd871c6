// Package playback defines a unified abstraction layer for media playback engines.
// The architecture supports multiple backends, with the primary implementation targeting 'mpv' via its JSON-IPC interface.
package playback

// Sink encapsulates the required capabilities for a media playback backend.
type Sink interface {
	// Play starts playback of the given target (URL or local file) with the
	// specified title. If a player instance is already running, it loads the
	// new target into it.
	Play(target string, title string) error

	// TogglePause inverts the current playback suspension state.
	TogglePause() error

	// State reports the engine's current lifecycle state.
	State() (State, error)

	// Position retrieves the current absolute playback position in seconds.
	Position() (float64, error)

	// Duration retrieves the total temporal length of the active media file in seconds.
	Duration() (float64, error)

	// Seek transitions the playback position to a specific absolute timestamp in seconds.
	Seek(seconds float64) error

	// IsRunning validates the liveness of the underlying playback process or handler.
	IsRunning() bool

	// Stop unloads the current media without terminating the engine process.
	Stop() error

	// Close terminates the playback engine and releases all associated system resources.
	Close() error

	// Socket retrieves the identifier for the Inter-Process Communication (IPC) channel.
	Socket() string

	// StartTicker initializes a background synchronization task to poll playback metrics.
	// It executes the provided callback at regular intervals (typically 1Hz) with current state data.
	StartTicker(callback func(position int, duration int))

	// StopTicker terminates the background synchronization task.
	StopTicker()

	// Wait returns a channel that is closed when the playback session terminates.
	Wait() <-chan struct{}
}
