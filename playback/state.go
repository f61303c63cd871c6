package playback

// State describes the lifecycle phase of a playback engine.
type State int

const (
	// StateNothing means no media has been loaded yet.
	StateNothing State = iota
	// StateOpening means the engine is still buffering or probing the media.
	StateOpening
	// StatePlaying means media is actively rendering.
	StatePlaying
	// StatePaused means playback is suspended but resumable.
	StatePaused
	// StateStopped means playback halted without reaching the end of the media.
	StateStopped
	// StateEnded means the media played through to its end.
	StateEnded
	// StateError means the engine reported a playback failure.
	StateError
)

func (s State) String() string {
	switch s {
	case StateNothing:
		return "nothing"
	case StateOpening:
		return "opening"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateEnded:
		return "ended"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Unhealthy reports whether the state indicates playback is not making
// progress and never will without intervention.
func (s State) Unhealthy() bool {
	return s == StateStopped || s == StateError
}
