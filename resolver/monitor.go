package resolver

import (
	"time"

	"github.com/kyoku-cli/kyoku/playback"
)

// Monitor schedules health checks against a playback sink.
//
// Two distinct concerns live here. The stall check is a one-shot timer
// armed per play attempt: shortly after start it inspects the sink once
// and fires the callback only when playback never got going. The
// end-of-media watch is a recurring poll for the lifetime of the sink
// that reports natural completion, surviving resolution attempts.
type Monitor struct {
	sink playback.Sink
}

// NewMonitor wraps a sink for health checking.
func NewMonitor(sink playback.Sink) *Monitor {
	return &Monitor{sink: sink}
}

// Arm schedules the one-shot stall check. After the given delay the
// sink state is inspected once; onStalled fires only when the state is
// stopped or errored AND isCurrent still holds, so a superseded play
// attempt's check becomes a no-op.
func (m *Monitor) Arm(delay time.Duration, isCurrent func() bool, onStalled func()) {
	time.AfterFunc(delay, func() {
		if !isCurrent() {
			return
		}

		state, err := m.sink.State()
		if err != nil || state.Unhealthy() {
			onStalled()
		}
	})
}

// WatchEnd polls the sink until stop is closed, invoking onEnded once each
// time the media plays through to its end. Leaving the ended state re-arms
// the watch for the next item.
//
// Blocks until stop is closed; run it on its own goroutine.
func (m *Monitor) WatchEnd(interval time.Duration, stop <-chan struct{}, onEnded func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var reported bool
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			state, err := m.sink.State()
			if err != nil {
				continue
			}

			if state == playback.StateEnded {
				if !reported {
					reported = true
					onEnded()
				}
				continue
			}

			reported = false
		}
	}
}
