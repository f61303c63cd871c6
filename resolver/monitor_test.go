package resolver

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/kyoku-cli/kyoku/playback"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMonitorArm(t *testing.T) {
	Convey("Monitor.Arm", t, func() {
		sink := newFakeSink()
		monitor := NewMonitor(sink)

		var fired atomic.Int32
		current := func() bool { return true }

		Convey("Does not fire while playback is healthy", func() {
			sink.setState(playback.StatePlaying)

			monitor.Arm(20*time.Millisecond, current, func() { fired.Add(1) })
			time.Sleep(80 * time.Millisecond)

			So(fired.Load(), ShouldEqual, 0)
		})

		Convey("Fires exactly once on a stalled sink", func() {
			sink.setState(playback.StateError)

			monitor.Arm(20*time.Millisecond, current, func() { fired.Add(1) })
			time.Sleep(100 * time.Millisecond)

			So(fired.Load(), ShouldEqual, 1)
		})

		Convey("Is a no-op for a superseded attempt", func() {
			sink.setState(playback.StateStopped)

			monitor.Arm(20*time.Millisecond, func() bool { return false }, func() { fired.Add(1) })
			time.Sleep(80 * time.Millisecond)

			So(fired.Load(), ShouldEqual, 0)
		})
	})
}

func TestMonitorWatchEnd(t *testing.T) {
	Convey("Monitor.WatchEnd", t, func() {
		sink := newFakeSink()
		monitor := NewMonitor(sink)

		stop := make(chan struct{})
		defer close(stop)

		var ended atomic.Int32
		go monitor.WatchEnd(10*time.Millisecond, stop, func() { ended.Add(1) })

		Convey("Reports end of media once per item", func() {
			sink.setState(playback.StateEnded)
			time.Sleep(60 * time.Millisecond)
			So(ended.Load(), ShouldEqual, 1)

			Convey("And re-arms after the next item starts", func() {
				sink.setState(playback.StatePlaying)
				time.Sleep(40 * time.Millisecond)

				sink.setState(playback.StateEnded)
				time.Sleep(60 * time.Millisecond)

				So(ended.Load(), ShouldEqual, 2)
			})
		})

		Convey("Stays silent during playback", func() {
			sink.setState(playback.StatePlaying)
			time.Sleep(50 * time.Millisecond)
			So(ended.Load(), ShouldEqual, 0)
		})
	})
}
