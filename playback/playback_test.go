package playback

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestState(t *testing.T) {
	Convey("State", t, func() {
		Convey("String", func() {
			So(StatePlaying.String(), ShouldEqual, "playing")
			So(StateEnded.String(), ShouldEqual, "ended")
			So(State(99).String(), ShouldEqual, "unknown")
		})

		Convey("Unhealthy", func() {
			So(StateStopped.Unhealthy(), ShouldBeTrue)
			So(StateError.Unhealthy(), ShouldBeTrue)
			So(StatePlaying.Unhealthy(), ShouldBeFalse)
			So(StatePaused.Unhealthy(), ShouldBeFalse)
			So(StateEnded.Unhealthy(), ShouldBeFalse)
		})
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Accepts http and https URLs", func() {
			for _, raw := range []string{"http://example.com/v.mp4", "https://example.com/v.mp4"} {
				got, err := sanitizeMediaTarget(raw)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, raw)
			}
		})

		Convey("Accepts local file paths", func() {
			got, err := sanitizeMediaTarget("/tmp/downloads/abc/song.mp4")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "/tmp/downloads/abc/song.mp4")
		})

		Convey("Rejects flag-looking targets", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects unsupported schemes", func() {
			_, err := sanitizeMediaTarget("ftp://example.com/v.mp4")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects control characters", func() {
			_, err := sanitizeMediaTarget("https://example.com/\n--evil")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSanitizeTitle(t *testing.T) {
	Convey("sanitizeTitle", t, func() {
		So(sanitizeTitle("a\nb\tc"), ShouldEqual, "a b c")
		So(sanitizeTitle("  trimmed "), ShouldEqual, "trimmed")
	})
}

func TestMPVState(t *testing.T) {
	Convey("MPV without a socket", t, func() {
		mpv := NewMPV()

		Convey("Reports StateNothing", func() {
			state, err := mpv.State()
			So(err, ShouldBeNil)
			So(state, ShouldEqual, StateNothing)
		})

		Convey("Is not running", func() {
			So(mpv.IsRunning(), ShouldBeFalse)
		})

		Convey("Tolerates concurrent observers", func() {
			// State, the end-of-media watch and the ticker all poke the
			// sink from their own goroutines while the UI drives it.
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						_, _ = mpv.State()
						_ = mpv.IsRunning()
						_ = mpv.Socket()
						_ = mpv.Wait()
						mpv.StartTicker(func(int, int) {})
						mpv.StopTicker()
					}
				}()
			}
			wg.Wait()

			So(mpv.IsRunning(), ShouldBeFalse)
		})
	})
}
