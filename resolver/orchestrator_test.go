package resolver

import (
	"testing"
	"time"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/playback"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/where"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

// waitFor polls until the condition holds or the deadline passes.
func waitFor(condition func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return condition()
}

// collect drains events matching the kind until one arrives or times out.
func collect(events <-chan Event, kind EventKind) (Event, bool) {
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Kind == kind {
				return e, true
			}
		case <-deadline:
			return Event{}, false
		}
	}
}

func TestOrchestrator(t *testing.T) {
	Convey("Orchestrator", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		viper.Set(key.ResolverHealthCheckDelay, 40)
		viper.Set(key.ResolverProbeDirect, false)
		defer viper.Set(key.ResolverHealthCheckDelay, nil)

		previous := locateMuxer
		locateMuxer = func() mo.Option[string] { return mo.Some("/usr/bin/ffmpeg") }
		defer func() { locateMuxer = previous }()

		track := &source.Track{ID: "abc", Title: "Song"}
		direct := source.Variant{
			URL:      "https://cdn.example.com/v.mp4",
			Protocol: "https",
			Ext:      "mp4",
			HasAudio: true,
			HasVideo: true,
			Height:   720,
		}
		manifest := source.Variant{
			URL:      "https://cdn.example.com/master.m3u8",
			Protocol: "m3u8_native",
			Ext:      "mp4",
			HasAudio: true,
			HasVideo: true,
		}

		Convey("ResolveAndPlay never blocks the caller", func() {
			catalog := &fakeCatalog{variants: []source.Variant{direct}, delay: 300 * time.Millisecond}
			dl := &fakeDownloader{delay: 300 * time.Millisecond}
			sink := newFakeSink()

			o := New(catalog, dl, sink)
			defer o.Close()

			started := time.Now()
			o.ResolveAndPlay(track)
			So(time.Since(started), ShouldBeLessThan, 100*time.Millisecond)
		})

		Convey("A healthy direct stream never falls back", func() {
			catalog := &fakeCatalog{variants: []source.Variant{direct}}
			dl := &fakeDownloader{}
			sink := newFakeSink()

			o := New(catalog, dl, sink)
			defer o.Close()

			o.ResolveAndPlay(track)

			event, ok := collect(o.Events(), EventPlayingDirect)
			So(ok, ShouldBeTrue)
			So(event.Target, ShouldEqual, direct.URL)

			// Outlive the stall check; the sink stays healthy.
			time.Sleep(120 * time.Millisecond)
			So(dl.callCount(), ShouldEqual, 0)
			So(sink.playedTargets(), ShouldResemble, []string{direct.URL})
		})

		Convey("Manifest-only variant sets are materialized", func() {
			catalog := &fakeCatalog{variants: []source.Variant{manifest}}
			dl := &fakeDownloader{filename: "Song.mp4"}
			sink := newFakeSink()

			o := New(catalog, dl, sink)
			defer o.Close()

			o.ResolveAndPlay(track)

			event, ok := collect(o.Events(), EventPlayingLocal)
			So(ok, ShouldBeTrue)
			So(event.Target, ShouldEndWith, "Song.mp4")
			So(dl.callCount(), ShouldEqual, 1)
		})

		Convey("A stalled direct stream falls back exactly once", func() {
			catalog := &fakeCatalog{variants: []source.Variant{direct}}
			dl := &fakeDownloader{filename: "Song.mp4"}
			sink := newFakeSink()

			o := New(catalog, dl, sink)
			defer o.Close()

			o.ResolveAndPlay(track)

			_, ok := collect(o.Events(), EventPlayingDirect)
			So(ok, ShouldBeTrue)

			sink.setState(playback.StateError)

			event, ok := collect(o.Events(), EventPlayingLocal)
			So(ok, ShouldBeTrue)
			So(event.Target, ShouldEndWith, "Song.mp4")

			time.Sleep(120 * time.Millisecond)
			So(dl.callCount(), ShouldEqual, 1)
		})

		Convey("A superseded stall check never touches the new session", func() {
			first := &source.Track{ID: "first", Title: "First"}
			second := &source.Track{ID: "second", Title: "Second"}

			catalog := &fakeCatalog{variants: []source.Variant{direct}}
			dl := &fakeDownloader{}
			sink := newFakeSink()

			o := New(catalog, dl, sink)
			defer o.Close()

			o.ResolveAndPlay(first)
			So(waitFor(func() bool { return len(sink.playedTargets()) == 1 }), ShouldBeTrue)

			// Supersede before the first attempt's stall check fires, with
			// the sink in a state that would trigger it.
			sink.setState(playback.StateError)
			o.ResolveAndPlay(second)

			So(waitFor(func() bool { return len(sink.playedTargets()) == 2 }), ShouldBeTrue)

			time.Sleep(120 * time.Millisecond)
			So(dl.callCount(), ShouldEqual, 0)
		})

		Convey("Unplayable tracks surface a failure and leave no residue", func() {
			catalog := &fakeCatalog{variants: []source.Variant{manifest}}
			dl := &fakeDownloader{fail: true}
			sink := newFakeSink()

			o := New(catalog, dl, sink)
			defer o.Close()

			o.ResolveAndPlay(track)

			event, ok := collect(o.Events(), EventFailed)
			So(ok, ShouldBeTrue)
			So(event.Message, ShouldContainSubstring, "Song")
		})

		Convey("Configuration writes during resolution leave the worker undisturbed", func() {
			catalog := &fakeCatalog{variants: []source.Variant{direct}, delay: 50 * time.Millisecond}
			dl := &fakeDownloader{}
			sink := newFakeSink()

			o := New(catalog, dl, sink)
			defer o.Close()

			o.ResolveAndPlay(track)

			// Hammer the shared configuration while the worker resolves.
			// The worker only sees the snapshot taken at request time.
			writesDone := make(chan struct{})
			go func() {
				defer close(writesDone)
				for i := 0; i < 200; i++ {
					viper.Set(key.SearchKaraokeMode, i%2 == 0)
					viper.Set(key.ResolverPreferredContainer, "webm")
				}
				viper.Set(key.SearchKaraokeMode, nil)
				viper.Set(key.ResolverPreferredContainer, nil)
			}()

			event, ok := collect(o.Events(), EventPlayingDirect)
			So(ok, ShouldBeTrue)
			So(event.Target, ShouldEqual, direct.URL)

			<-writesDone
		})

		Convey("Close joins the in-flight download before purging", func() {
			catalog := &fakeCatalog{variants: []source.Variant{manifest}}
			dl := &fakeDownloader{filename: "Song.mp4", delay: 150 * time.Millisecond}
			sink := newFakeSink()

			o := New(catalog, dl, sink)

			o.ResolveAndPlay(track)

			// Let the worker enter the download, then shut down under it.
			time.Sleep(40 * time.Millisecond)
			o.Close()

			So(dl.callCount(), ShouldEqual, 1)

			// Nothing may survive shutdown: the download finished before
			// the purge, so no workspace can be recreated afterwards.
			entries, err := filesystem.API().ReadDir(where.Downloads())
			if err == nil {
				So(entries, ShouldBeEmpty)
			}
		})

		Convey("Extraction failures fall through to materialization", func() {
			catalog := &fakeCatalog{err: ErrExtraction}
			dl := &fakeDownloader{filename: "Song.mp4"}
			sink := newFakeSink()

			o := New(catalog, dl, sink)
			defer o.Close()

			o.ResolveAndPlay(track)

			_, ok := collect(o.Events(), EventPlayingLocal)
			So(ok, ShouldBeTrue)
		})
	})
}
