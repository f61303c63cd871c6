package resolver

import (
	"context"
	"testing"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/where"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func withFakeMuxer(fn func()) {
	previous := locateMuxer
	locateMuxer = func() mo.Option[string] { return mo.Some("/usr/bin/ffmpeg") }
	defer func() { locateMuxer = previous }()
	fn()
}

func TestMaterialize(t *testing.T) {
	Convey("Materialize", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		track := &source.Track{ID: "abc", Title: "out"}

		Convey("Fails fast without a muxer", func() {
			previous := locateMuxer
			locateMuxer = func() mo.Option[string] { return mo.None[string]() }
			defer func() { locateMuxer = previous }()

			dl := &fakeDownloader{}
			_, _, err := Materialize(context.Background(), track, dl)

			So(err, ShouldEqual, ErrMuxerMissing)
			So(dl.callCount(), ShouldEqual, 0)
		})

		Convey("First strategy with output wins", func() {
			withFakeMuxer(func() {
				dl := &fakeDownloader{filename: "out.mp4"}
				ws, path, err := Materialize(context.Background(), track, dl)

				So(err, ShouldBeNil)
				So(path, ShouldEndWith, "out.mp4")
				So(dl.callCount(), ShouldEqual, 1)

				ws.Purge()
			})
		})

		Convey("Falls back to the largest file for unexpected names", func() {
			withFakeMuxer(func() {
				dl := &fakeDownloader{filename: "Differently_Named.webm"}
				ws, path, err := Materialize(context.Background(), track, dl)

				So(err, ShouldBeNil)
				So(path, ShouldEndWith, "Differently_Named.webm")

				ws.Purge()
			})
		})

		Convey("Exhausted strategies yield ErrMaterialization and no residue", func() {
			withFakeMuxer(func() {
				dl := &fakeDownloader{fail: true}
				_, _, err := Materialize(context.Background(), track, dl)

				So(err, ShouldEqual, ErrMaterialization)
				So(dl.callCount(), ShouldEqual, len(strategies))

				entries, readErr := filesystem.API().ReadDir(where.Downloads())
				So(readErr, ShouldBeNil)
				So(entries, ShouldBeEmpty)
			})
		})
	})
}

func TestWorkspace(t *testing.T) {
	Convey("Workspace", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		Convey("Purge removes the directory and registry entry", func() {
			ws, err := NewWorkspace()
			So(err, ShouldBeNil)

			exists, _ := filesystem.API().DirExists(ws.Dir)
			So(exists, ShouldBeTrue)

			ws.Purge()

			exists, _ = filesystem.API().DirExists(ws.Dir)
			So(exists, ShouldBeFalse)
		})

		Convey("Sweep removes leftovers but keeps live workspaces", func() {
			stale := where.Downloads() + "/deadbeef-0000"
			So(filesystem.API().MkdirAll(stale, 0o755), ShouldBeNil)

			live, err := NewWorkspace()
			So(err, ShouldBeNil)
			defer live.Purge()

			Sweep()

			exists, _ := filesystem.API().DirExists(stale)
			So(exists, ShouldBeFalse)

			exists, _ = filesystem.API().DirExists(live.Dir)
			So(exists, ShouldBeTrue)
		})
	})
}
