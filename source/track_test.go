package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTrack(t *testing.T) {
	Convey("Track", t, func() {
		track := &Track{ID: "dQw4w9WgXcQ", Title: "Some Song / Live", Duration: 213}

		Convey("String", func() {
			So(track.String(), ShouldEqual, "Some Song / Live")
		})

		Convey("URL", func() {
			So(track.URL(), ShouldEqual, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
		})

		Convey("Dirname", func() {
			So(track.Dirname(), ShouldNotContainSubstring, "/")
		})

		Convey("FormattedDuration", func() {
			So(track.FormattedDuration(), ShouldEqual, "03:33")

			track.Duration = 0
			So(track.FormattedDuration(), ShouldBeEmpty)
		})
	})
}

func TestVariant(t *testing.T) {
	Convey("Variant", t, func() {
		Convey("String with height", func() {
			v := Variant{Ext: "mp4", Height: 720}
			So(v.String(), ShouldEqual, "720p mp4")
		})

		Convey("String without height", func() {
			v := Variant{Ext: "webm"}
			So(v.String(), ShouldEqual, "webm")
		})
	})
}
