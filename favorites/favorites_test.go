package favorites

import (
	"testing"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFavorites(t *testing.T) {
	Convey("Favorites", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		track := &source.Track{ID: "abc", Title: "Song", Duration: 213, Channel: "Ch"}

		// The package-level cacher keeps its data in memory across Convey
		// leaf re-runs, unaffected by the filesystem reset above.
		Remove(track.ID)

		Convey("Add then Get", func() {
			So(Add(track), ShouldBeNil)

			saved, err := Get()
			So(err, ShouldBeNil)
			So(saved, ShouldContainKey, "abc")
			So(saved["abc"].Title, ShouldEqual, "Song")

			Convey("Duplicates by id are rejected", func() {
				err := Add(&source.Track{ID: "abc", Title: "Same Song Reuploaded"})
				So(err, ShouldNotBeNil)

				saved, _ := Get()
				So(saved["abc"].Title, ShouldEqual, "Song")
			})

			Convey("Has", func() {
				So(Has("abc"), ShouldBeTrue)
				So(Has("missing"), ShouldBeFalse)
			})

			Convey("Remove", func() {
				So(Remove("abc"), ShouldBeNil)
				So(Has("abc"), ShouldBeFalse)

				Convey("Removing an unknown id is a no-op", func() {
					So(Remove("missing"), ShouldBeNil)
				})
			})
		})

		Convey("Record round-trips into a track", func() {
			So(Add(track), ShouldBeNil)

			records, err := All()
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 1)
			So(records[0].Track(), ShouldResemble, track)
		})
	})
}
