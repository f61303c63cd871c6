package query

import (
	"testing"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	// Ensure suggestions are enabled for tests
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		Convey("When remembering queries", func() {
			So(Remember("yorushika", 1), ShouldBeNil)
			So(Remember("yoasobi", 10), ShouldBeNil) // Higher weight

			Convey("Then suggestions should be sorted by rank", func() {
				// Clear memory cache to force read from file
				suggestionCache = make(map[string][]*queryRecord)
				viper.Set(key.SearchShowQuerySuggestions, true)

				s := SuggestMany("yoa")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
				So(s[0], ShouldEqual, "yoasobi")
			})

			Convey("Equal ranks fall back to edit distance", func() {
				So(Remember("lemon cover", 3), ShouldBeNil)
				So(Remember("lemon", 3), ShouldBeNil)

				suggestionCache = make(map[string][]*queryRecord)

				s := SuggestMany("lemon")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
				So(s[0], ShouldEqual, "lemon")
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  YOASOBI  "), ShouldEqual, "yoasobi")
			})
		})
	})
}
