package where

import (
	"testing"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Downloads()", func() {
			path := Downloads()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cookies()", func() {
			Convey("Absent by default", func() {
				So(Cookies().IsAbsent(), ShouldBeTrue)
			})

			Convey("Found in the config directory", func() {
				lo.Must0(filesystem.API().WriteFile(Favorites(), []byte("[]"), 0644))
				jar := Config() + "/cookies.txt"
				lo.Must0(filesystem.API().WriteFile(jar, []byte("# Netscape HTTP Cookie File"), 0644))
				So(Cookies().MustGet(), ShouldEqual, jar)
			})
		})
	})
}
