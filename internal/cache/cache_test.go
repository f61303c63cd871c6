package cache

import (
	"testing"
	"time"

	"github.com/kyoku-cli/kyoku/filesystem"

	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestGenerateKey(t *testing.T) {
	Convey("GenerateKey", t, func() {
		Convey("is deterministic and case-insensitive", func() {
			So(GenerateKey("Hello World", "youtube"), ShouldEqual, GenerateKey("hello world", "youtube"))
			So(GenerateKey("Hello World", "youtube"), ShouldEqual, GenerateKey("helloworld", "youtube"))
		})

		Convey("differs per catalog", func() {
			So(GenerateKey("query", "a"), ShouldNotEqual, GenerateKey("query", "b"))
		})
	})
}

func TestReadWrite(t *testing.T) {
	Convey("Read and Write", t, func() {
		type record struct {
			Title string `json:"title"`
		}

		key := GenerateKey("some query", "test")

		Convey("round-trips a value", func() {
			So(Write(key, []record{{Title: "a"}, {Title: "b"}}), ShouldBeNil)

			var got []record
			So(Read(key, &got), ShouldBeTrue)
			So(got, ShouldHaveLength, 2)
			So(got[0].Title, ShouldEqual, "a")
		})

		Convey("misses for an unknown key", func() {
			var got []record
			So(Read("missing", &got), ShouldBeFalse)
		})
	})
}

func TestCollectGarbage(t *testing.T) {
	Convey("CollectGarbage", t, func() {
		key := GenerateKey("stale query", "test")
		So(Write(key, "value"), ShouldBeNil)

		Convey("keeps fresh entries", func() {
			CollectGarbage()

			var got string
			So(Read(key, &got), ShouldBeTrue)
		})

		Convey("removes expired entries", func() {
			expired := time.Now().Add(-TTL - time.Hour)
			So(filesystem.API().Chtimes(getDir()+"/"+key, expired, expired), ShouldBeNil)

			CollectGarbage()

			var got string
			So(Read(key, &got), ShouldBeFalse)
		})
	})
}
