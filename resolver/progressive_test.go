package resolver

import (
	"testing"

	"github.com/kyoku-cli/kyoku/source"
	. "github.com/smartystreets/goconvey/convey"
)

func muxed(ext, protocol, url string, height int, bitrate float64) source.Variant {
	return source.Variant{
		URL:      url,
		Protocol: protocol,
		Ext:      ext,
		HasAudio: true,
		HasVideo: true,
		Height:   height,
		Bitrate:  bitrate,
	}
}

func TestSelectDirect(t *testing.T) {
	Convey("SelectDirect", t, func() {
		cfg := Config{
			PreferredContainer: "mp4",
			AllowedContainers:  []string{"mp4", "webm"},
		}

		Convey("Returns the single qualifying variant", func() {
			variants := []source.Variant{
				muxed("mp4", "https", "https://cdn.example.com/v.mp4", 720, 1000),
			}

			got, ok := SelectDirect(variants, cfg).Get()
			So(ok, ShouldBeTrue)
			So(got.URL, ShouldEqual, "https://cdn.example.com/v.mp4")
		})

		Convey("Rejects audio-only and video-only variants", func() {
			variants := []source.Variant{
				{URL: "https://a", Protocol: "https", Ext: "mp4", HasAudio: true, HasVideo: false},
				{URL: "https://v", Protocol: "https", Ext: "mp4", HasAudio: false, HasVideo: true},
			}

			So(SelectDirect(variants, cfg).IsAbsent(), ShouldBeTrue)
		})

		Convey("Rejects manifest protocols", func() {
			variants := []source.Variant{
				muxed("mp4", "m3u8_native", "https://cdn.example.com/v.mp4", 720, 1000),
			}

			So(SelectDirect(variants, cfg).IsAbsent(), ShouldBeTrue)
		})

		Convey("Rejects manifest-looking URLs regardless of protocol", func() {
			for _, url := range []string{
				"https://cdn.example.com/master.m3u8",
				"https://cdn.example.com/stream.mpd",
				"https://cdn.example.com/Manifest/video",
				"https://cdn.example.com/dash/video",
				"https://cdn.example.com/hls/video",
			} {
				variants := []source.Variant{muxed("mp4", "https", url, 720, 1000)}
				So(SelectDirect(variants, cfg).IsAbsent(), ShouldBeTrue)
			}
		})

		Convey("Rejects disallowed containers", func() {
			variants := []source.Variant{
				muxed("flv", "https", "https://cdn.example.com/v.flv", 720, 1000),
			}

			So(SelectDirect(variants, cfg).IsAbsent(), ShouldBeTrue)
		})

		Convey("Returns none for an empty set", func() {
			So(SelectDirect(nil, cfg).IsAbsent(), ShouldBeTrue)
		})

		Convey("Higher resolution wins", func() {
			variants := []source.Variant{
				muxed("mp4", "https", "https://low", 360, 5000),
				muxed("mp4", "https", "https://high", 1080, 100),
			}

			got, _ := SelectDirect(variants, cfg).Get()
			So(got.URL, ShouldEqual, "https://high")
		})

		Convey("Equal resolution: higher bitrate wins", func() {
			variants := []source.Variant{
				muxed("mp4", "https", "https://thin", 720, 500),
				muxed("mp4", "https", "https://fat", 720, 1500),
			}

			got, _ := SelectDirect(variants, cfg).Get()
			So(got.URL, ShouldEqual, "https://fat")
		})

		Convey("Preferred container outranks resolution", func() {
			variants := []source.Variant{
				muxed("webm", "https", "https://webm", 1080, 2000),
				muxed("mp4", "https", "https://mp4", 480, 500),
			}

			got, _ := SelectDirect(variants, cfg).Get()
			So(got.URL, ShouldEqual, "https://mp4")
		})

		Convey("Selection is deterministic", func() {
			variants := []source.Variant{
				muxed("webm", "https", "https://a", 720, 1000),
				muxed("mp4", "https", "https://b", 720, 1000),
				muxed("mp4", "https", "https://c", 1080, 900),
			}

			first, _ := SelectDirect(variants, cfg).Get()
			for i := 0; i < 10; i++ {
				again, _ := SelectDirect(variants, cfg).Get()
				So(again.URL, ShouldEqual, first.URL)
			}
		})
	})
}

func TestLooksLikeManifest(t *testing.T) {
	Convey("looksLikeManifest", t, func() {
		So(looksLikeManifest("https://cdn/x/playlist.M3U8"), ShouldBeTrue)
		So(looksLikeManifest("https://cdn/x/video.mp4"), ShouldBeFalse)
	})
}
