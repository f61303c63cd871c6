package extractor

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/kyoku-cli/kyoku/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSearchPayload(t *testing.T) {
	Convey("Given flat search output", t, func() {
		raw := `{
			"entries": [
				{"id": "abc123", "title": "Song A", "duration": 213.0, "channel": "Ch"},
				{"id": "def456", "title": "Song B", "uploader": "Up"}
			]
		}`

		var payload searchPayload
		So(json.Unmarshal([]byte(raw), &payload), ShouldBeNil)
		So(payload.Entries, ShouldHaveLength, 2)

		Convey("Entries map to tracks", func() {
			track := payload.Entries[0].toTrack(0)
			So(track.ID, ShouldEqual, "abc123")
			So(track.Title, ShouldEqual, "Song A")
			So(track.Duration, ShouldEqual, 213)
			So(track.Channel, ShouldEqual, "Ch")
		})

		Convey("Uploader backs an absent channel", func() {
			track := payload.Entries[1].toTrack(1)
			So(track.Channel, ShouldEqual, "Up")
			So(track.Duration, ShouldEqual, 0)
		})
	})
}

func TestFormatPayload(t *testing.T) {
	Convey("Given an extracted format", t, func() {
		Convey("A muxed format maps to a full variant", func() {
			f := formatPayload{
				URL:      "https://example.com/v.mp4",
				Protocol: "https",
				Ext:      "mp4",
				Acodec:   "mp4a.40.2",
				Vcodec:   "avc1.64001F",
				Height:   720,
				TBR:      1200.5,
			}

			v := f.toVariant()
			So(v.HasAudio, ShouldBeTrue)
			So(v.HasVideo, ShouldBeTrue)
			So(v.Height, ShouldEqual, 720)
			So(v.Bitrate, ShouldEqual, 1200.5)
		})

		Convey("none codecs are treated as absent streams", func() {
			f := formatPayload{Acodec: "none", Vcodec: "none"}

			v := f.toVariant()
			So(v.HasAudio, ShouldBeFalse)
			So(v.HasVideo, ShouldBeFalse)
		})

		Convey("empty codecs are treated as absent streams", func() {
			v := formatPayload{}.toVariant()
			So(v.HasAudio, ShouldBeFalse)
			So(v.HasVideo, ShouldBeFalse)
		})
	})
}

func TestInfoPayloadVariants(t *testing.T) {
	Convey("Given extracted format lists", t, func() {
		Convey("Formats without a URL are dropped", func() {
			p := infoPayload{Formats: []formatPayload{
				{URL: "  "},
				{URL: "https://example.com/v.mp4", Ext: "mp4"},
			}}

			variants := p.toVariants()
			So(variants, ShouldHaveLength, 1)
			So(variants[0].URL, ShouldEqual, "https://example.com/v.mp4")
		})

		Convey("An all-empty format list yields no variants", func() {
			p := infoPayload{Formats: []formatPayload{{URL: ""}}}
			So(p.toVariants(), ShouldBeEmpty)
		})
	})
}

func TestDecodeVariants(t *testing.T) {
	Convey("decodeVariants", t, func() {
		Convey("Decodes a usable format list", func() {
			raw := `{"formats": [{"url": "https://example.com/v.mp4", "ext": "mp4", "protocol": "https"}]}`

			variants, err := decodeVariants([]byte(raw), "abc")
			So(err, ShouldBeNil)
			So(variants, ShouldHaveLength, 1)
		})

		Convey("An empty format list is an extraction failure", func() {
			for _, raw := range []string{
				`{"formats": []}`,
				`{"formats": [{"url": ""}]}`,
				`{}`,
			} {
				_, err := decodeVariants([]byte(raw), "abc")
				So(errors.Is(err, ErrNoVariants), ShouldBeTrue)
			}
		})

		Convey("Malformed output is an error without the sentinel", func() {
			_, err := decodeVariants([]byte("not json"), "abc")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrNoVariants), ShouldBeFalse)
		})
	})
}

func TestEffectiveQuery(t *testing.T) {
	Convey("Given karaoke mode settings", t, func() {
		viper.Set(key.SearchKaraokeBoosters, "KTV instrumental")

		Convey("Plain mode leaves the query untouched", func() {
			viper.Set(key.SearchKaraokeMode, false)
			So(effectiveQuery("yorushika"), ShouldEqual, "yorushika")
		})

		Convey("Karaoke mode appends the boosters", func() {
			viper.Set(key.SearchKaraokeMode, true)
			So(effectiveQuery("yorushika"), ShouldEqual, "yorushika KTV instrumental")
		})

		Convey("Empty boosters change nothing", func() {
			viper.Set(key.SearchKaraokeMode, true)
			viper.Set(key.SearchKaraokeBoosters, "  ")
			So(effectiveQuery("yorushika"), ShouldEqual, "yorushika")
		})
	})
}
