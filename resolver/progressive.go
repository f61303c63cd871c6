package resolver

import (
	"sort"
	"strings"

	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// manifestMarkers are URL substrings indicating an adaptive-streaming
// manifest rather than a single progressive file.
//
// This is an approximate textual heuristic, not a protocol guarantee:
// an obfuscated manifest URL can slip through. It is kept because the
// playback success rate of the whole pipeline was tuned against it.
var manifestMarkers = []string{".m3u8", ".mpd", "manifest", "dash", "hls"}

// SelectDirect picks the best directly playable variant, if any.
//
// A variant qualifies when it carries both audio and video, is served over
// plain HTTP(S) rather than an adaptive manifest, and uses a container the
// snapshot allows. Qualifying variants are ranked by preferred container
// first, then descending height, then descending bitrate.
//
// Pure function of its arguments: no I/O and no shared state.
func SelectDirect(variants []source.Variant, cfg Config) mo.Option[source.Variant] {
	candidates := lo.Filter(variants, func(v source.Variant, _ int) bool {
		return v.HasAudio && v.HasVideo &&
			plainHTTP(v.Protocol) &&
			!looksLikeManifest(v.URL) &&
			lo.Contains(cfg.AllowedContainers, strings.ToLower(v.Ext))
	})

	if len(candidates) == 0 {
		return mo.None[source.Variant]()
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		aPref, bPref := strings.EqualFold(a.Ext, cfg.PreferredContainer), strings.EqualFold(b.Ext, cfg.PreferredContainer)
		if aPref != bPref {
			return aPref
		}

		if a.Height != b.Height {
			return a.Height > b.Height
		}

		return a.Bitrate > b.Bitrate
	})

	return mo.Some(candidates[0])
}

// plainHTTP reports whether the protocol is a plain progressive HTTP(S)
// request as opposed to a manifest-driven delivery scheme.
func plainHTTP(protocol string) bool {
	p := strings.ToLower(protocol)
	return p == "http" || p == "https"
}

// looksLikeManifest applies the substring heuristic to a variant URL.
func looksLikeManifest(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return lo.SomeBy(manifestMarkers, func(marker string) bool {
		return strings.Contains(lower, marker)
	})
}
