// Package resolver turns an abstract track reference into something the
// playback sink can actually consume: either a direct progressive stream URL
// or a fully downloaded and merged local file.
//
// Resolution is progressive-first. The extracted format list is searched for
// a single URL carrying both audio and video over plain HTTP; only when no
// such candidate exists (or it fails a post-start health check) does the
// resolver fall back to materializing the track locally.
package resolver

import "errors"

// Resolution failure taxonomy. Extraction failures fall through to
// materialization and are never surfaced; the other three reach the user.
var (
	// ErrExtraction means the catalog fetch failed or returned nothing usable.
	ErrExtraction = errors.New("extraction failed")

	// ErrMuxerMissing means no merge tool is available for materialization.
	ErrMuxerMissing = errors.New("no merge tool (ffmpeg) available")

	// ErrMaterialization means every download strategy was exhausted.
	ErrMaterialization = errors.New("materialization failed")

	// ErrSink means the playback sink rejected the resolved source.
	ErrSink = errors.New("playback sink rejected source")
)
