// Package source defines the domain models and interfaces for media discovery and retrieval.
package source

import "fmt"

// Variant represents a single downloadable or streamable rendition of a track.
type Variant struct {
	// Direct URL to the stream/file.
	URL string `json:"url"`
	// Protocol used to fetch the resource (e.g. "https", "m3u8_native").
	Protocol string `json:"protocol"`
	// Ext is the container extension (e.g. "mp4", "webm").
	Ext string `json:"ext"`
	// HasAudio reports whether the rendition carries an audio stream.
	HasAudio bool `json:"has_audio"`
	// HasVideo reports whether the rendition carries a video stream.
	HasVideo bool `json:"has_video"`
	// Height is the vertical resolution in pixels. Zero when unknown.
	Height int `json:"height"`
	// Bitrate is the total bitrate in kbit/s. Zero when unknown.
	Bitrate float64 `json:"bitrate"`
}

// String returns a short quality label for display.
func (v Variant) String() string {
	if v.Height > 0 {
		return fmt.Sprintf("%dp %s", v.Height, v.Ext)
	}
	return v.Ext
}
