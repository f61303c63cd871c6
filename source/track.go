// Package source defines the domain models and interfaces for media discovery and retrieval.
package source

import (
	"github.com/kyoku-cli/kyoku/util"
)

// Track represents a playable entity discovered through a catalog search.
type Track struct {
	// ID is the catalog-assigned identifier (e.g. a YouTube video id).
	ID string `json:"id"`
	// Title is the display title as reported by the catalog.
	Title string `json:"title"`
	// Duration is the total runtime in seconds. Zero when unknown.
	Duration int `json:"duration"`
	// Channel is the uploader or channel name. May be empty.
	Channel string `json:"channel"`
	// Ordering index within the search results.
	Index uint16 `json:"index"`
}

func (t *Track) String() string {
	return t.Title
}

// URL returns the canonical watch page address for the track.
func (t *Track) URL() string {
	return "https://www.youtube.com/watch?v=" + t.ID
}

// Dirname returns a filesystem-safe name derived from the track title.
func (t *Track) Dirname() string {
	return util.SanitizeFilename(t.Title)
}

// FormattedDuration renders the runtime as mm:ss, or h:mm:ss past an hour.
// Returns an empty string when the duration is unknown.
func (t *Track) FormattedDuration() string {
	return util.FormatDuration(t.Duration)
}
