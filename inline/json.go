// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/kyoku-cli/kyoku/source"
)

type Track struct {
	// Track is the catalog entry itself.
	Track *source.Track `json:"track"`
	// URL is the canonical watch page for the track.
	URL string `json:"url"`
	// Variants are the extracted stream formats (optional).
	Variants []source.Variant `json:"variants,omitempty"`
}

type Output struct {
	Query  string   `json:"query"`
	Result []*Track `json:"result"`
}

func asJson(tracks []*Track, query string) ([]byte, error) {
	return json.Marshal(&Output{
		Query:  query,
		Result: tracks,
	})
}
