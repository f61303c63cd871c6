// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/util"
	"github.com/samber/mo"
)

// TrackPicker selects a single track from the search results, nil when nothing qualifies.
type TrackPicker func([]*source.Track) *source.Track

type Options struct {
	Out             io.Writer
	Catalog         source.Catalog
	Json            bool
	Query           string
	TrackPicker     mo.Option[TrackPicker]
	IncludeVariants bool
}

// ParseTrackPicker parses a selector description.
// Format: "first", "last", "@substring@" or a zero-based index.
func ParseTrackPicker(description string) (TrackPicker, error) {
	switch description {
	case "first":
		return func(tracks []*source.Track) *source.Track {
			if len(tracks) == 0 {
				return nil
			}
			return tracks[0]
		}, nil
	case "last":
		return func(tracks []*source.Track) *source.Track {
			if len(tracks) == 0 {
				return nil
			}
			return tracks[len(tracks)-1]
		}, nil
	}

	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 1 {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(tracks []*source.Track) *source.Track {
			for _, t := range tracks {
				if strings.Contains(strings.ToLower(t.Title), sub) {
					return t
				}
			}
			return nil
		}, nil
	}

	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(tracks []*source.Track) *source.Track {
			if len(tracks) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(tracks)-1))
			return tracks[i]
		}, nil
	}

	return nil, fmt.Errorf("invalid track selector: %s", description)
}
