// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"os"

	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/source"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	tracks, err := options.Catalog.Search(options.Query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var selected []*source.Track
	if picker, ok := options.TrackPicker.Get(); ok {
		if choice := picker(tracks); choice != nil {
			selected = []*source.Track{choice}
		}
	} else {
		selected = tracks
	}

	result := make([]*Track, 0, len(selected))
	for _, track := range selected {
		entry := &Track{
			Track: track,
			URL:   track.URL(),
		}

		if options.IncludeVariants {
			variants, err := options.Catalog.VariantsOf(track)
			if err != nil {
				log.Error(err)
				return fmt.Errorf("variant extraction failed for %s: %w", track.Title, err)
			}
			entry.Variants = variants
		}

		result = append(result, entry)
	}

	if options.Json {
		data, err := asJson(result, options.Query)
		if err != nil {
			return err
		}

		_, err = options.Out.Write(append(data, '\n'))
		return err
	}

	for _, entry := range result {
		if _, err := fmt.Fprintf(options.Out, "%s\t%s\n", entry.Track.Title, entry.URL); err != nil {
			return err
		}
	}

	return nil
}
