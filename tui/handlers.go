// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kyoku-cli/kyoku/favorites"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/resolver"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/lo"
)

// Messages emitted by the asynchronous handler commands.
type (
	foundTracksMsg   []*source.Track
	resolverEventMsg resolver.Event
	trackPlayingMsg  *source.Track
	msgError         error
)

// searchTracks performs the catalog search off the UI loop and posts the
// result to the bubble's channels.
func (b *statefulBubble) searchTracks(q string) tea.Cmd {
	return func() tea.Msg {
		log.Info("searching tracks for query " + q)

		tracks, err := b.catalog.Search(q)
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		b.foundTracksChannel <- tracks
		return nil
	}
}

// waitForTracks blocks until a search completes or fails.
func (b *statefulBubble) waitForTracks() tea.Cmd {
	return func() tea.Msg {
		select {
		case tracks := <-b.foundTracksChannel:
			return foundTracksMsg(tracks)
		case err := <-b.errorChannel:
			return msgError(err)
		}
	}
}

// waitForResolverEvent pumps a single event out of the resolution engine.
// The command re-arms itself from Update so the stream never stalls.
func (b *statefulBubble) waitForResolverEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-b.orchestrator.Events()
		if !ok {
			return nil
		}
		return resolverEventMsg(event)
	}
}

// playTrack hands the track to the resolution engine. Resolution is fully
// asynchronous, so this returns immediately.
func (b *statefulBubble) playTrack(track *source.Track) tea.Cmd {
	// ResolveAndPlay never blocks, so it runs right here on the update
	// goroutine. Keeping it off the command goroutine also keeps its
	// configuration snapshot ordered after any toggle the user just made.
	log.Info("requesting playback of " + track.Title)
	b.orchestrator.ResolveAndPlay(track)

	return func() tea.Msg {
		return trackPlayingMsg(track)
	}
}

// loadFavorites refreshes the favorites list component from persistent storage.
func (b *statefulBubble) loadFavorites() (tea.Cmd, error) {
	records, err := favorites.All()
	if err != nil {
		return nil, err
	}

	items := lo.Map(records, func(r *favorites.Record, _ int) list.Item {
		return &listItem{internal: r}
	})

	return b.favoritesC.SetItems(items), nil
}

// loadQueue refreshes the queue list component from the play queue snapshot.
func (b *statefulBubble) loadQueue() tea.Cmd {
	items := lo.Map(b.playQueue.Items(), func(t *source.Track, _ int) list.Item {
		return &listItem{internal: t}
	})

	return b.queueC.SetItems(items)
}
