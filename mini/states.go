// Package mini implements a lightweight, minimalist interface for track search and playback.
package mini

import (
	"fmt"

	"github.com/kyoku-cli/kyoku/favorites"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/resolver"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/style"
	"github.com/kyoku-cli/kyoku/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type state int

const (
	searchState state = iota + 1
	trackSelectState
	playingState
	favoritesSelectState
	quitState
)

func (m *mini) handleSearchState() error {
	var searchLoop func() error
	title("Search Tracks")

	searchLoop = func() error {
		in, err := getInput(func(s string) bool {
			return s != ""
		})

		if err != nil {
			return err
		}

		query := in.value

		erase := progress("Searching Query..")
		m.cachedTracks[query], err = m.catalog.Search(query)
		erase()
		if err != nil {
			return err
		}

		max := lo.Min([]int{len(m.cachedTracks[query]), viper.GetInt(key.SearchLimit)})
		m.cachedTracks[query] = m.cachedTracks[query][:max]

		if len(m.cachedTracks[query]) == 0 {
			fail("No search results found")
			return searchLoop()
		}

		m.query = query
		m.newState(trackSelectState)
		return nil
	}

	return searchLoop()
}

func (m *mini) handleTrackSelectState() error {
	title("Query Results >>")
	b, track, err := menu(m.cachedTracks[m.query], enqueueBind, favoriteBind, searchBind)
	if err != nil {
		return err
	}

	switch {
	case quitBind.eq(b):
		m.newState(quitState)
		return nil
	case searchBind.eq(b):
		m.newState(searchState)
		return nil
	case enqueueBind.eq(b):
		return m.handleEnqueue()
	case favoriteBind.eq(b):
		return m.handleFavorite()
	}

	m.selectedTrack = track
	m.orchestrator.ResolveAndPlay(track)
	m.newState(playingState)
	return nil
}

// handleEnqueue asks which track to add to the play queue.
func (m *mini) handleEnqueue() error {
	title("Enqueue >>")
	b, track, err := menu(m.cachedTracks[m.query], backBind)
	if err != nil {
		return err
	}

	switch {
	case quitBind.eq(b):
		m.newState(quitState)
		return nil
	case backBind.eq(b):
		return nil
	}

	m.playQueue.Enqueue(track)
	fmt.Printf("Enqueued %s (%d in queue)\n", track.Title, m.playQueue.Len())
	return nil
}

// handleFavorite asks which track to persist as a favorite.
func (m *mini) handleFavorite() error {
	title("Favorite >>")
	b, track, err := menu(m.cachedTracks[m.query], backBind)
	if err != nil {
		return err
	}

	switch {
	case quitBind.eq(b):
		m.newState(quitState)
		return nil
	case backBind.eq(b):
		return nil
	}

	if err = favorites.Add(track); err != nil {
		fail(err.Error())
		return nil
	}

	fmt.Printf("Added %s to favorites\n", track.Title)
	return nil
}

func (m *mini) handlePlayingState() error {
	util.ClearScreen()
	if m.selectedTrack != nil {
		title(fmt.Sprintf("Currently playing %s", style.Truncate(truncateAt)(m.selectedTrack.Title)))
	}

	// Fold the resolver's progress into the prompt without blocking on it.
	m.drainEvents()

	b, _, err := menu([]fmt.Stringer{}, pauseBind, nextBind, stopBind, backBind, searchBind)
	if err != nil {
		return err
	}

	switch {
	case quitBind.eq(b):
		m.newState(quitState)
	case pauseBind.eq(b):
		m.orchestrator.TogglePause()
	case nextBind.eq(b):
		if next, ok := m.playQueue.Next().Get(); ok {
			m.selectedTrack = next
			m.orchestrator.ResolveAndPlay(next)
		} else {
			fail("Queue is empty")
		}
	case stopBind.eq(b):
		m.orchestrator.Stop()
		m.selectedTrack = nil
		m.previousState()
	case backBind.eq(b):
		m.previousState()
	case searchBind.eq(b):
		m.newState(searchState)
	}

	return nil
}

// drainEvents consumes any buffered resolver events, printing failures and
// advancing the queue on end-of-media.
func (m *mini) drainEvents() {
	for {
		select {
		case event := <-m.orchestrator.Events():
			switch event.Kind {
			case resolver.EventFailed:
				fail(event.Message)
			case resolver.EventEnded:
				if next, ok := m.playQueue.Next().Get(); ok {
					m.selectedTrack = next
					m.orchestrator.ResolveAndPlay(next)
				}
			}
		default:
			return
		}
	}
}

func (m *mini) handleFavoritesSelectState() error {
	records, err := favorites.All()
	if err != nil {
		return err
	}

	tracks := lo.Map(records, func(r *favorites.Record, _ int) *source.Track {
		return r.Track()
	})

	if len(tracks) == 0 {
		fail("No favorites saved")
		m.newState(searchState)
		return nil
	}

	title("Favorites >>")
	b, track, err := menu(tracks, searchBind)
	if err != nil {
		return err
	}

	switch {
	case quitBind.eq(b):
		m.newState(quitState)
		return nil
	case searchBind.eq(b):
		m.newState(searchState)
		return nil
	}

	m.selectedTrack = track
	m.orchestrator.ResolveAndPlay(track)
	m.newState(playingState)
	return nil
}
