// Package mini implements a lightweight, minimalist interface for track search and playback.
package mini

import (
	"os"

	"github.com/kyoku-cli/kyoku/extractor"
	"github.com/kyoku-cli/kyoku/playback"
	"github.com/kyoku-cli/kyoku/queue"
	"github.com/kyoku-cli/kyoku/resolver"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/util"
	"github.com/samber/lo"
)

var truncateAt = 100

type Options struct {
	// Favorites starts on the favorites list instead of search.
	Favorites bool
}

type mini struct {
	width, height int

	state         state
	statesHistory util.Stack[state]

	catalog      source.Catalog
	orchestrator *resolver.Orchestrator
	playQueue    *queue.Queue

	query        string
	cachedTracks map[string][]*source.Track

	selectedTrack *source.Track
}

func newMini(catalog source.Catalog, orchestrator *resolver.Orchestrator) *mini {
	return &mini{
		statesHistory: util.Stack[state]{},
		catalog:       catalog,
		orchestrator:  orchestrator,
		playQueue:     queue.New(),
		cachedTracks:  make(map[string][]*source.Track),
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

func Run(options *Options) error {
	client := extractor.New()
	orchestrator := resolver.New(client, client, playback.Engine())
	defer orchestrator.Close()

	m := newMini(client, orchestrator)
	m.state = searchState
	if options.Favorites {
		m.state = favoritesSelectState
	}

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
		truncateAt = w
	}

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case searchState:
		return m.handleSearchState()
	case trackSelectState:
		return m.handleTrackSelectState()
	case playingState:
		return m.handlePlayingState()
	case favoritesSelectState:
		return m.handleFavoritesSelectState()
	case quitState:
		m.orchestrator.Close()
		os.Exit(0)
	}

	return nil
}
