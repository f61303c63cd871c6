// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/kyoku-cli/kyoku/extractor"
	"github.com/kyoku-cli/kyoku/playback"
	"github.com/kyoku-cli/kyoku/resolver"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Favorites starts on the favorites list instead of search.
	Favorites bool
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	client := extractor.New()
	orchestrator := resolver.New(client, client, playback.Engine())
	defer orchestrator.Close()

	bubble := newBubble(options, client, orchestrator)

	if options.Favorites {
		if _, err := bubble.loadFavorites(); err != nil {
			return err
		}
		bubble.newState(favoritesState)
	} else {
		bubble.newState(searchState)
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
