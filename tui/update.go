// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kyoku-cli/kyoku/favorites"
	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/internal/ui"
	keys "github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/open"
	"github.com/kyoku-cli/kyoku/query"
	"github.com/kyoku-cli/kyoku/resolver"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Update is the central message dispatcher for the Bubble Tea runtime.
func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		case key.Matches(msg, b.keymap.back) && b.state != searchState && b.state != loadingState:
			// esc leaves the current view but never interrupts playback.
			if b.state == errorState {
				b.lastError = nil
			}
			b.previousState()
			return b, nil
		}
	case resolverEventMsg:
		cmd := b.handleResolverEvent(resolver.Event(msg))
		return b, tea.Batch(cmd, b.waitForResolverEvent())
	case string, ui.ClearNotificationMsg:
		return b, b.notifier.Update(msg)
	case msgError:
		b.stopLoading()
		b.raiseError(msg)
		return b, nil
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case errorState:
		return b.updateError(msg)
	case searchState:
		return b.updateSearch(msg)
	case tracksState:
		return b.updateTracks(msg)
	case queueState:
		return b.updateQueue(msg)
	case favoritesState:
		return b.updateFavorites(msg)
	case playingState:
		return b.updatePlaying(msg)
	default:
		return b, nil
	}
}

// handleResolverEvent reflects resolution engine progress into the UI.
func (b *statefulBubble) handleResolverEvent(event resolver.Event) tea.Cmd {
	switch event.Kind {
	case resolver.EventStatus:
		b.progressStatus = event.Message
		return nil
	case resolver.EventPlayingDirect:
		b.progressStatus = "Streaming"
		return nil
	case resolver.EventPlayingLocal:
		b.progressStatus = "Playing local copy"
		return nil
	case resolver.EventFailed:
		b.progressStatus = "Failed"
		log.Error("playback failed: " + event.Message)
		return ui.NotifyFailure(event.Message)
	case resolver.EventEnded:
		return b.advanceQueue()
	default:
		return nil
	}
}

// advanceQueue starts the next queued track, if any.
func (b *statefulBubble) advanceQueue() tea.Cmd {
	next, ok := b.playQueue.Next().Get()
	if !ok {
		b.progressStatus = "Queue finished"
		return nil
	}

	b.currentTrack = next
	return tea.Batch(b.playTrack(next), b.loadQueue())
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.back) {
			b.stopLoading()
			b.previousState()
			return b, nil
		}
	case foundTracksMsg:
		b.stopLoading()
		cmd := b.setTracks(msg)
		b.newState(tracksState)
		return b, cmd
	}

	var cmd tea.Cmd
	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, b.keymap.quit) {
			return b, tea.Quit
		}
	}
	return b, nil
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.confirm) && strings.TrimSpace(b.inputC.Value()) != "":
			q := strings.TrimSpace(b.inputC.Value())
			if err := query.Remember(q, 1); err != nil {
				log.Error(err)
			}

			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.searchTracks(q), b.waitForTracks())
		case key.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
			}
			return b, nil
		case key.Matches(msg, b.keymap.karaokeToggle):
			viper.Set(keys.SearchKaraokeMode, !viper.GetBool(keys.SearchKaraokeMode))
			return b, nil
		case key.Matches(msg, b.keymap.openFavorites):
			cmd, err := b.loadFavorites()
			if err != nil {
				b.raiseError(err)
				return b, nil
			}
			b.newState(favoritesState)
			return b, cmd
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	b.searchSuggestion = mo.None[string]()
	if value := strings.TrimSpace(b.inputC.Value()); value != "" && viper.GetBool(keys.SearchShowQuerySuggestions) {
		b.searchSuggestion = query.Suggest(value)
	}

	return b, cmd
}

func (b *statefulBubble) updateTracks(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && b.tracksC.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, b.keymap.play):
			item, ok := b.tracksC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			track := item.track()
			b.currentTrack = track
			b.newState(playingState)
			return b, b.playTrack(track)
		case key.Matches(msg, b.keymap.enqueue):
			item, ok := b.tracksC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			item.toggleMark()
			if item.marked {
				b.playQueue.Enqueue(item.track())
			} else {
				b.playQueue.Remove(item.track().ID)
			}
			return b, b.loadQueue()
		case key.Matches(msg, b.keymap.favorite):
			item, ok := b.tracksC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			track := item.track()
			if favorites.Has(track.ID) {
				if err := favorites.Remove(track.ID); err != nil {
					log.Error(err)
					return b, nil
				}
				return b, b.tracksC.NewStatusMessage(fmt.Sprintf("Removed %s from favorites", track.Title))
			}

			if err := favorites.Add(track); err != nil {
				log.Error(err)
				return b, nil
			}
			return b, b.tracksC.NewStatusMessage(fmt.Sprintf("%s Added %s to favorites", icon.Get(icon.Favorite), track.Title))
		case key.Matches(msg, b.keymap.openURL):
			item, ok := b.tracksC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			if err := open.Start(item.track().URL()); err != nil {
				log.Error(err)
			}
			return b, nil
		case key.Matches(msg, b.keymap.openQueue):
			b.newState(queueState)
			return b, b.loadQueue()
		case key.Matches(msg, b.keymap.openFavorites):
			cmd, err := b.loadFavorites()
			if err != nil {
				b.raiseError(err)
				return b, nil
			}
			b.newState(favoritesState)
			return b, cmd
		}
	}

	var cmd tea.Cmd
	b.tracksC, cmd = b.tracksC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateQueue(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && b.queueC.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, b.keymap.play):
			item, ok := b.queueC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			track := item.track()
			b.playQueue.Remove(track.ID)
			b.currentTrack = track
			b.newState(playingState)
			return b, tea.Batch(b.playTrack(track), b.loadQueue())
		case key.Matches(msg, b.keymap.remove):
			item, ok := b.queueC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			b.playQueue.Remove(item.track().ID)
			return b, b.loadQueue()
		case key.Matches(msg, b.keymap.clear):
			b.playQueue.Clear()
			return b, b.loadQueue()
		}
	}

	var cmd tea.Cmd
	b.queueC, cmd = b.queueC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateFavorites(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && b.favoritesC.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, b.keymap.play):
			item, ok := b.favoritesC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			track := item.track()
			b.currentTrack = track
			b.newState(playingState)
			return b, b.playTrack(track)
		case key.Matches(msg, b.keymap.enqueue):
			item, ok := b.favoritesC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			item.toggleMark()
			if item.marked {
				b.playQueue.Enqueue(item.track())
			} else {
				b.playQueue.Remove(item.track().ID)
			}
			return b, b.loadQueue()
		case key.Matches(msg, b.keymap.remove):
			item, ok := b.favoritesC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			if err := favorites.Remove(item.track().ID); err != nil {
				log.Error(err)
				return b, nil
			}

			cmd, err := b.loadFavorites()
			if err != nil {
				b.raiseError(err)
				return b, nil
			}
			return b, cmd
		}
	}

	var cmd tea.Cmd
	b.favoritesC, cmd = b.favoritesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trackPlayingMsg:
		return b, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keymap.playPause):
			b.orchestrator.TogglePause()
			return b, nil
		case key.Matches(msg, b.keymap.next):
			return b, b.advanceQueue()
		case key.Matches(msg, b.keymap.stop):
			b.orchestrator.Stop()
			b.currentTrack = nil
			b.progressStatus = ""
			b.previousState()
			return b, nil
		}
	}

	return b, nil
}

// setTracks replaces the search results list content.
func (b *statefulBubble) setTracks(tracks []*source.Track) tea.Cmd {
	items := make([]list.Item, 0, len(tracks))
	for _, track := range tracks {
		items = append(items, &listItem{internal: track, marked: b.queued(track)})
	}

	b.tracksC.ResetSelected()
	return b.tracksC.SetItems(items)
}

// queued reports whether the track is already in the play queue.
func (b *statefulBubble) queued(track *source.Track) bool {
	for _, queued := range b.playQueue.Items() {
		if queued.ID == track.ID {
			return true
		}
	}
	return false
}
