// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/style"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var (
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 0, 2)
)

// View renders the interface for the active application state.
func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case errorState:
		return b.viewError()
	case searchState:
		return b.viewSearch()
	case tracksState:
		return b.viewTracks()
	case queueState:
		return b.viewQueue()
	case favoritesState:
		return b.viewFavorites()
	case playingState:
		return b.viewPlaying()
	default:
		return ""
	}
}

// renderLines stacks the given lines and pads them into the frame.
func (b *statefulBubble) renderLines(paddingless bool, lines []string) string {
	l := strings.Join(lines, "\n")
	if paddingless {
		return l
	}
	return paddingStyle.Render(l)
}

func (b *statefulBubble) viewLoading() string {
	title := style.Title("Kyoku")

	status := b.progressStatus
	if status == "" {
		status = "Loading"
	}

	return b.renderLines(false, []string{
		title,
		"",
		fmt.Sprintf("%s %s...", b.spinnerC.View(), status),
		"",
		b.helpC.View(b.keymap),
	})
}

func (b *statefulBubble) viewError() string {
	title := style.ErrorTitle("Error")

	errMsg := "Unknown error"
	if b.lastError != nil {
		errMsg = b.lastError.Error()
	}

	return b.renderLines(false, []string{
		title,
		"",
		fmt.Sprintf("%s %s", icon.Get(icon.Fail), style.Fg(style.ErrorColor)("Something went wrong")),
		"",
		wrap.String(style.Italic(errMsg), b.width),
		"",
		b.helpC.View(b.keymap),
	})
}

func (b *statefulBubble) viewSearch() string {
	title := style.Title("Search Tracks")

	input := b.inputC.View()
	if suggestion, ok := b.searchSuggestion.Get(); ok {
		typed := b.inputC.Value()
		if strings.HasPrefix(suggestion, typed) && suggestion != typed {
			input += style.Faint(strings.TrimPrefix(suggestion, typed))
		}
	}

	lines := []string{
		title,
		"",
		input,
		"",
	}

	if viper.GetBool(key.SearchKaraokeMode) {
		lines = append(lines, style.Fg(style.SecondaryColor)(fmt.Sprintf("%s Karaoke mode", icon.Get(icon.Mark))), "")
	}

	lines = append(lines, b.helpC.View(b.keymap))

	return b.notifier.View(b.renderLines(false, lines))
}

func (b *statefulBubble) viewTracks() string {
	return b.notifier.View(b.renderLines(true, []string{listExtraPaddingStyle.Render(b.tracksC.View())}))
}

func (b *statefulBubble) viewQueue() string {
	return b.notifier.View(b.renderLines(true, []string{listExtraPaddingStyle.Render(b.queueC.View())}))
}

func (b *statefulBubble) viewFavorites() string {
	return b.notifier.View(b.renderLines(true, []string{listExtraPaddingStyle.Render(b.favoritesC.View())}))
}

func (b *statefulBubble) viewPlaying() string {
	title := style.Title("Now Playing")

	trackTitle := "Nothing"
	channel := ""
	if b.currentTrack != nil {
		trackTitle = b.currentTrack.Title
		channel = b.currentTrack.Channel
	}

	lines := []string{
		title,
		"",
		fmt.Sprintf("%s %s", icon.Get(icon.Play), style.Bold(trackTitle)),
	}

	if channel != "" {
		lines = append(lines, style.Fg(style.Subtext)(channel))
	}

	if b.progressStatus != "" {
		lines = append(lines, "", style.Faint(b.progressStatus))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("%s %d in queue", icon.Get(icon.Queue), b.playQueue.Len()),
		"",
		b.helpC.View(b.keymap),
	)

	return b.notifier.View(b.renderLines(false, lines))
}
