// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kyoku-cli/kyoku/favorites"
	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/style"
)

// listItem implements the list.Item interface, wrapping the domain models for terminal display.
type listItem struct {
	internal interface{}
	marked   bool
}

func (t *listItem) toggleMark() {
	t.marked = !t.marked
}

// track unwraps the underlying playable reference regardless of origin.
func (t *listItem) track() *source.Track {
	switch e := t.internal.(type) {
	case *source.Track:
		return e
	case *favorites.Record:
		return e.Track()
	default:
		return nil
	}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *source.Track:
		title = e.Title
	case *favorites.Record:
		title = e.Title
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		mark := lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Queue))
		title = fmt.Sprintf("%s %s", title, mark)
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *source.Track:
		description = trackDescription(e.FormattedDuration(), e.Channel)
	case *favorites.Record:
		description = trackDescription(e.Track().FormattedDuration(), e.Channel)
	case string:
		description = ""
	}

	return
}

func trackDescription(duration, channel string) string {
	var parts []string

	if duration != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(duration))
	}

	if channel != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(style.Subtext).Render(channel))
	}

	return strings.Join(parts, " • ")
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *source.Track:
		return e.Title
	case *favorites.Record:
		return e.Title
	case string:
		return e
	default:
		return ""
	}
}
