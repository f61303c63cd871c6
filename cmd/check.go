// Package cmd implements the command-line interface for kyoku.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kyoku-cli/kyoku/extractor"
	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/resolver"
	"github.com/kyoku-cli/kyoku/style"
)

// CheckDependencies verifies the availability of required system dependencies.
// mpv is mandatory. yt-dlp is bootstrapped automatically when missing, and a
// missing ffmpeg only degrades the local materialization fallback.
func CheckDependencies() {
	if _, err := exec.LookPath("mpv"); err != nil {
		printMissingDependencyError("mpv")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := extractor.Ensure(ctx); err != nil {
		log.Error(err)
		printMissingDependencyError("yt-dlp")
		os.Exit(1)
	}

	if resolver.FindMuxer().IsAbsent() {
		fmt.Printf("%s %s\n",
			icon.Get(icon.Fail),
			style.Fg(style.WarningColor)("ffmpeg not found: merged local downloads are unavailable, falling back to single-file formats"),
		)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install " + dep
	case "linux":
		installCmd = "sudo apt install " + dep
	case "windows":
		installCmd = "scoop install " + dep
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
