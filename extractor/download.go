package extractor

import (
	"context"
	"fmt"

	"github.com/kyoku-cli/kyoku/log"
	"github.com/lrstanley/go-ytdlp"
)

// DownloadOptions configures a single yt-dlp download invocation.
type DownloadOptions struct {
	// Format is the yt-dlp format selector (e.g. "bv*+ba/best").
	Format string
	// Dir is the directory the output file is written into.
	Dir string
	// MergeContainer forces the merge output container (e.g. "mp4").
	// Empty leaves yt-dlp's default behavior.
	MergeContainer string
	// FFmpegPath points yt-dlp at a specific ffmpeg binary.
	// Empty lets yt-dlp search PATH itself.
	FFmpegPath string
}

// Download fetches a track into opts.Dir using the given format selector.
// The output file is named after the track title.
func (c *Client) Download(ctx context.Context, rawURL string, opts DownloadOptions) error {
	log.Infof("downloading %s with format %q", rawURL, opts.Format)

	cmd := ytdlp.New().
		Format(opts.Format).
		Output(opts.Dir + "/%(title)s.%(ext)s").
		RestrictFilenames().
		IgnoreConfig().
		NoWarnings().
		NoPlaylist()

	if opts.MergeContainer != "" {
		cmd.MergeOutputFormat(opts.MergeContainer)
	}

	if opts.FFmpegPath != "" {
		cmd.FFmpegLocation(opts.FFmpegPath)
	}

	c.applyCookies(cmd)

	if _, err := cmd.Run(ctx, rawURL); err != nil {
		log.Error(err)
		return fmt.Errorf("download failed: %w", err)
	}

	return nil
}
