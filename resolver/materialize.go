package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyoku-cli/kyoku/extractor"
	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/lo"
)

// Downloader fetches a remote reference into a directory using one
// download strategy. Implemented by extractor.Client.
type Downloader interface {
	Download(ctx context.Context, rawURL string, opts extractor.DownloadOptions) error
}

// strategy is one row of the ordered materialization policy table.
type strategy struct {
	// label names the strategy in status/log output.
	label string
	// format is the yt-dlp format selector.
	format string
	// merge forces the merge output container. Empty skips merging.
	merge string
}

// strategies is evaluated in order with early exit. Separate best streams
// merged into mp4 first, single best stream second, audio as last resort.
// locateMuxer is swappable for tests.
var locateMuxer = FindMuxer

var strategies = []strategy{
	{label: "merged best", format: "bv*+ba/best", merge: "mp4"},
	{label: "single best", format: "best", merge: "mp4"},
	{label: "audio only", format: "bestaudio/best", merge: ""},
}

// Materialize downloads the track into a fresh workspace and returns the
// resulting playable file along with the workspace holding it. The caller
// owns the workspace and must purge it at session teardown.
//
// Fails fast with ErrMuxerMissing before any download when ffmpeg cannot
// be located, and with ErrMaterialization when every strategy is
// exhausted. A failed materialization purges its own workspace.
func Materialize(ctx context.Context, track *source.Track, dl Downloader) (*Workspace, string, error) {
	muxer, ok := locateMuxer().Get()
	if !ok {
		return nil, "", ErrMuxerMissing
	}

	ws, err := NewWorkspace()
	if err != nil {
		return nil, "", fmt.Errorf("allocate workspace: %w", err)
	}

	for _, st := range strategies {
		log.Infof("materializing %s via %s", track.ID, st.label)

		opts := extractor.DownloadOptions{
			Format:         st.format,
			Dir:            ws.Dir,
			MergeContainer: st.merge,
			FFmpegPath:     muxer,
		}

		if err = dl.Download(ctx, track.URL(), opts); err != nil {
			log.Warnf("strategy %q failed: %v", st.label, err)
			continue
		}

		if path, found := output(ws, track, st); found {
			return ws, path, nil
		}

		log.Warnf("strategy %q produced no output", st.label)
	}

	ws.Purge()
	return nil, "", ErrMaterialization
}

// output locates the strategy's artifact in the workspace. The expected
// merged filename is checked first; when the merge step produced a
// differently named artifact, the largest non-empty file wins.
func output(ws *Workspace, track *source.Track, st strategy) (string, bool) {
	if st.merge != "" {
		expected := filepath.Join(ws.Dir, track.Dirname()+"."+st.merge)
		if info, err := filesystem.API().Stat(expected); err == nil && info.Size() > 0 {
			return expected, true
		}
	}

	entries, err := filesystem.API().ReadDir(ws.Dir)
	if err != nil {
		return "", false
	}

	files := lo.Filter(entries, func(e os.FileInfo, _ int) bool {
		return !e.IsDir() && e.Size() > 0 && !strings.HasSuffix(e.Name(), ".part")
	})

	if len(files) == 0 {
		return "", false
	}

	largest := lo.MaxBy(files, func(a, b os.FileInfo) bool {
		return a.Size() > b.Size()
	})

	return filepath.Join(ws.Dir, largest.Name()), true
}
