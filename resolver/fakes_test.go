package resolver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kyoku-cli/kyoku/extractor"
	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/playback"
	"github.com/kyoku-cli/kyoku/source"
)

// fakeCatalog serves canned variants with an optional delay.
type fakeCatalog struct {
	variants []source.Variant
	err      error
	delay    time.Duration
}

func (f *fakeCatalog) Name() string { return "fake" }

func (f *fakeCatalog) Search(query string) ([]*source.Track, error) {
	return nil, nil
}

func (f *fakeCatalog) VariantsOf(track *source.Track) ([]source.Variant, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.variants, f.err
}

// fakeDownloader writes a canned file into the workspace, or fails.
type fakeDownloader struct {
	mu       sync.Mutex
	calls    int
	fail     bool
	filename string
	delay    time.Duration
}

func (f *fakeDownloader) Download(ctx context.Context, rawURL string, opts extractor.DownloadOptions) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.fail {
		return nil // succeeds but produces no output
	}

	name := f.filename
	if name == "" {
		name = "out.mp4"
	}

	return filesystem.API().WriteFile(filepath.Join(opts.Dir, name), []byte("data"), os.ModePerm)
}

func (f *fakeDownloader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeSink records play targets and serves a scripted state.
type fakeSink struct {
	mu      sync.Mutex
	state   playback.State
	targets []string
	playErr error
	running bool
	exited  chan struct{}
}

func newFakeSink() *fakeSink {
	return &fakeSink{state: playback.StateNothing, exited: make(chan struct{})}
}

func (f *fakeSink) Play(target string, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.playErr != nil {
		return f.playErr
	}

	f.targets = append(f.targets, target)
	f.state = playback.StatePlaying
	f.running = true
	return nil
}

func (f *fakeSink) setState(s playback.State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *fakeSink) playedTargets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.targets...)
}

func (f *fakeSink) TogglePause() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case playback.StatePlaying:
		f.state = playback.StatePaused
	case playback.StatePaused:
		f.state = playback.StatePlaying
	}
	return nil
}

func (f *fakeSink) State() (playback.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, nil
}

func (f *fakeSink) Position() (float64, error) { return 0, nil }
func (f *fakeSink) Duration() (float64, error) { return 0, nil }
func (f *fakeSink) Seek(seconds float64) error { return nil }

func (f *fakeSink) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeSink) Stop() error {
	f.setState(playback.StateStopped)
	return nil
}

func (f *fakeSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	return nil
}

func (f *fakeSink) Socket() string                                        { return "fake" }
func (f *fakeSink) StartTicker(callback func(position int, duration int)) {}
func (f *fakeSink) StopTicker()                                           {}
func (f *fakeSink) Wait() <-chan struct{}                                 { return f.exited }
