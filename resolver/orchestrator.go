package resolver

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/playback"
	"github.com/kyoku-cli/kyoku/source"
)

// EventKind classifies orchestrator notifications.
type EventKind int

const (
	// EventStatus is a transient progress message.
	EventStatus EventKind = iota
	// EventPlayingDirect means a direct stream URL was handed to the sink.
	EventPlayingDirect
	// EventPlayingLocal means a materialized local file was handed to the sink.
	EventPlayingLocal
	// EventFailed means the track is genuinely unplayable.
	EventFailed
	// EventEnded means the current media played through to its end.
	EventEnded
)

// Event is one orchestrator notification delivered to the interactive surface.
type Event struct {
	Kind    EventKind
	Track   *source.Track
	Message string
	// Target is the URL or file path handed to the sink for playing events.
	Target string
}

// request is one unit of work for the background worker. The config
// snapshot is taken on the caller's goroutine; the worker never reads
// configuration itself.
type request struct {
	token uint64
	track *source.Track
	cfg   Config
	// fallback skips direct selection and goes straight to materialization.
	fallback bool
}

// Orchestrator sequences extraction, candidate selection, materialization
// and playback into a single fail-over pipeline.
//
// All resolution work runs serially on one long-lived background worker so
// the interactive surface never blocks. Every asynchronous step carries the
// session token it was started for; a new request bumps the token, which
// turns every in-flight callback and result of the old session into a no-op.
type Orchestrator struct {
	catalog source.Catalog
	dl      Downloader
	sink    playback.Sink
	monitor *Monitor

	session  atomic.Uint64
	requests chan request
	events   chan Event
	done     chan struct{}

	wg        sync.WaitGroup
	closeOnce sync.Once

	mu       sync.Mutex
	activeWs *Workspace
}

// New creates an orchestrator and starts its background worker and the
// end-of-media watch.
func New(catalog source.Catalog, dl Downloader, sink playback.Sink) *Orchestrator {
	o := &Orchestrator{
		catalog:  catalog,
		dl:       dl,
		sink:     sink,
		monitor:  NewMonitor(sink),
		requests: make(chan request, 16),
		events:   make(chan Event, 64),
		done:     make(chan struct{}),
	}

	cfg := LoadConfig()

	o.wg.Add(2)

	go func() {
		defer o.wg.Done()
		o.loop()
	}()

	go func() {
		defer o.wg.Done()
		o.monitor.WatchEnd(cfg.EndPollInterval, o.done, func() {
			o.emit(Event{Kind: EventEnded})
		})
	}()

	return o
}

// Events returns the single-consumer notification channel.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// ResolveAndPlay starts resolution of the given track. Fire-and-forget:
// it returns as soon as the request is enqueued and all outcomes arrive
// as events. A new call supersedes any in-flight resolution.
func (o *Orchestrator) ResolveAndPlay(track *source.Track) {
	token := o.session.Add(1)

	// Tear down the previous session before the new one becomes active.
	o.teardown()

	select {
	case o.requests <- request{token: token, track: track, cfg: LoadConfig()}:
	default:
		log.Warnf("request queue full, dropping resolution of %s", track.ID)
	}
}

// TogglePause inverts the sink's suspension state. No-op without an
// active session.
func (o *Orchestrator) TogglePause() {
	if !o.sink.IsRunning() {
		return
	}

	if err := o.sink.TogglePause(); err != nil {
		log.Error(err)
	}
}

// Stop halts the sink and invalidates in-flight callbacks. Workspace
// cleanup is left to teardown on the next request or Close.
func (o *Orchestrator) Stop() {
	o.session.Add(1)

	if o.sink.IsRunning() {
		if err := o.sink.Stop(); err != nil {
			log.Error(err)
		}
	}
}

// Close shuts the orchestrator down: the worker and the end-of-media
// watch are joined, the sink is terminated and every live workspace is
// purged. Joining before the purge matters: a materialization still in
// flight would otherwise recreate files after they were removed.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.session.Add(1)
		close(o.done)
		o.wg.Wait()
		_ = o.sink.Close()
		o.teardown()
		PurgeAll()
	})
}

// loop is the background worker. Requests whose token no longer matches
// the active session are skipped without side effects.
func (o *Orchestrator) loop() {
	for {
		select {
		case <-o.done:
			return
		case req := <-o.requests:
			if o.stale(req.token) {
				continue
			}

			if req.fallback {
				o.materializeAndPlay(req)
				continue
			}

			o.resolve(req)
		}
	}
}

// resolve attempts the direct path and falls through to materialization.
// Direct-path failures are logged, never surfaced: they are an expected,
// frequent outcome.
func (o *Orchestrator) resolve(req request) {
	o.emit(Event{Kind: EventStatus, Track: req.track, Message: fmt.Sprintf("Resolving %s", req.track.Title)})

	variants, err := o.catalog.VariantsOf(req.track)
	if err != nil {
		log.Warnf("%v: %v", ErrExtraction, err)
		o.materializeAndPlay(req)
		return
	}

	candidate, ok := SelectDirect(variants, req.cfg).Get()
	if !ok {
		log.Infof("no progressive candidate for %s", req.track.ID)
		o.materializeAndPlay(req)
		return
	}

	if req.cfg.ProbeDirect {
		if err = ProbeDirect(context.Background(), candidate.URL); err != nil {
			log.Warnf("direct candidate rejected: %v", err)
			o.materializeAndPlay(req)
			return
		}
	}

	if o.stale(req.token) {
		return
	}

	if err = o.sink.Play(candidate.URL, req.track.Title); err != nil {
		log.Warnf("%v: %v", ErrSink, err)
		o.materializeAndPlay(req)
		return
	}

	o.emit(Event{Kind: EventPlayingDirect, Track: req.track, Target: candidate.URL, Message: fmt.Sprintf("Playing %s", req.track.Title)})

	// One-shot stall check tied to this play attempt. Firing enqueues the
	// materialization fallback on the worker instead of running inline on
	// the timer goroutine.
	o.monitor.Arm(req.cfg.HealthCheckDelay, func() bool { return !o.stale(req.token) }, func() {
		log.Warnf("direct playback of %s stalled, falling back", req.track.ID)
		o.emit(Event{Kind: EventStatus, Track: req.track, Message: "Stream stalled, downloading instead"})

		select {
		case o.requests <- request{token: req.token, track: req.track, cfg: req.cfg, fallback: true}:
		default:
		}
	})
}

// materializeAndPlay is the terminal resolution step. Its failures reach
// the user; the orchestrator returns to idle either way.
func (o *Orchestrator) materializeAndPlay(req request) {
	o.emit(Event{Kind: EventStatus, Track: req.track, Message: fmt.Sprintf("Downloading %s", req.track.Title)})

	ws, path, err := Materialize(context.Background(), req.track, o.dl)
	if err != nil {
		o.emit(Event{Kind: EventFailed, Track: req.track, Message: fmt.Sprintf("Cannot play %s: %v", req.track.Title, err)})
		return
	}

	// The download is never interrupted; a superseded result is discarded here.
	if o.stale(req.token) {
		ws.Purge()
		return
	}

	if err = o.sink.Play(path, req.track.Title); err != nil {
		ws.Purge()
		o.emit(Event{Kind: EventFailed, Track: req.track, Message: fmt.Sprintf("Cannot play %s: %v", req.track.Title, err)})
		return
	}

	o.mu.Lock()
	o.activeWs = ws
	o.mu.Unlock()

	o.emit(Event{Kind: EventPlayingLocal, Track: req.track, Target: path, Message: fmt.Sprintf("Playing local file for %s", req.track.Title)})
}

// teardown stops the sink and purges the previous session's workspace.
func (o *Orchestrator) teardown() {
	if o.sink.IsRunning() {
		if err := o.sink.Stop(); err != nil {
			log.Warnf("stop sink: %v", err)
		}
	}

	o.mu.Lock()
	ws := o.activeWs
	o.activeWs = nil
	o.mu.Unlock()

	if ws != nil {
		ws.Purge()
	}
}

func (o *Orchestrator) stale(token uint64) bool {
	return token != o.session.Load()
}

// emit delivers an event without ever blocking the worker. Events past
// an unread backlog are dropped.
func (o *Orchestrator) emit(event Event) {
	select {
	case o.events <- event:
	default:
		log.Warnf("event channel full, dropping %d", event.Kind)
	}
}
