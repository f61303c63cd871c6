// Package queue implements the in-memory play queue.
//
// The queue is intentionally not persisted: it mirrors the lifetime of one
// interactive session. All operations are safe for concurrent use, though
// in practice the interactive surface is the single writer.
package queue

import (
	"sync"

	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Queue is a FIFO of tracks waiting to be played.
type Queue struct {
	mu    sync.Mutex
	items []*source.Track
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends a track to the tail.
func (q *Queue) Enqueue(track *source.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, track)
}

// Next pops the head of the queue. None when empty.
func (q *Queue) Next() mo.Option[*source.Track] {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return mo.None[*source.Track]()
	}

	head := q.items[0]
	q.items = q.items[1:]
	return mo.Some(head)
}

// Peek returns the head without removing it.
func (q *Queue) Peek() mo.Option[*source.Track] {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return mo.None[*source.Track]()
	}
	return mo.Some(q.items[0])
}

// Remove drops the first queued track with the given id.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, index, found := lo.FindIndexOf(q.items, func(t *source.Track) bool {
		return t.ID == id
	}); found {
		q.items = append(q.items[:index], q.items[index+1:]...)
	}
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = nil
}

// Items returns a snapshot of the queued tracks in play order.
func (q *Queue) Items() []*source.Track {
	q.mu.Lock()
	defer q.mu.Unlock()

	return append([]*source.Track(nil), q.items...)
}

// Len reports the number of queued tracks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
