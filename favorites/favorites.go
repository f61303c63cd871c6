// Package favorites provides the persisted registry of tracks the user saved for later.
package favorites

import (
	"fmt"
	"time"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Record is one persisted favorite.
type Record struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Duration int       `json:"duration"`
	Channel  string    `json:"channel"`
	AddedAt  time.Time `json:"added_at"`
}

// Track converts the record back into a playable reference.
func (r *Record) Track() *source.Track {
	return &source.Track{
		ID:       r.ID,
		Title:    r.Title,
		Duration: r.Duration,
		Channel:  r.Channel,
	}
}

// cacher provides an abstracted, disk-backed registry for favorite records.
var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.Favorites(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete favorites collection keyed by track id.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// All returns the favorites ordered by the time they were added.
func All() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := lo.Values(saved)
	slices.SortFunc(records, func(a, b *Record) int {
		return int(a.AddedAt.Unix() - b.AddedAt.Unix())
	})

	return records, nil
}

// Add persists a track as a favorite. Duplicates by id are rejected.
func Add(track *source.Track) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	if _, exists := saved[track.ID]; exists {
		return fmt.Errorf("%s is already a favorite", track.Title)
	}

	saved[track.ID] = &Record{
		ID:       track.ID,
		Title:    track.Title,
		Duration: track.Duration,
		Channel:  track.Channel,
		AddedAt:  time.Now(),
	}

	return cacher.Set(saved)
}

// Remove permanently deletes a favorite by track id. Unknown ids are a no-op.
func Remove(id string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, id)
	return cacher.Set(saved)
}

// Has reports whether a track id is already saved.
func Has(id string) bool {
	saved, err := Get()
	if err != nil {
		return false
	}

	_, exists := saved[id]
	return exists
}
