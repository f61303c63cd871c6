package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kyoku-cli/kyoku/internal/cache"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/where"
	"github.com/lrstanley/go-ytdlp"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Client discovers tracks and variants through yt-dlp.
// It implements source.Catalog.
type Client struct{}

// New returns a yt-dlp backed catalog client.
func New() *Client {
	return &Client{}
}

// Name returns the unique identifier for the catalog backend.
func (c *Client) Name() string {
	return "youtube"
}

// Search runs a flat playlist search and returns the discovered tracks.
//
// The query is wrapped in a ytsearchN: pseudo-URL so a single extraction
// yields up to N entries without resolving any of them individually. When
// karaoke mode is enabled the configured booster terms are appended to bias
// results towards instrumental and backing-track uploads.
func (c *Client) Search(query string) ([]*source.Track, error) {
	limit := viper.GetInt(key.SearchLimit)
	effective := effectiveQuery(query)

	log.Infof("searching %q (limit %d)", effective, limit)

	cacheKey := cache.GenerateKey(fmt.Sprintf("%s:%d", effective, limit), c.Name())

	var cached []*source.Track
	if cache.Read(cacheKey, &cached) {
		log.Infof("search cache hit, %d tracks", len(cached))
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), invocationTimeout)
	defer cancel()

	cmd := ytdlp.New().
		DumpSingleJSON().
		FlatPlaylist().
		SkipDownload().
		IgnoreConfig().
		NoWarnings()
	c.applyCookies(cmd)

	result, err := cmd.Run(ctx, fmt.Sprintf("ytsearch%d:%s", limit, effective))
	if err != nil {
		log.Error(err)
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var payload searchPayload
	if err = json.Unmarshal([]byte(result.Stdout), &payload); err != nil {
		return nil, fmt.Errorf("decode search output: %w", err)
	}

	entries := lo.Filter(payload.Entries, func(e entryPayload, _ int) bool {
		return e.ID != ""
	})

	tracks := lo.Map(entries, func(e entryPayload, i int) *source.Track {
		return e.toTrack(uint16(i))
	})

	log.Infof("found %d tracks", len(tracks))

	if err = cache.Write(cacheKey, tracks); err != nil {
		log.Error(err)
	}

	return tracks, nil
}

// VariantsOf extracts the full format list for a track.
func (c *Client) VariantsOf(track *source.Track) ([]source.Variant, error) {
	log.Infof("extracting variants of %s", track.ID)

	ctx, cancel := context.WithTimeout(context.Background(), invocationTimeout)
	defer cancel()

	cmd := ytdlp.New().
		DumpSingleJSON().
		SkipDownload().
		IgnoreConfig().
		NoWarnings()
	c.applyCookies(cmd)

	result, err := cmd.Run(ctx, track.URL())
	if err != nil {
		log.Error(err)
		return nil, fmt.Errorf("extraction failed for %s: %w", track.ID, err)
	}

	return decodeVariants([]byte(result.Stdout), track.ID)
}

// decodeVariants parses a full extraction dump into variants. An empty
// usable format list is an extraction failure, not a success with no
// results: it wraps ErrNoVariants so the resolution engine falls back.
func decodeVariants(raw []byte, trackID string) ([]source.Variant, error) {
	var payload infoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode extraction output: %w", err)
	}

	variants := payload.toVariants()
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoVariants, trackID)
	}

	return variants, nil
}

// effectiveQuery appends the configured booster terms when karaoke mode
// is active.
func effectiveQuery(query string) string {
	if !viper.GetBool(key.SearchKaraokeMode) {
		return query
	}

	boosters := strings.TrimSpace(viper.GetString(key.SearchKaraokeBoosters))
	if boosters == "" {
		return query
	}

	return query + " " + boosters
}

// applyCookies passes the user's cookies file to yt-dlp when one exists
// next to the executable or in the config directory.
func (c *Client) applyCookies(cmd *ytdlp.Command) {
	if path, ok := where.Cookies().Get(); ok {
		log.Infof("using cookies from %s", path)
		cmd.Cookies(path)
	}
}
