package extractor

import (
	"strings"

	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/lo"
)

// searchPayload mirrors the single-JSON output of a flat ytsearch extraction.
type searchPayload struct {
	Entries []entryPayload `json:"entries"`
}

// entryPayload is one flat search result.
type entryPayload struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Channel  string  `json:"channel"`
	Uploader string  `json:"uploader"`
}

func (e entryPayload) toTrack(index uint16) *source.Track {
	channel := e.Channel
	if channel == "" {
		channel = e.Uploader
	}

	return &source.Track{
		ID:       e.ID,
		Title:    e.Title,
		Duration: int(e.Duration),
		Channel:  channel,
		Index:    index,
	}
}

// infoPayload mirrors the single-JSON output of a full video extraction.
type infoPayload struct {
	Formats []formatPayload `json:"formats"`
}

// formatPayload is one entry of the extracted formats list.
type formatPayload struct {
	URL      string  `json:"url"`
	Protocol string  `json:"protocol"`
	Ext      string  `json:"ext"`
	Acodec   string  `json:"acodec"`
	Vcodec   string  `json:"vcodec"`
	Height   float64 `json:"height"`
	TBR      float64 `json:"tbr"`
}

// toVariants converts the extracted format list, dropping entries with no
// usable URL. An empty result is the caller's ErrNoVariants condition.
func (p infoPayload) toVariants() []source.Variant {
	return lo.FilterMap(p.Formats, func(f formatPayload, _ int) (source.Variant, bool) {
		if strings.TrimSpace(f.URL) == "" {
			return source.Variant{}, false
		}
		return f.toVariant(), true
	})
}

func (f formatPayload) toVariant() source.Variant {
	return source.Variant{
		URL:      f.URL,
		Protocol: f.Protocol,
		Ext:      f.Ext,
		HasAudio: f.Acodec != "" && f.Acodec != "none",
		HasVideo: f.Vcodec != "" && f.Vcodec != "none",
		Height:   int(f.Height),
		Bitrate:  f.TBR,
	}
}
