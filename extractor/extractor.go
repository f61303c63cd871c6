// Package extractor implements the source.Catalog interface on top of yt-dlp.
//
// All discovery goes through yt-dlp subprocess invocations with JSON output;
// the binary is managed (downloaded and updated) by the go-ytdlp runtime.
package extractor

import (
	"context"
	"errors"
	"time"

	"github.com/kyoku-cli/kyoku/log"
	"github.com/lrstanley/go-ytdlp"
)

const invocationTimeout = 2 * time.Minute

// ErrNoVariants means extraction succeeded but yielded no format with a
// usable URL. Callers treat it like any other extraction failure.
var ErrNoVariants = errors.New("no playable variants extracted")

// Ensure downloads the yt-dlp binary if it is not already present.
// Safe to call multiple times.
func Ensure(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	if err != nil {
		log.Error(err)
	}
	return err
}
