package resolver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/network"
)

const probeTimeout = 10 * time.Second

// ProbeDirect issues a pre-flight HEAD request against a direct candidate
// URL through the browser-fingerprinted client. A candidate that fails the
// probe is treated as absent, skipping straight to materialization instead
// of burning the stall check delay on a dead URL.
func ProbeDirect(ctx context.Context, rawURL string) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return fmt.Errorf("probe request: %w", err)
	}

	resp, err := network.Browser(req)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("probe: status %d", resp.StatusCode)
	}

	log.Infof("probe ok: %d", resp.StatusCode)
	return nil
}
