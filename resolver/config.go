package resolver

import (
	"time"

	"github.com/kyoku-cli/kyoku/key"
	"github.com/spf13/viper"
)

// Config is a point-in-time snapshot of the resolver tunables.
//
// A snapshot is taken on the goroutine that initiates a resolution and
// travels with the request, so the worker and its timers never read the
// shared configuration store while the interactive surface may be
// writing to it.
type Config struct {
	// PreferredContainer is ranked above all others during direct
	// candidate selection.
	PreferredContainer string

	// AllowedContainers are the only containers considered directly
	// playable.
	AllowedContainers []string

	// ProbeDirect enables the pre-flight HEAD request against the
	// selected direct candidate.
	ProbeDirect bool

	// HealthCheckDelay is how long after a direct start the one-shot
	// stall check fires.
	HealthCheckDelay time.Duration

	// EndPollInterval is the period of the end-of-media watch.
	EndPollInterval time.Duration
}

// LoadConfig reads the current resolver configuration, substituting
// defaults for unset or invalid values.
func LoadConfig() Config {
	cfg := Config{
		PreferredContainer: viper.GetString(key.ResolverPreferredContainer),
		AllowedContainers:  viper.GetStringSlice(key.ResolverAllowedContainers),
		ProbeDirect:        viper.GetBool(key.ResolverProbeDirect),
		HealthCheckDelay:   time.Duration(viper.GetInt(key.ResolverHealthCheckDelay)) * time.Millisecond,
		EndPollInterval:    time.Duration(viper.GetInt(key.ResolverEndPollInterval)) * time.Millisecond,
	}

	if cfg.PreferredContainer == "" {
		cfg.PreferredContainer = "mp4"
	}

	if len(cfg.AllowedContainers) == 0 {
		cfg.AllowedContainers = []string{"mp4", "webm"}
	}

	if cfg.HealthCheckDelay <= 0 {
		cfg.HealthCheckDelay = 1200 * time.Millisecond
	}

	if cfg.EndPollInterval <= 0 {
		cfg.EndPollInterval = time.Second
	}

	return cfg
}
