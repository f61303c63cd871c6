// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Search Interaction - these keys define the parameters for catalog discovery.
const (
	SearchLimit                = "search.limit"
	SearchKaraokeMode          = "search.karaoke_mode"
	SearchKaraokeBoosters      = "search.karaoke_boosters"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Playback Engine - these keys select and tune the external playback sink.
const (
	PlayerEngine = "player.engine"
)

// Source Resolution - these keys tune the playback source resolution engine.
const (
	ResolverHealthCheckDelay   = "resolver.health_check_delay"
	ResolverEndPollInterval    = "resolver.end_poll_interval"
	ResolverPreferredContainer = "resolver.preferred_container"
	ResolverAllowedContainers  = "resolver.allowed_containers"
	ResolverProbeDirect        = "resolver.probe_direct"
)

// TUI Appearance - these keys customize the full-screen interface.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
)

// Icon Rendering - these keys control terminal symbol variants.
const (
	IconsVariant = "icons.variant"
)

// Diagnostic Logging - these keys govern persistent log emission.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Behavior - these keys tune the command-line surface itself.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
