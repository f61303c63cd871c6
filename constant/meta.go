// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Kyoku is the canonical application identifier used for filesystem paths and CLI branding.
	Kyoku = "kyoku"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for network requests to external services.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// CookiesFile is the conventional name of the optional Netscape cookie jar
	// picked up from the executable's directory and passed to the extraction
	// service unmodified.
	CookiesFile = "cookies.txt"
)

// Build metadata, injected at link time via -ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
