// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Movix is the canonical application identifier used for filesystem paths and CLI branding.
	Movix = "movix"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for network requests to external catalogs and hosters.
	UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/120.0.0.0"
)
