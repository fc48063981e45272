// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Streaming Resolution - these keys govern the provider/resolver pipeline that turns titles into direct URLs.
const (
	StreamingMaxRedirects   = "streaming.max_redirects"
	StreamingNetworkTimeout = "streaming.network_timeout"
)

// Media Playback - these keys maintain the state and configuration of the in-process decode engines.
const (
	PlayerVolume       = "player.volume"
	PlayerPreviewMuted = "player.preview_muted"
	PlayerSaveProgress = "player.save_progress"
)

// Command Line Interface - these keys define the CLI presentation behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// Diagnostics - these keys configure the persistence of application logs.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Iconography - these keys manage the visual rendering of CLI symbols.
const (
	IconsVariant = "icons.variant"
)
