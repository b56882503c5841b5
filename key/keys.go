// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Bangumi Service Integration - these keys manage authentication and matching against the tracking catalog.
const (
	BangumiUsername    = "bangumi.username"
	BangumiPrivate     = "bangumi.private"
	BangumiAccessToken = "bangumi.access_token"
	BangumiGenres      = "bangumi.genres"
	BangumiAPIURL      = "bangumi.api_url"
	BangumiCache       = "bangumi.cache"
)

// Media Server - these keys describe the statically configured media catalog used by config-driven syncs.
const (
	EmbyHost   = "emby.host"
	EmbyAPIKey = "emby.api_key"
	EmbyUserID = "emby.user_id"
)

// Outbound Network - applied to every catalog client.
const (
	NetworkProxy   = "network.proxy"
	NetworkTimeout = "network.timeout"
)

// Event Listener - these keys configure the `serve` command.
const (
	ServeAddress = "serve.address"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	IconsVariant    = "icons.variant"
)
