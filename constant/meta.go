// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "bgmsync"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// Repository is the public home of the project, advertised in the User-Agent.
	Repository = "https://github.com/anisan-cli/bgmsync"

	// UserAgent identifies the application to the tracking catalog, which rejects anonymous agents.
	UserAgent = "anisan-cli/" + App + "/" + Version + " (" + Repository + ")"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
