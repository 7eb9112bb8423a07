// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Jofsarpur is the canonical application identifier used for filesystem paths and CLI branding.
	Jofsarpur = "jofsarpur"

	// Version is the current application semantic version string.
	Version = "0.2.0"

	// UserAgent is sent with every request to the broadcaster's API.
	UserAgent = Jofsarpur + "/" + Version
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
