// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Global is the name of the reserved table holding process-wide settings.
// Every other top-level table of the configuration file describes one series.
const Global = "global"

// Download Target - these keys locate the library root and the external downloader.
const (
	DownloadDirectory = "global.download_directory"
	FFmpeg            = "global.ffmpeg"
)

// Catalog API - these keys tune requests against the broadcaster.
const (
	APIURL         = "global.api_url"
	RequestTimeout = "global.request_timeout"
	HighestVariant = "global.highest_variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsLevel = "global.log_level"
	LogsJson  = "global.log_json"
	LogsWrite = "global.log_write"
)

// Presentation.
const (
	IconsVariant = "global.icons"
	CliColored   = "global.colored"
)

// Series table keys.
const (
	SeriesFilenames       = "filenames"
	SeriesTitle           = "title"
	SeriesExceptionPrefix = "exception-"
)
