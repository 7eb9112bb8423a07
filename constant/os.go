package constant

// Platform identifiers for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// SystemConfigFile is consulted when no per-user configuration exists.
const SystemConfigFile = "/etc/" + Jofsarpur + ".toml"
