// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/jofsarpur/jofsarpur/constant"
	"github.com/jofsarpur/jofsarpur/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "JOFSARPUR_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The JOFSARPUR_CONFIG_PATH environment variable takes precedence over the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Jofsarpur))
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// UserConfigFile is the per-user configuration file.
func UserConfigFile() string {
	return filepath.Join(Config(), constant.Jofsarpur+".toml")
}

// ConfigFile picks the configuration file used when none is given on the command line:
// the per-user file when it exists, the system-wide one otherwise.
func ConfigFile() string {
	user := UserConfigFile()
	if ok, err := filesystem.IsFile(user); err == nil && ok {
		return user
	}
	return constant.SystemConfigFile
}
