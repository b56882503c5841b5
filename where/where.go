// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/anisan-cli/bgmsync/constant"
	"github.com/anisan-cli/bgmsync/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "BGMSYNC_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the directory holding bgmsync.toml.
// BGMSYNC_CONFIG_PATH takes precedence over the platform user config directory.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the directory used for tracking-catalog listings.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory for rotated log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// ConfigFile is the path viper writes to on "config write".
func ConfigFile() string {
	return filepath.Join(Config(), constant.App+".toml")
}
