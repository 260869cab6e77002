// Package paths resolves the configuration and data directories of the
// ledger CLI. Each directory follows the same precedence: command line flag,
// then environment variable, then config.yaml (data directory only), then
// the platform default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the platform base directories.
const AppName = "ledger"

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "LEDGER_CONFIG_DIR"
	EnvDataDir   = "LEDGER_DATA_DIR"
)

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// base returns the platform directory for one kind of file. On Linux the
// XDG variable wins, falling back to a path under the home directory. Other
// platforms keep configuration and data together under os.UserConfigDir.
func base(xdgVar string, homeFallback ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, homeFallback...), AppName)...), nil
}

// DefaultConfigDir returns the platform default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/ledger (fallback ~/.config/ledger)
// macOS:   ~/Library/Application Support/ledger
// Windows: %APPDATA%/ledger
func DefaultConfigDir() (string, error) {
	return base("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform default data directory.
//
// Linux:   $XDG_DATA_HOME/ledger (fallback ~/.local/share/ledger)
// macOS and Windows: same as DefaultConfigDir
func DefaultDataDir() (string, error) {
	return base("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir returns flag, LEDGER_CONFIG_DIR or DefaultConfigDir, in
// that order. Overrides are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if dir := first(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns flag, LEDGER_DATA_DIR, the data_dir value from
// config.yaml or DefaultDataDir, in that order.
func ResolveDataDir(flag, configValue string) (string, error) {
	if dir := first(flag, os.Getenv(EnvDataDir), configValue); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultDataDir()
}

// ConfigFile returns the path of config.yaml inside dir.
func ConfigFile(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
