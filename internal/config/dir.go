// Package config resolves the ismism configuration directory and loads the
// layered configuration file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// HomeEnv names the variable that overrides the configuration directory.
const HomeEnv = "ISMISM_CONFIG_HOME"

// appName names the per-user configuration directory.
const appName = "ismism"

// Dir returns the ismism configuration directory, or "" when no home
// directory can be determined.
//
// Resolution:
//   - $ISMISM_CONFIG_HOME, made absolute against the working directory
//   - $XDG_CONFIG_HOME/ismism
//   - %AppData%/ismism on Windows
//   - ~/.config/ismism elsewhere
func Dir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// GlobalFile returns the path of name inside Dir(), or "" when there is no
// configuration directory.
func GlobalFile(name string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}
