package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envPrefix limits which variables an env file may set, so a .env shared
// with other tools cannot change unrelated settings.
const envPrefix = "ISMISM_"

// globalEnvFile is the env file read from Dir().
const globalEnvFile = "env"

// LoadEnvFiles applies ISMISM_* variables from env files, first file wins per
// variable and variables already in the environment always win.
//
// Resolution order:
//  1. <projectDir>/.env.local
//  2. <projectDir>/.env
//  3. <Dir()>/env
//
// Returns the files that were read. Missing files are skipped.
func LoadEnvFiles(projectDir string) ([]string, error) {
	var paths []string
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".env.local"), filepath.Join(projectDir, ".env"))
	}
	if global := GlobalFile(globalEnvFile); global != "" {
		paths = append(paths, global)
	}

	var loaded []string
	for _, path := range paths {
		ok, err := loadEnvFile(path)
		if err != nil {
			return loaded, err
		}
		if ok {
			loaded = append(loaded, path)
		}
	}
	return loaded, nil
}

// loadEnvFile reads one env file. Reports false if it does not exist.
func loadEnvFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok || !strings.HasPrefix(key, envPrefix) {
			continue
		}
		// An empty variable counts as unset.
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return true, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return true, nil
}

// parseEnvLine extracts KEY=VALUE from a line, skipping blanks and comments.
// An "export " prefix and matching quotes around the value are removed.
func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
