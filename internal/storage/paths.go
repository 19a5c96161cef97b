// Package storage provides persistent storage for opening books and
// simulation results.
package storage

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

const appName = "reversi"

// DataDirEnv overrides the per-user data directory.
const DataDirEnv = "REVERSI_DATA_DIR"

// baseDirs lists, per platform, the environment variable naming the data
// root and the fallback below the home directory.
var baseDirs = map[string]struct {
	env      string
	fallback []string
}{
	"darwin":  {"", []string{"Library", "Application Support"}},
	"windows": {"APPDATA", []string{"AppData", "Roaming"}},
	"linux":   {"XDG_DATA_HOME", []string{".local", "share"}},
}

// DataDir returns the per-user data directory, creating it if needed:
// ~/Library/Application Support/reversi on macOS, %APPDATA%/reversi on
// Windows and $XDG_DATA_HOME/reversi (or ~/.local/share/reversi) elsewhere.
func DataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return ensureDir(dir)
	}

	base, ok := baseDirs[runtime.GOOS]
	if !ok {
		base = baseDirs["linux"]
	}
	root := ""
	if base.env != "" {
		root = os.Getenv(base.env)
	}
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		root = filepath.Join(append([]string{home}, base.fallback...)...)
	}
	return ensureDir(filepath.Join(root, appName))
}

// DatabaseDir returns the directory holding the badger database.
func DatabaseDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	dir, err := ensureDir(filepath.Join(dataDir, "db"))
	if err != nil {
		return "", err
	}
	log.Debug().Str("dir", dir).Msg("database directory")
	return dir, nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
