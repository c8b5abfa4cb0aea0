package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath resolves the runtime directory before any .env file is
// loaded, so the installer and the .env loader agree on its location.
func GetRuntimePath() string {
	path := os.Getenv("SPARROW_RUNTIME_PATH")
	if path == "" {
		path = ".sparrowbot"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
