package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns the version from APP_VERSION, a VERSION file, or the
// module build info, in that order
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	if v := readVersionFile("."); v != "" {
		return v
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}

	return fallbackVersion
}

// readVersionFile looks for a VERSION file in dir and its parent
func readVersionFile(dir string) string {
	for _, candidate := range []string{
		filepath.Join(dir, "VERSION"),
		filepath.Join(dir, "..", "VERSION"),
	} {
		if content, err := os.ReadFile(candidate); err == nil {
			if v := strings.TrimSpace(string(content)); v != "" {
				return v
			}
		}
	}
	return ""
}
