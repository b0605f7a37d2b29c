package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// RunFolder generates a consistent folder for the files of one run.
// Format: YYYY/MM/DD/plotkit-YYYY-MM-DD-HH-MM-SS
func RunFolder(timestamp time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d/plotkit-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

var contentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".cbor": "application/cbor",
	".csv":  "text/csv",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ContentType determines the MIME content type based on file extension
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// cleanName normalizes a slash separated file name and rejects names that
// leave the sink root
func cleanName(name string) (string, error) {
	slashed := strings.ReplaceAll(name, "\\", "/")
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid file name %q", name)
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	if cleaned == "" {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return cleaned, nil
}
