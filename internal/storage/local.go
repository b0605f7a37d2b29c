package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"plotkit/internal/logger"
)

var log = logger.Component("storage")

// LocalSink writes files below a local directory
type LocalSink struct {
	baseDir string
}

// NewLocalSink creates a local sink, creating baseDir when missing
func NewLocalSink(baseDir string) (*LocalSink, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalSink{baseDir: baseDir}, nil
}

// BaseDir returns the sink root
func (l *LocalSink) BaseDir() string {
	return l.baseDir
}

// Close is a no-op for local storage
func (l *LocalSink) Close() error {
	return nil
}

// StoreFile writes data to baseDir/name and returns the file path
func (l *LocalSink) StoreFile(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}
	filePath := filepath.Join(l.baseDir, filepath.FromSlash(cleaned))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	log.Debug("Stored file", logger.Fields{"path": filePath, "bytes": len(data)})
	return filePath, nil
}

// GetFile reads baseDir/name
func (l *LocalSink) GetFile(ctx context.Context, name string) ([]byte, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	filePath := filepath.Join(l.baseDir, filepath.FromSlash(cleaned))
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// List returns the slash separated names of every file under prefix
func (l *LocalSink) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(l.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.baseDir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", l.baseDir, err)
	}
	sort.Strings(names)
	return names, nil
}
