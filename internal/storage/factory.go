package storage

import (
	"context"
	"fmt"

	"plotkit/internal/config"
)

// NewSink creates the sink selected by the configuration
func NewSink(ctx context.Context, cfg *config.Config) (Sink, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage configuration is required")
	}

	switch cfg.Storage {
	case config.StorageLocal:
		outputDir := cfg.OutputDir
		if outputDir == "" {
			outputDir = "output"
		}
		sink, err := NewLocalSink(outputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return sink, nil

	case config.StorageGCS:
		sink, err := NewGCSSink(ctx, cfg.GCSBucket, cfg.GCSPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS storage: %w", err)
		}
		return sink, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage)
	}
}
