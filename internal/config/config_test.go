package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configEnvVars = []string{
	"PLOTKIT_OUTPUT_DIR", "PLOTKIT_STORAGE", "PLOTKIT_MINIFY", "GCS_BUCKET", "GCS_PREFIX",
	"PLOTKIT_THEME", "PLOTKIT_ASSETS_HOST", "PLOTKIT_HTTP_TIMEOUT", "PLOTKIT_HTTP_RETRIES",
	"ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv unsets every variable Config reads for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError string
		validate    func(t *testing.T, cfg *Config)
	}{
		{
			name:    "defaults",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.OutputDir != "./output" {
					t.Errorf("Expected default OutputDir './output', got '%s'", cfg.OutputDir)
				}
				if cfg.Storage != StorageLocal {
					t.Errorf("Expected default Storage 'local', got '%s'", cfg.Storage)
				}
				if !cfg.Minify {
					t.Error("Expected Minify to default to true")
				}
				if cfg.Theme != "white" {
					t.Errorf("Expected default Theme 'white', got '%s'", cfg.Theme)
				}
				if cfg.HTTPTimeout != 30*time.Second {
					t.Errorf("Expected default HTTPTimeout 30s, got %v", cfg.HTTPTimeout)
				}
				if cfg.HTTPRetries != 3 {
					t.Errorf("Expected default HTTPRetries 3, got %d", cfg.HTTPRetries)
				}
				if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
					t.Errorf("Expected info/text logging, got %s/%s", cfg.LogLevel, cfg.LogFormat)
				}
				if !strings.HasPrefix(cfg.AssetsHost, "https://") {
					t.Errorf("Expected https assets host, got '%s'", cfg.AssetsHost)
				}
			},
		},
		{
			name: "custom values",
			envVars: map[string]string{
				"PLOTKIT_OUTPUT_DIR":   "/tmp/charts",
				"PLOTKIT_MINIFY":       "false",
				"PLOTKIT_THEME":        "westeros",
				"PLOTKIT_HTTP_TIMEOUT": "5s",
				"PLOTKIT_HTTP_RETRIES": "0",
				"LOG_LEVEL":            "debug",
				"LOG_FORMAT":           "json",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.OutputDir != "/tmp/charts" {
					t.Errorf("Expected OutputDir '/tmp/charts', got '%s'", cfg.OutputDir)
				}
				if cfg.Minify {
					t.Error("Expected Minify false")
				}
				if cfg.Theme != "westeros" {
					t.Errorf("Expected Theme 'westeros', got '%s'", cfg.Theme)
				}
				if cfg.HTTPTimeout != 5*time.Second {
					t.Errorf("Expected HTTPTimeout 5s, got %v", cfg.HTTPTimeout)
				}
				if cfg.HTTPRetries != 0 {
					t.Errorf("Expected HTTPRetries 0, got %d", cfg.HTTPRetries)
				}
				if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
					t.Errorf("Expected debug/json logging, got %s/%s", cfg.LogLevel, cfg.LogFormat)
				}
			},
		},
		{
			name: "gcs storage with bucket",
			envVars: map[string]string{
				"PLOTKIT_STORAGE": "gcs",
				"GCS_BUCKET":      "charts-bucket",
				"GCS_PREFIX":      "gallery",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.GCSBucket != "charts-bucket" || cfg.GCSPrefix != "gallery" {
					t.Errorf("Expected bucket/prefix charts-bucket/gallery, got %s/%s", cfg.GCSBucket, cfg.GCSPrefix)
				}
			},
		},
		{
			name:        "gcs storage without bucket",
			envVars:     map[string]string{"PLOTKIT_STORAGE": "gcs"},
			expectError: "GCS_BUCKET is required",
		},
		{
			name:        "unknown storage",
			envVars:     map[string]string{"PLOTKIT_STORAGE": "s3"},
			expectError: "unsupported PLOTKIT_STORAGE",
		},
		{
			name:        "negative retries",
			envVars:     map[string]string{"PLOTKIT_HTTP_RETRIES": "-1"},
			expectError: "PLOTKIT_HTTP_RETRIES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := LoadWithEnvFile(context.Background(), "")

			if tt.expectError != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q, got none", tt.expectError)
				}
				if !strings.Contains(err.Error(), tt.expectError) {
					t.Errorf("Expected error containing %q, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoadWithEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), "plotkit.env")
	content := "PLOTKIT_OUTPUT_DIR=from-file\nPLOTKIT_THEME=dark\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	// the environment takes precedence over the file
	t.Setenv("PLOTKIT_THEME", "shine")

	cfg, err := LoadWithEnvFile(context.Background(), envFile)
	if err != nil {
		t.Fatalf("LoadWithEnvFile failed: %v", err)
	}
	if cfg.OutputDir != "from-file" {
		t.Errorf("Expected OutputDir from file, got '%s'", cfg.OutputDir)
	}
	if cfg.Theme != "shine" {
		t.Errorf("Expected environment Theme 'shine', got '%s'", cfg.Theme)
	}
}

func TestLoadWithMissingEnvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithEnvFile(context.Background(), filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Expected missing env file to be ignored, got: %v", err)
	}
	if cfg.Storage != StorageLocal {
		t.Errorf("Expected default storage, got '%s'", cfg.Storage)
	}
}
