package storage

import (
	"testing"
	"time"
)

func TestRunFolder(t *testing.T) {
	tests := []struct {
		name      string
		timestamp time.Time
		expected  string
	}{
		{
			name:      "standard date and time",
			timestamp: time.Date(2025, 9, 17, 14, 30, 45, 0, time.UTC),
			expected:  "2025/09/17/plotkit-2025-09-17-14-30-45",
		},
		{
			name:      "new year date",
			timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expected:  "2025/01/01/plotkit-2025-01-01-00-00-00",
		},
		{
			name:      "single digit month and day",
			timestamp: time.Date(2025, 3, 5, 8, 7, 6, 0, time.UTC),
			expected:  "2025/03/05/plotkit-2025-03-05-08-07-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunFolder(tt.timestamp); got != tt.expected {
				t.Errorf("RunFolder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"index.html", "text/html"},
		{"chart.PNG", "image/png"},
		{"chart.svg", "image/svg+xml"},
		{"chart.json", "application/json"},
		{"chart.cbor", "application/cbor"},
		{"data.csv", "text/csv"},
		{"data.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"notes.md", "text/markdown"},
		{"archive.tar.gz", "application/octet-stream"},
		{"no-extension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := ContentType(tt.filename); got != tt.expected {
				t.Errorf("ContentType(%q) = %v, want %v", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"chart.png", "chart.png", false},
		{"/gallery/index.html", "gallery/index.html", false},
		{"gallery//./index.html", "gallery/index.html", false},
		{`gallery\index.html`, "gallery/index.html", false},
		{"sales..2020.csv", "sales..2020.csv", false},
		{"../escape.html", "", true},
		{"gallery/../../escape.html", "", true},
		{"", "", true},
		{"/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cleanName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("cleanName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("cleanName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
