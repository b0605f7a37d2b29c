package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"plotkit/internal/logger"
)

// GCSSink writes files as objects of a Google Cloud Storage bucket
type GCSSink struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSSink creates a GCS sink. Object names are joined to prefix.
func NewGCSSink(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSSink, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS bucket name is required")
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSSink{client: client, bucket: bucket, prefix: prefix}, nil
}

// Close closes the GCS client
func (g *GCSSink) Close() error {
	return g.client.Close()
}

func (g *GCSSink) object(name string) (string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if g.prefix == "" {
		return cleaned, nil
	}
	return cleanName(g.prefix + "/" + cleaned)
}

// StoreFile uploads data and returns its gs:// URL
func (g *GCSSink) StoreFile(ctx context.Context, name string, data []byte) (string, error) {
	objectPath, err := g.object(name)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("gs://%s/%s", g.bucket, objectPath)
	log.Info("Storing file to GCS", logger.Fields{"url": url, "bytes": len(data)})

	writer := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = ContentType(name)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
		"filename":     name,
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}
	return url, nil
}

// GetFile downloads an object
func (g *GCSSink) GetFile(ctx context.Context, name string) ([]byte, error) {
	objectPath, err := g.object(name)
	if err != nil {
		return nil, err
	}
	reader, err := g.client.Bucket(g.bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", objectPath, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", objectPath, err)
	}
	return data, nil
}

// List returns the object names under prefix, relative to the sink prefix
func (g *GCSSink) List(ctx context.Context, prefix string) ([]string, error) {
	root := ""
	if g.prefix != "" {
		root = g.prefix + "/"
	}
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: root + prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		names = append(names, attrs.Name[len(root):])
	}
	sort.Strings(names)
	return names, nil
}
