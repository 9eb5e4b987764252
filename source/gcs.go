package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/poiesic/taxonomist/core"
	"google.golang.org/api/iterator"
)

// GCSSource loads taxonomy payloads from a Google Cloud Storage bucket. A
// path ending in "/" is treated as a prefix listing of .json objects;
// any other path is read as a single object.
type GCSSource struct {
	client *storage.Client
	bucket string
	path   string
	logger *slog.Logger
}

// NewGCSSource creates a source over gs://bucket/path using ambient
// application-default credentials.
func NewGCSSource(ctx context.Context, bucket, path string, logger *slog.Logger) (*GCSSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &GCSSource{client: client, bucket: bucket, path: path, logger: logger}, nil
}

// LoadTaxonomies reads the configured object, or every .json object under
// the configured prefix.
func (s *GCSSource) LoadTaxonomies(ctx context.Context) ([]core.RawTaxonomy, error) {
	if !strings.HasSuffix(s.path, "/") {
		raw, err := s.readObject(ctx, s.path)
		if err != nil {
			return nil, err
		}
		return []core.RawTaxonomy{raw}, nil
	}

	var taxonomies []core.RawTaxonomy
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.path})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing gs://%s/%s: %w", s.bucket, s.path, err)
		}
		if !strings.HasSuffix(attrs.Name, ".json") {
			continue
		}
		raw, err := s.readObject(ctx, attrs.Name)
		if err != nil {
			return nil, err
		}
		taxonomies = append(taxonomies, raw)
	}
	return taxonomies, nil
}

// Close releases the underlying storage client.
func (s *GCSSource) Close() error {
	return s.client.Close()
}

func (s *GCSSource) readObject(ctx context.Context, key string) (core.RawTaxonomy, error) {
	s.logger.Info("reading taxonomy from object storage", "bucket", s.bucket, "key", key)

	rc, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return core.RawTaxonomy{}, fmt.Errorf("opening gs://%s/%s: %w", s.bucket, key, err)
	}
	defer rc.Close()

	var raw core.RawTaxonomy
	if err := json.NewDecoder(rc).Decode(&raw); err != nil {
		return core.RawTaxonomy{}, fmt.Errorf("parsing gs://%s/%s: %w", s.bucket, key, err)
	}
	return raw, nil
}
