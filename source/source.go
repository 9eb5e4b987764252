package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/taxonomist/taxonomy"
)

// EnvSources is the environment flag the serve command reads its source
// list from. Comma-separated list of locations. Accepted formats:
//
//	path/to/local/file.json
//	path/to/local/recursive/directory/
//	gs://bucket_name/path/to/file.json
//	gs://bucket_name/path/to/prefix/
const EnvSources = "TAXONOMY_JSON_FILE_DATA_SOURCES"

const gcsScheme = "gs://"

// FromSpec parses a comma-separated source list into data sources. Object
// storage locations open a client eagerly so misconfiguration surfaces at
// startup rather than on first reload.
func FromSpec(ctx context.Context, spec string, logger *slog.Logger) ([]taxonomy.DataSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var sources []taxonomy.DataSource
	for _, location := range strings.Split(spec, ",") {
		location = strings.TrimSpace(location)
		if location == "" {
			continue
		}

		if strings.HasPrefix(location, gcsScheme) {
			bucket, path, ok := strings.Cut(strings.TrimPrefix(location, gcsScheme), "/")
			if !ok || bucket == "" {
				return nil, fmt.Errorf("invalid object storage source %q; must be in format %sbucket_name/...", location, gcsScheme)
			}
			src, err := NewGCSSource(ctx, bucket, path, logger)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
			continue
		}

		sources = append(sources, NewFileSource(location, logger))
	}
	return sources, nil
}
