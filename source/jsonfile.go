package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/taxonomist/core"
)

// FileSource loads taxonomy payloads from the local filesystem. A path
// ending in a separator (or pointing at a directory) is scanned
// recursively for .json files; any other path is read as a single
// taxonomy file.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a source for a local file or directory.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{path: path, logger: logger}
}

// LoadTaxonomies reads every taxonomy payload under the source path.
func (s *FileSource) LoadTaxonomies(ctx context.Context) ([]core.RawTaxonomy, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		raw, err := s.readFile(s.path)
		if err != nil {
			return nil, err
		}
		return []core.RawTaxonomy{raw}, nil
	}

	var taxonomies []core.RawTaxonomy
	err = filepath.WalkDir(s.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		raw, err := s.readFile(path)
		if err != nil {
			return err
		}
		taxonomies = append(taxonomies, raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return taxonomies, nil
}

func (s *FileSource) readFile(path string) (core.RawTaxonomy, error) {
	s.logger.Info("reading taxonomy from local file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return core.RawTaxonomy{}, err
	}

	var raw core.RawTaxonomy
	if err := json.Unmarshal(data, &raw); err != nil {
		return core.RawTaxonomy{}, fmt.Errorf("parsing taxonomy file %s: %w", path, err)
	}
	return raw, nil
}
