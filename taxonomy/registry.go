package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/taxonomist/ai"
	"github.com/poiesic/taxonomist/core"
)

// DataSource supplies raw taxonomy payloads to the registry. Implementations
// live outside this package (local files, object storage, fixtures).
type DataSource interface {
	// LoadTaxonomies returns every payload the source currently provides.
	LoadTaxonomies(ctx context.Context) ([]core.RawTaxonomy, error)
}

// snapshot is one immutable generation of the registry's contents.
type snapshot struct {
	// name -> version -> taxonomy
	taxonomies map[string]map[string]*Taxonomy
	loadedAt   time.Time
}

// Registry owns every loaded taxonomy, keyed by name and version.
//
// Reload is serialized by a mutex and replaces the whole snapshot
// atomically, so readers never take a lock and never observe a partially
// rebuilt generation: a caller holding a Taxonomy from the previous
// snapshot keeps a fully consistent view.
type Registry struct {
	sources  []DataSource
	embedder ai.Embedder
	poolSize int
	logger   *slog.Logger

	reloadMu sync.Mutex
	current  atomic.Pointer[snapshot]
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets a custom logger.
// Default is slog.Default().
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPoolSize sets the number of workers used to build taxonomies during
// a reload. Default is the number of CPUs.
func WithPoolSize(size int) RegistryOption {
	return func(r *Registry) {
		if size > 0 {
			r.poolSize = size
		}
	}
}

// NewRegistry creates an empty registry over the given data sources. Call
// Reload to populate it; the embedder may be nil for lexical-only search.
func NewRegistry(sources []DataSource, embedder ai.Embedder, opts ...RegistryOption) *Registry {
	r := &Registry{
		sources:  sources,
		embedder: embedder,
		poolSize: runtime.NumCPU(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.current.Store(&snapshot{taxonomies: map[string]map[string]*Taxonomy{}})
	return r
}

// Get returns the specified version of a taxonomy. An empty version
// resolves to the lexicographically greatest version string present for
// that name (not semantic-version aware). Unknown names or versions
// return core.ErrNotFound.
func (r *Registry) Get(name, version string) (*Taxonomy, error) {
	snap := r.current.Load()

	versions, ok := snap.taxonomies[name]
	if !ok {
		return nil, fmt.Errorf("%w: taxonomy %q", core.ErrNotFound, name)
	}
	if version == "" {
		available := slices.Sorted(maps.Keys(versions))
		version = available[len(available)-1]
	} else if _, ok := versions[version]; !ok {
		return nil, fmt.Errorf("%w: version %q of taxonomy %q", core.ErrNotFound, version, name)
	}
	return versions[version], nil
}

// AvailableTaxonomies returns every registered name with its sorted
// version strings, plus the time of the last successful reload.
func (r *Registry) AvailableTaxonomies() core.Catalog {
	snap := r.current.Load()

	catalog := core.Catalog{
		LastLoadTime: snap.loadedAt,
		Taxonomies:   make(map[string]core.VersionSet, len(snap.taxonomies)),
	}
	for name, versions := range snap.taxonomies {
		catalog.Taxonomies[name] = core.VersionSet{Versions: slices.Sorted(maps.Keys(versions))}
	}
	return catalog
}

// Reload rebuilds the entire registry from its data sources and swaps it
// in atomically. Payloads are built concurrently on a worker pool, but the
// replacement is all-or-nothing: if any payload fails to load or
// validate, the previous snapshot remains in effect and the error is
// returned.
func (r *Registry) Reload(ctx context.Context) error {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	r.logger.Info("reloading registry with latest taxonomies", "sources", len(r.sources))

	var raws []core.RawTaxonomy
	for _, src := range r.sources {
		batch, err := src.LoadTaxonomies(ctx)
		if err != nil {
			return err
		}
		raws = append(raws, batch...)
	}

	built, err := r.buildAll(ctx, raws)
	if err != nil {
		return err
	}

	next := make(map[string]map[string]*Taxonomy)
	for _, t := range built {
		versions := next[t.Name]
		if versions == nil {
			versions = make(map[string]*Taxonomy)
			next[t.Name] = versions
		}
		versions[t.Version] = t
		r.logger.Info("registered taxonomy", "taxonomy", t.Name, "version", t.Version, "nodes", t.NodeCount())
	}

	r.current.Store(&snapshot{taxonomies: next, loadedAt: time.Now()})
	return nil
}

// buildAll constructs a Taxonomy per payload on a bounded worker pool.
func (r *Registry) buildAll(ctx context.Context, raws []core.RawTaxonomy) ([]*Taxonomy, error) {
	pool, err := ants.NewPool(r.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	built := make([]*Taxonomy, len(raws))
	errs := make([]error, len(raws))
	var wg sync.WaitGroup

	for i, raw := range raws {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			built[i], errs[i] = New(ctx, raw, r.embedder, WithLogger(r.logger))
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return built, nil
}
