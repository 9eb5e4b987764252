package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/taxonomy"
)

// DefaultSearchResults caps search responses when the caller does not
// pass an explicit n parameter.
const DefaultSearchResults = 50

// Server exposes the registry over HTTP.
type Server struct {
	registry *taxonomy.Registry
	logger   *slog.Logger
	engine   *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a Server with its routes registered. Every read endpoint
// exists in a versioned and an unversioned form; the unversioned form
// serves the greatest version of the named taxonomy.
func New(registry *taxonomy.Registry, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/taxonomy/", s.listTaxonomies)
	engine.POST("/reload_data_sources/", s.reload)

	for _, group := range []*gin.RouterGroup{
		engine.Group("/taxonomy/:taxonomy"),
		engine.Group("/taxonomy/:taxonomy/:version"),
	} {
		group.GET("/tree", s.tree)
		group.GET("/branch", s.branch)
		group.GET("/branch/:id", s.branch)
		group.GET("/node/:id", s.node)
		group.GET("/search", s.search)
	}

	s.engine = engine
	return s
}

// Handler returns the underlying HTTP handler, for mounting and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting taxonomy server", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) listTaxonomies(c *gin.Context) {
	c.JSON(http.StatusOK, s.registry.AvailableTaxonomies())
}

func (s *Server) reload(c *gin.Context) {
	if err := s.registry.Reload(c.Request.Context()); err != nil {
		s.logger.Error("reload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.registry.AvailableTaxonomies())
}

// resolve fetches the taxonomy addressed by the route parameters, writing
// the error response itself when the lookup fails.
func (s *Server) resolve(c *gin.Context) (*taxonomy.Taxonomy, bool) {
	tax, err := s.registry.Get(c.Param("taxonomy"), c.Param("version"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}
	return tax, true
}

func (s *Server) tree(c *gin.Context) {
	tax, ok := s.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, tax.Tree)
}

func (s *Server) branch(c *gin.Context) {
	tax, ok := s.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, tax.GetBranch(c.Param("id")))
}

func (s *Server) node(c *gin.Context) {
	tax, ok := s.resolve(c)
	if !ok {
		return
	}
	view, found := tax.GetNode(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "node " + c.Param("id") + " not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) search(c *gin.Context) {
	tax, ok := s.resolve(c)
	if !ok {
		return
	}

	maxResults := DefaultSearchResults
	if raw := c.Query("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		maxResults = n
	}

	matches, err := tax.Search(c.Request.Context(), c.Query("query"), maxResults)
	if err != nil {
		s.logger.Error("search failed", "taxonomy", tax.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, matches)
}
