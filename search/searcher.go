package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/taxonomist/ai"
	"github.com/poiesic/taxonomist/core"
)

// Default query evaluation parameters.
const (
	DefaultMaxResults        = 20
	DefaultThreshold         = 0.7
	DefaultRelativeThreshold = 0.8
)

// depthPenaltyStep is subtracted from a candidate's score once per non-null
// id level, biasing shallower, more general nodes upward on textual ties.
const depthPenaltyStep = 0.03

// minSemanticQueryLen is the minimum normalized query length for semantic
// scoring; shorter queries are scored lexically only.
const minSemanticQueryLen = 3

// Hit is one raw ranked candidate. Name is the normalized document name;
// Score is the combined score after thresholding and depth penalty.
type Hit struct {
	Id    string
	Name  string
	Score float64
}

// document is the flattened, search-indexed projection of one tree node.
type document struct {
	id      string
	name    string
	tokens  []string
	vector  []float32
	penalty float64
}

// Searcher answers ranked free-text queries over a fixed document set.
// The index is built once and is safe for concurrent use.
type Searcher struct {
	docs       []document
	hasVectors bool
	embedder   ai.Embedder
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSearcher builds the search index from a flattened node sequence.
// Nodes whose normalized name has no tokens (purely punctuation or
// whitespace) are excluded. A nil embedder disables semantic scoring, as
// does an embedding failure: the index then scores lexically only.
func NewSearcher(ctx context.Context, nodes []*core.Node, embedder ai.Embedder, opts ...Option) *Searcher {
	s := &Searcher{
		embedder: embedder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, n := range nodes {
		name := NormalizeString(n.Name)
		tokens := SplitWords(name)
		if len(tokens) == 0 {
			continue
		}
		s.docs = append(s.docs, document{
			id:      n.Id,
			name:    name,
			tokens:  tokens,
			penalty: depthPenaltyStep * float64(Levels(n.Id)),
		})
	}

	if embedder != nil && len(s.docs) > 0 {
		texts := make([]string, len(s.docs))
		for i := range s.docs {
			texts[i] = s.docs[i].name
		}
		vectors, err := embedder.EmbedTexts(ctx, texts)
		if err == nil && len(vectors) != len(texts) {
			err = fmt.Errorf("embedding count mismatch: expected %d, received %d", len(texts), len(vectors))
		}
		if err != nil {
			s.logger.Warn("document embedding failed, semantic scoring disabled", "documents", len(texts), "err", err)
		} else {
			for i := range s.docs {
				s.docs[i].vector = vectors[i]
			}
			s.hasVectors = true
		}
	}

	return s
}

// Len returns the number of indexed documents.
func (s *Searcher) Len() int {
	return len(s.docs)
}

// Search scores every document against the query and returns the surviving
// candidates in rank order.
//
// Per document, the combined score is the maximum of the semantic score
// (cosine similarity against the document embedding, clamped to >= 0) and
// the squared lexical score. Scores below threshold are forced to a -1
// sentinel, then the depth penalty is subtracted. After ranking and
// truncation to maxResults, candidates scoring at or below
// relativeThreshold times the top score, or at or below zero, are dropped.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int, threshold, relativeThreshold float64) []Hit {
	query = NormalizeString(query)
	if query == "" || len(s.docs) == 0 {
		return nil
	}

	scores := s.semanticScores(ctx, query)

	queryTokens := SplitWords(query)
	for i := range s.docs {
		lexical := lexicalScore(queryTokens, s.docs[i].tokens)
		// Squaring discounts partial lexical matches relative to semantic
		// matches of equal raw magnitude.
		if squared := lexical * lexical; squared > scores[i] {
			scores[i] = squared
		}
	}

	// Threshold to the sentinel first; the penalty applies afterwards so it
	// cannot push a passing score under the threshold.
	for i := range scores {
		if scores[i] < threshold {
			scores[i] = -1
		}
		scores[i] -= s.docs[i].penalty
	}

	// Compose three stable sorts, least significant key first: id
	// ascending, name ascending, score descending. Stability turns the
	// earlier keys into tie-breakers for the later ones.
	order := make([]int, len(s.docs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return s.docs[order[a]].id < s.docs[order[b]].id })
	sort.SliceStable(order, func(a, b int) bool { return s.docs[order[a]].name < s.docs[order[b]].name })
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	maxScore := scores[order[0]]

	if maxResults < 0 {
		maxResults = 0
	}
	if len(order) > maxResults {
		order = order[:maxResults]
	}

	hits := make([]Hit, 0, len(order))
	for _, i := range order {
		if scores[i] <= maxScore*relativeThreshold || scores[i] <= 0 {
			continue
		}
		hits = append(hits, Hit{Id: s.docs[i].id, Name: s.docs[i].name, Score: scores[i]})
	}
	return hits
}

// semanticScores embeds the query and scores it against every document
// vector. Returns all zeros when semantic scoring is unavailable, the
// query is too short, or the embedding call fails.
func (s *Searcher) semanticScores(ctx context.Context, query string) []float64 {
	scores := make([]float64, len(s.docs))
	if !s.hasVectors || len(query) < minSemanticQueryLen {
		return scores
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Warn("query embedding failed, falling back to lexical scoring", "err", err)
		return scores
	}

	for i := range s.docs {
		if sim := cosineSimilarity(vector, s.docs[i].vector); sim > 0 {
			scores[i] = sim
		}
	}
	return scores
}
