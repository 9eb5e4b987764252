package search

import (
	"context"
	"fmt"
	"math"

	"github.com/poiesic/taxonomist/ai"
	"github.com/poiesic/taxonomist/core"
)

// NormalizedSearcher wraps a Searcher over a taxonomy's full document set,
// resolving raw result ids back to complete node records (metadata
// included) and rescaling raw scores into [0, 1] for presentation.
type NormalizedSearcher struct {
	docs     []*core.Node
	searcher *Searcher
}

// NewNormalizedSearcher indexes the given children-stripped node sequence.
func NewNormalizedSearcher(ctx context.Context, docs []*core.Node, embedder ai.Embedder, opts ...Option) *NormalizedSearcher {
	return &NormalizedSearcher{
		docs:     docs,
		searcher: NewSearcher(ctx, docs, embedder, opts...),
	}
}

// Lookup resolves a search id to its full record.
//
// Some legacy taxonomies reused id "0" for both a generic "unspecified"
// bucket and the literal "Uncategorized" category; when multiple records
// share an id and the first is named exactly "Uncategorized", that one
// wins. Any other multi-match is invalid taxonomy data and returns
// core.ErrAmbiguousId.
func (ns *NormalizedSearcher) Lookup(id string) (*core.Node, error) {
	var matches []*core.Node
	for _, d := range ns.docs {
		if d.Id == id {
			matches = append(matches, d)
		}
	}

	if len(matches) > 1 && matches[0].Name == "Uncategorized" {
		matches = matches[:1]
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("%w: node %q", core.ErrNotFound, id)
	default:
		return nil, fmt.Errorf("%w: %d records share id %q", core.ErrAmbiguousId, len(matches), id)
	}
}

// Search runs a ranked query and merges each surviving document's full
// record with its rescaled score. Scores are min-max rescaled into [0, 1]
// across the current result batch only and rounded to 3 decimal places.
func (ns *NormalizedSearcher) Search(ctx context.Context, text string, maxResults int, threshold float64) ([]core.Match, error) {
	hits := ns.searcher.Search(ctx, text, maxResults, threshold, DefaultRelativeThreshold)

	scores := make([]float64, len(hits))
	for i, h := range hits {
		scores[i] = h.Score
	}
	rescale(scores)

	matches := make([]core.Match, 0, len(hits))
	for i, h := range hits {
		node, err := ns.Lookup(h.Id)
		if err != nil {
			return nil, err
		}
		matches = append(matches, core.Match{
			Score:    round3(scores[i]),
			Id:       node.Id,
			Name:     node.Name,
			Metadata: node.Metadata,
		})
	}
	return matches, nil
}

// rescale min-max normalizes scores into [0, 1] across the batch. Batches
// with fewer than two distinct values are left unchanged.
func rescale(scores []float64) {
	if len(scores) == 0 {
		return
	}
	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	if hi-lo <= 0 {
		return
	}
	for i := range scores {
		scores[i] = (scores[i] - lo) / (hi - lo)
	}
}

func round3(s float64) float64 {
	return math.Round(s*1000) / 1000
}
