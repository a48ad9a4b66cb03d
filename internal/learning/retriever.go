package learning

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vector"
)

// Retrieval defaults.
const (
	DefaultLimit         = 10
	DefaultMinSimilarity = 0.5
)

// ExampleFilter narrows the candidate pool returned by an ExampleStore.
// Empty fields do not filter.
type ExampleFilter struct {
	Industry    string
	RoleLevel   string
	OutcomeType types.OutcomeType
	// HasEmbedding restricts results to rows with a stored embedding.
	HasEmbedding bool
	// Limit caps the number of rows; zero means no cap.
	Limit int
}

// ExampleStore reads labeled examples.
type ExampleStore interface {
	QueryExamples(ctx context.Context, filter ExampleFilter) ([]types.StoredExample, error)
}

// RetrieveOptions configures FindSimilarJobs. Zero Limit and MinSimilarity
// take the defaults; a negative MinSimilarity keeps every candidate.
type RetrieveOptions struct {
	Limit         int
	MinSimilarity float64
	Industry      string
	RoleLevel     string
}

// Retriever finds stored examples whose job descriptions resemble a query.
type Retriever struct {
	embedder embedding.Embedder
	store    ExampleStore
	logger   *zap.Logger
}

// NewRetriever creates a Retriever.
func NewRetriever(e embedding.Embedder, store ExampleStore) *Retriever {
	return &Retriever{embedder: e, store: store, logger: zap.NewNop()}
}

// WithLogger sets the logger used for skipped rows.
func (r *Retriever) WithLogger(l *zap.Logger) *Retriever {
	if l != nil {
		r.logger = l
	}
	return r
}

// FindSimilarJobs embeds jobDescription, ranks stored examples by cosine
// similarity and returns those at or above MinSimilarity, most similar first.
// Rows whose embedding is missing or of the wrong length are skipped.
func (r *Retriever) FindSimilarJobs(ctx context.Context, jobDescription string, opts RetrieveOptions) ([]types.SimilarJob, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	minSim := opts.MinSimilarity
	if minSim == 0 {
		minSim = DefaultMinSimilarity
	}

	query, err := r.embedder.Embed(ctx, jobDescription)
	if err != nil {
		return nil, &RetrievalError{Message: "failed to embed job description", Cause: err}
	}

	rows, err := r.store.QueryExamples(ctx, ExampleFilter{
		Industry:     opts.Industry,
		RoleLevel:    opts.RoleLevel,
		HasEmbedding: true,
	})
	if err != nil {
		return nil, &RetrievalError{Message: "failed to query examples", Cause: err}
	}

	similar := make([]types.SimilarJob, 0, len(rows))
	for _, row := range rows {
		if len(row.Embedding) != len(query) {
			r.logger.Debug("skipping example with unusable embedding",
				zap.String("id", row.ID.String()),
				zap.Int("dims", len(row.Embedding)),
				zap.Int("want_dims", len(query)))
			continue
		}
		sim, err := vector.CosineSimilarity(query, row.Embedding)
		if err != nil {
			r.logger.Debug("skipping example", zap.String("id", row.ID.String()), zap.Error(err))
			continue
		}
		if sim < minSim {
			continue
		}
		similar = append(similar, types.SimilarJob{
			ID:              row.ID,
			JobTitle:        row.JobTitle,
			Industry:        row.Industry,
			RoleLevel:       row.RoleLevel,
			OutcomeType:     row.OutcomeType,
			Similarity:      sim,
			ContentPatterns: row.ContentPatterns,
		})
	}

	sort.Slice(similar, func(i, j int) bool {
		if similar[i].Similarity != similar[j].Similarity {
			return similar[i].Similarity > similar[j].Similarity
		}
		return similar[i].ID.String() < similar[j].ID.String()
	})
	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

// SplitByOutcome separates the content patterns of positive and negative examples.
func SplitByOutcome(similar []types.SimilarJob) (positive, negative []types.ContentPatterns) {
	for _, s := range similar {
		switch s.OutcomeType {
		case types.OutcomePositive:
			positive = append(positive, s.ContentPatterns)
		case types.OutcomeNegative:
			negative = append(negative, s.ContentPatterns)
		}
	}
	return positive, negative
}
