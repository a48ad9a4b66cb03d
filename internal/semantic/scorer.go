package semantic

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/sections"
	"github.com/jonathan/resume-matcher/internal/vector"
)

// MinSectionChars is the minimum trimmed length of a section worth embedding.
const MinSectionChars = 20

// JobDescriptionSection labels the job description in EmbeddingError.
const JobDescriptionSection = "job_description"

var sectionWeights = map[string]float64{
	sections.Experience:     3,
	sections.Skills:         2.5,
	sections.Summary:        2,
	sections.Projects:       1.5,
	sections.Education:      1,
	sections.Certifications: 1,
	sections.Header:         0.5,
	sections.Full:           1,
}

// SectionWeight returns the weight of a section in the overall score.
// Unknown sections weigh 1.
func SectionWeight(name string) float64 {
	if w, ok := sectionWeights[name]; ok {
		return w
	}
	return 1
}

// SectionEmbedding is the embedding of one resume section.
type SectionEmbedding struct {
	Section   string    `json:"section"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"-"`
}

// SectionScore is the similarity of one section to the job description.
type SectionScore struct {
	Section    string  `json:"section"`
	Score      int     `json:"score"`
	Similarity float64 `json:"similarity"`
}

// Score is the semantic fit of a resume.
type Score struct {
	OverallScore  int            `json:"overall_score"`
	SectionScores []SectionScore `json:"section_scores"`
}

// Result carries the score together with the vectors it was computed from.
type Result struct {
	Score            Score              `json:"score"`
	ResumeEmbeddings []SectionEmbedding `json:"resume_embeddings"`
	JDEmbedding      []float32          `json:"-"`
}

// Scorer computes semantic scores with an Embedder.
type Scorer struct {
	embedder embedding.Embedder
}

// NewScorer creates a Scorer.
func NewScorer(e embedding.Embedder) *Scorer {
	return &Scorer{embedder: e}
}

// MeaningfulSections splits a resume and keeps sections with at least
// MinSectionChars characters of trimmed content.
func MeaningfulSections(resumeText string) []sections.Section {
	all := sections.SplitIntoSections(resumeText)
	out := make([]sections.Section, 0, len(all))
	for _, s := range all {
		if len([]rune(strings.TrimSpace(s.Content))) >= MinSectionChars {
			out = append(out, s)
		}
	}
	return out
}

// RunSemanticAnalysis embeds every meaningful section and the job description
// concurrently and scores each section by cosine similarity. Any embedding
// failure fails the whole analysis.
func (s *Scorer) RunSemanticAnalysis(ctx context.Context, resumeText, jobDescription string) (*Result, error) {
	secs := MeaningfulSections(resumeText)
	if len(secs) == 0 {
		return nil, ErrNoMeaningfulSections
	}

	embeddings := make([]SectionEmbedding, len(secs))
	var jdEmbedding []float32

	g, gCtx := errgroup.WithContext(ctx)
	for i, sec := range secs {
		g.Go(func() error {
			vec, err := s.embedder.Embed(gCtx, sec.Content)
			if err != nil {
				return &EmbeddingError{Section: sec.Name, Cause: err}
			}
			embeddings[i] = SectionEmbedding{Section: sec.Name, Content: sec.Content, Embedding: vec}
			return nil
		})
	}
	g.Go(func() error {
		vec, err := s.embedder.Embed(gCtx, jobDescription)
		if err != nil {
			return &EmbeddingError{Section: JobDescriptionSection, Cause: err}
		}
		jdEmbedding = vec
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	score, err := scoreSections(embeddings, jdEmbedding)
	if err != nil {
		return nil, err
	}

	return &Result{Score: score, ResumeEmbeddings: embeddings, JDEmbedding: jdEmbedding}, nil
}

func scoreSections(embeddings []SectionEmbedding, jd []float32) (Score, error) {
	scores := make([]SectionScore, 0, len(embeddings))
	var weighted, totalWeight float64

	for _, se := range embeddings {
		sim, err := vector.CosineSimilarity(se.Embedding, jd)
		if err != nil {
			return Score{}, fmt.Errorf("section %q: %w", se.Section, err)
		}
		sc := vector.SimilarityToScore(sim)
		scores = append(scores, SectionScore{Section: se.Section, Score: sc, Similarity: sim})

		w := SectionWeight(se.Section)
		weighted += float64(sc) * w
		totalWeight += w
	}

	overall := 0
	if totalWeight > 0 {
		overall = int(math.Round(weighted / totalWeight))
	}
	return Score{OverallScore: overall, SectionScores: scores}, nil
}
