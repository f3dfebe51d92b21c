// Package search holds the search backends that feed the match aggregator.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/fadilmartias/resume-matcher/internal/logger"
	"github.com/fadilmartias/resume-matcher/internal/match"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/repository"
	"go.uber.org/zap"
)

// Searcher returns raw chunk hits for a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]match.SearchHit, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type ChunkStore interface {
	SearchChunks(ctx context.Context, embedding []float32, topK int) ([]repository.ChunkDistance, error)
}

type AssignmentStore interface {
	FindByIDs(ctx context.Context, ids []string) ([]model.Assignment, error)
}

// VectorSearcher embeds the query and ranks job chunks stored in postgres by
// cosine distance. Highlights are the required skills of the job that also
// occur in the query.
type VectorSearcher struct {
	embedder    Embedder
	chunks      ChunkStore
	assignments AssignmentStore
	topK        int
	logger      *zap.Logger
}

func NewVectorSearcher(embedder Embedder, chunks ChunkStore, assignments AssignmentStore, topK int, log *zap.Logger) *VectorSearcher {
	if topK <= 0 {
		topK = 20
	}
	return &VectorSearcher{embedder: embedder, chunks: chunks, assignments: assignments, topK: topK, logger: logger.OrNop(log)}
}

func (s *VectorSearcher) Search(ctx context.Context, query string) ([]match.SearchHit, error) {
	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.chunks.SearchChunks(ctx, embedding, s.topK)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	seen := make(map[string]bool)
	for _, row := range rows {
		if row.JobID != "" && !seen[row.JobID] {
			seen[row.JobID] = true
			ids = append(ids, row.JobID)
		}
	}
	sort.Strings(ids)

	assignments, err := s.assignments.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Assignment, len(assignments))
	for _, a := range assignments {
		byID[a.ID] = a
	}

	queryKeywords := Keywords(query)
	hits := make([]match.SearchHit, 0, len(rows))
	for _, row := range rows {
		a, ok := byID[row.JobID]
		if !ok {
			s.logger.Warn("chunk without assignment", zap.String("chunk_id", row.ID), zap.String("job_id", row.JobID))
		}
		hit := match.SearchHit{
			ChunkID:             row.ID,
			JobID:               row.JobID,
			Score:               DistanceToScore(row.Distance),
			Title:               a.Title,
			Company:             a.Company,
			Location:            a.Location,
			Type:                a.Type,
			ReqSkills:           a.ReqSkills,
			KeyResponsibilities: a.KeyResponsibilities,
		}
		if skills := MatchedSkills(a.ReqSkills, queryKeywords); len(skills) > 0 {
			hit.Highlights = map[string][]string{"req_skills": skills}
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// DistanceToScore turns a cosine distance (0 identical, 2 opposite) into a
// similarity in [0, 1].
func DistanceToScore(distance float64) float64 {
	score := 1.0 - distance
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}
