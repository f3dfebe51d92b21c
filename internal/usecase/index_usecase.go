package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/logger"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/search"
	"github.com/fadilmartias/resume-matcher/internal/service"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

type AssignmentWriter interface {
	Upsert(ctx context.Context, a *model.Assignment) error
}

type ChunkWriter interface {
	ReplaceJobChunks(ctx context.Context, jobID string, chunks []model.JobChunk) ([]string, error)
}

type IndexWriter interface {
	Upsert(ctx context.Context, docs []service.IndexDocument, remove []string) error
}

// IndexUsecase loads job postings: the row goes to postgres and its chunks go
// to the vector table when an embedder is configured and to the search index
// when one is configured.
type IndexUsecase struct {
	assignments AssignmentWriter
	chunks      ChunkWriter
	embedder    service.Embedder
	index       IndexWriter
	chunkChars  int
	logger      *zap.Logger
}

func NewIndexUsecase(assignments AssignmentWriter, chunks ChunkWriter, embedder service.Embedder, index IndexWriter, chunkChars int, log *zap.Logger) *IndexUsecase {
	return &IndexUsecase{
		assignments: assignments,
		chunks:      chunks,
		embedder:    embedder,
		index:       index,
		chunkChars:  chunkChars,
		logger:      logger.OrNop(log),
	}
}

func (uc *IndexUsecase) IndexJobs(ctx context.Context, jobs []model.Assignment) (*dto.IndexResult, error) {
	const op = "usecase.IndexJobs"

	if len(jobs) == 0 {
		return nil, apperr.Errorf(apperr.InvalidInput, op, "no jobs given")
	}
	seen := make(map[string]bool, len(jobs))
	for i, job := range jobs {
		if err := search.ValidJobID(job.ID); err != nil {
			return nil, apperr.New(apperr.InvalidInput, op, fmt.Errorf("job %d: %w", i, err))
		}
		if seen[job.ID] {
			return nil, apperr.Errorf(apperr.InvalidInput, op, "duplicate job id %q", job.ID)
		}
		seen[job.ID] = true
	}

	result := &dto.IndexResult{Jobs: make([]dto.IndexedJob, 0, len(jobs))}
	for i := range jobs {
		indexed, err := uc.indexJob(ctx, &jobs[i])
		if err != nil {
			return result, err
		}
		result.Jobs = append(result.Jobs, *indexed)
		result.TotalChunks += indexed.Chunks
	}
	return result, nil
}

func (uc *IndexUsecase) indexJob(ctx context.Context, job *model.Assignment) (*dto.IndexedJob, error) {
	const op = "usecase.indexJob"

	if err := uc.assignments.Upsert(ctx, job); err != nil {
		return nil, err
	}

	chunks := search.ChunkAssignment(*job, uc.chunkChars)
	indexed := &dto.IndexedJob{JobID: job.ID, Chunks: len(chunks)}

	var removed []string
	if uc.embedder != nil {
		rows := make([]model.JobChunk, 0, len(chunks))
		for _, c := range chunks {
			embedding, err := uc.embedder.GenerateEmbedding(ctx, c.Content)
			if err != nil {
				return nil, apperr.New(apperr.Upstream, op, fmt.Errorf("embed %s: %w", c.ID, err))
			}
			rows = append(rows, model.JobChunk{
				ID:         c.ID,
				JobID:      c.JobID,
				ChunkIndex: c.Index,
				Field:      c.Field,
				Content:    c.Content,
				Embedding:  pgvector.NewVector(embedding),
			})
		}
		var err error
		removed, err = uc.chunks.ReplaceJobChunks(ctx, job.ID, rows)
		if err != nil {
			return nil, err
		}
	}

	if uc.index != nil {
		docs := make([]service.IndexDocument, 0, len(chunks))
		keep := make(map[string]bool, len(chunks))
		for _, c := range chunks {
			keep[c.ID] = true
			doc := service.IndexDocument{
				ID:                  c.ID,
				JobID:               job.ID,
				Title:               job.Title,
				Company:             job.Company,
				Location:            job.Location,
				Type:                job.Type,
				ReqSkills:           job.ReqSkills,
				KeyResponsibilities: job.KeyResponsibilities,
			}
			if c.Field == "job_desc" {
				doc.JobDesc = strings.TrimPrefix(c.Content, job.Title+"\n")
			}
			docs = append(docs, doc)
		}
		var stale []string
		for _, id := range removed {
			if !keep[id] {
				stale = append(stale, id)
			}
		}
		if err := uc.index.Upsert(ctx, docs, stale); err != nil {
			return nil, apperr.New(apperr.Upstream, op, err)
		}
	}

	indexed.RemovedChunks = len(removed)
	uc.logger.Info("job indexed", zap.String("job_id", job.ID), zap.Int("chunks", len(chunks)), zap.Int("removed", len(removed)))
	return indexed, nil
}
