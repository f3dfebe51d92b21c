package repository

import (
	"context"

	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type JobChunkRepository struct {
	db *gorm.DB
}

func NewJobChunkRepository(db *gorm.DB) *JobChunkRepository {
	return &JobChunkRepository{db}
}

// ChunkDistance is a chunk row with the cosine distance to the query vector.
type ChunkDistance struct {
	ID       string
	JobID    string
	Field    string
	Content  string
	Distance float64
}

// SearchChunks returns the topK chunks closest to embedding by cosine distance.
func (r *JobChunkRepository) SearchChunks(ctx context.Context, embedding []float32, topK int) ([]ChunkDistance, error) {
	var rows []ChunkDistance
	vec := pgvector.NewVector(embedding)
	err := r.db.WithContext(ctx).Raw(`
        SELECT id, job_id, field, content, embedding <=> ? AS distance
        FROM job_chunks
        ORDER BY distance ASC
        LIMIT ?
    `, vec, topK).Scan(&rows).Error
	return rows, wrap("repository.SearchChunks", err)
}

// ReplaceJobChunks swaps every chunk of jobID for chunks in one transaction and
// returns the ids that were removed.
func (r *JobChunkRepository) ReplaceJobChunks(ctx context.Context, jobID string, chunks []model.JobChunk) ([]string, error) {
	var removed []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.JobChunk{}).Where("job_id = ?", jobID).Pluck("id", &removed).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", jobID).Delete(&model.JobChunk{}).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		return tx.Create(&chunks).Error
	})
	if err != nil {
		return nil, wrap("repository.ReplaceJobChunks", err)
	}
	return removed, nil
}
