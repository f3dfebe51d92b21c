package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// JobChunk is an embedded slice of an assignment, ID "<jobId>_chunk<n>".
type JobChunk struct {
	ID         string          `gorm:"type:varchar(128);primaryKey" json:"id"`
	JobID      string          `gorm:"type:varchar(64);index" json:"job_id"`
	ChunkIndex int             `json:"chunk_index"`
	Field      string          `gorm:"type:varchar(50)" json:"field"`
	Content    string          `gorm:"type:text" json:"content"`
	Embedding  pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (j *JobChunk) TableName() string {
	return "job_chunks"
}
