package dto

import (
	"time"

	"github.com/google/uuid"
)

type EnhanceRequest struct {
	JobDesc   string `json:"job_desc"`
	ReqSkills string `json:"req_skills"`
}

type EnhanceResult struct {
	ID          uuid.UUID `json:"id"`
	Message     string    `json:"message"`
	Blob        string    `json:"blob"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type EnhancementDTO struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	SourceBlob  string    `json:"source_blob"`
	OutputBlob  string    `json:"output_blob"`
	JobDesc     string    `json:"job_desc"`
	ReqSkills   string    `json:"req_skills"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
