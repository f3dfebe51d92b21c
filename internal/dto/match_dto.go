package dto

import (
	"github.com/fadilmartias/resume-matcher/internal/match"
	"github.com/fadilmartias/resume-matcher/internal/model"
)

type MatchResult struct {
	Query       string           `json:"query"`
	ResumeBlob  string           `json:"resume_blob"`
	MatchedJobs []match.JobMatch `json:"matched_jobs"`
	SkippedHits int              `json:"skipped_hits"`
}

type IndexJobsRequest struct {
	Jobs []model.Assignment `json:"jobs" yaml:"jobs"`
}

type IndexedJob struct {
	JobID         string `json:"job_id"`
	Chunks        int    `json:"chunks"`
	RemovedChunks int    `json:"removed_chunks"`
}

type IndexResult struct {
	Jobs        []IndexedJob `json:"jobs"`
	TotalChunks int          `json:"total_chunks"`
}
