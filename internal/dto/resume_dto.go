package dto

import "github.com/fadilmartias/resume-matcher/internal/resume"

// LastModifiedLayout renders timestamps as YYYY-MM-DD HH:MM:SS.
const LastModifiedLayout = "2006-01-02 15:04:05"

type ResumeFile struct {
	Name         string `json:"name"`
	Blob         string `json:"blob"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
	DownloadURL  string `json:"download_url"`
}

type UploadResult struct {
	Name     string `json:"name"`
	Blob     string `json:"blob"`
	Size     int    `json:"size"`
	Replaced int    `json:"replaced"`
}

type ParsedResume struct {
	Blob   string                   `json:"blob"`
	Cached bool                     `json:"cached"`
	Resume *resume.StructuredResume `json:"resume"`
}
