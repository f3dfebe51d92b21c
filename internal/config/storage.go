package config

import "time"

type StorageConfig struct {
	// BaseURL is an afs location such as file:///var/data/gtfydemo or gs://bucket/gtfydemo.
	BaseURL        string
	ResumeFolder   string
	EnhancedFolder string
	SigningKey     string
	LinkTTL        time.Duration
	MaxUploadBytes int64
}
