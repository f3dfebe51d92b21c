package config

import "time"

type GeminiConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	MaxRetries     int
	RequestTimeout time.Duration
}
