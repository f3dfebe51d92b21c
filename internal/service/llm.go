package service

import "context"

// Completer turns a system prompt and a user message into a model reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Embedder maps text to a dense vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
