package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const maxEmbeddingChars = 10000

var ErrCircuitOpen = errors.New("circuit breaker open")

type GeminiService struct {
	client         *genai.Client
	chatModel      string
	embeddingModel string
	logger         *zap.Logger

	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration

	mu                sync.Mutex
	consecutiveErrors int
	circuitBreakerMax int
}

func NewGeminiService(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (*GeminiService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	svc := newGeminiService(cfg, log)
	svc.client = client
	return svc, nil
}

func newGeminiService(cfg config.GeminiConfig, log *zap.Logger) *GeminiService {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &GeminiService{
		chatModel:         cfg.ChatModel,
		embeddingModel:    cfg.EmbeddingModel,
		logger:            logger.OrNop(log),
		MaxRetries:        cfg.MaxRetries,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    timeout,
		circuitBreakerMax: 5,
	}
}

// Complete sends the system instruction and user message to the chat model
// and returns the text of the first candidate.
func (s *GeminiService) Complete(ctx context.Context, system, user string) (string, error) {
	if strings.TrimSpace(user) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}
	if strings.TrimSpace(system) != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	var text string
	err := s.withRetry(ctx, "GenerateContent", func(ctx context.Context) error {
		result, err := s.client.Models.GenerateContent(ctx, s.chatModel, genai.Text(user), genConfig)
		if err != nil {
			return err
		}
		if err := validateGenerateResponse(result); err != nil {
			return &permanentError{fmt.Errorf("invalid response: %w", err)}
		}
		text = strings.TrimSpace(result.Text())
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	if runes := []rune(trimmedText); len(runes) > maxEmbeddingChars {
		s.logger.Warn("embedding input truncated", zap.Int("chars", len(runes)))
		trimmedText = string(runes[:maxEmbeddingChars])
	}

	content := []*genai.Content{genai.NewContentFromText(trimmedText, genai.RoleUser)}

	var embedding []float32
	err := s.withRetry(ctx, "GenerateEmbedding", func(ctx context.Context) error {
		result, err := s.client.Models.EmbedContent(ctx, s.embeddingModel, content, nil)
		if err != nil {
			return err
		}
		values, err := validateEmbeddingResponse(result)
		if err != nil {
			return &permanentError{fmt.Errorf("invalid embedding response: %w", err)}
		}
		embedding = values
		return nil
	})
	if err != nil {
		return nil, err
	}
	return embedding, nil
}

// permanentError stops withRetry without counting as a transport failure.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// withRetry runs call with exponential backoff while the error is retryable,
// under one request timeout, and feeds the circuit breaker.
func (s *GeminiService) withRetry(ctx context.Context, name string, call func(context.Context) error) error {
	if failures, open := s.GetCircuitBreakerStatus(); open {
		return fmt.Errorf("%w: too many consecutive errors (%d)", ErrCircuitOpen, failures)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Info("retrying gemini call",
				zap.String("call", name),
				zap.Int("attempt", attempt),
				zap.Int("max_retries", s.MaxRetries),
				zap.Duration("delay", delay),
			)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		err := call(timeoutCtx)
		if err == nil {
			s.recordSuccess()
			return nil
		}

		var permanent *permanentError
		if errors.As(err, &permanent) {
			return permanent.err
		}

		lastErr = err
		if !isRetryableError(err) {
			s.logger.Warn("non-retryable gemini error", zap.String("call", name), zap.Error(err))
			s.recordFailure()
			return fmt.Errorf("%s failed: %w", name, err)
		}
		s.logger.Warn("retryable gemini error", zap.String("call", name), zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.recordFailure()
	return fmt.Errorf("max retries (%d) exceeded for %s: %w", s.MaxRetries, name, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.Code
	} else if errors.As(err, &apiErrPtr) {
		code = apiErrPtr.Code
	}
	if code != 0 {
		switch code {
		case 429:
			return true
		case 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embeddings := resp.Embeddings[0].Values
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}
	for i, val := range embeddings {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}
	return embeddings, nil
}

func (s *GeminiService) recordSuccess() {
	s.mu.Lock()
	s.consecutiveErrors = 0
	s.mu.Unlock()
}

func (s *GeminiService) recordFailure() {
	s.mu.Lock()
	s.consecutiveErrors++
	s.mu.Unlock()
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.recordSuccess()
	s.logger.Info("circuit breaker reset")
}

func (s *GeminiService) GetCircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveErrors, s.consecutiveErrors >= s.circuitBreakerMax
}
