package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ChatService calls an OpenAI-compatible chat completions endpoint, or an
// Azure OpenAI deployment when the provider is azure.
type ChatService struct {
	client      *resty.Client
	cfg         config.LLMConfig
	logger      *zap.Logger
	maxLogChars int
}

func NewChatService(cfg config.LLMConfig, log *zap.Logger) *ChatService {
	client := resty.New().
		SetTimeout(2*time.Minute).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		}).
		SetHeader("Content-Type", "application/json")

	if cfg.Provider == config.ProviderAzure {
		client.SetHeader("api-key", cfg.APIKey)
	} else {
		client.SetAuthToken(cfg.APIKey)
	}

	maxLog := cfg.MaxLogLength
	if maxLog <= 0 {
		maxLog = 200
	}
	return &ChatService{client: client, cfg: cfg, logger: logger.OrNop(log), maxLogChars: maxLog}
}

func (s *ChatService) endpoint() string {
	if s.cfg.Provider == config.ProviderAzure {
		return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			strings.TrimRight(s.cfg.AzureEndpoint, "/"), s.cfg.AzureDeployment, s.cfg.AzureAPIVersion)
	}
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
}

func (s *ChatService) Complete(ctx context.Context, system, user string) (string, error) {
	if strings.TrimSpace(user) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	messages := make([]map[string]string, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, map[string]string{"role": "system", "content": system})
	}
	messages = append(messages, map[string]string{"role": "user", "content": user})

	body := map[string]any{
		"messages":    messages,
		"temperature": s.cfg.Temperature,
	}
	if s.cfg.Provider != config.ProviderAzure {
		body["model"] = s.cfg.Model
	}

	s.logger.Debug("chat completion request",
		zap.String("provider", s.cfg.Provider),
		zap.String("prompt", logger.TruncateForLog(user, s.maxLogChars)),
	)

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(s.endpoint())
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		if msg == "" {
			msg = logger.TruncateForLog(resp.String(), s.maxLogChars)
		}
		return "", fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode(), msg)
	}

	content := gjson.Get(resp.String(), "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("chat completion response has no choices")
	}
	text := strings.TrimSpace(content.String())

	s.logger.Debug("chat completion response", zap.String("content", logger.TruncateForLog(text, s.maxLogChars)))
	return text, nil
}
