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

// DocumentIntelligenceService reads scanned PDFs through an Azure Document
// Intelligence model. Analysis is asynchronous: the submit call returns an
// Operation-Location that is polled until the result is ready.
type DocumentIntelligenceService struct {
	client *resty.Client
	cfg    config.OCRConfig
	logger *zap.Logger
}

func NewDocumentIntelligenceService(cfg config.OCRConfig, log *zap.Logger) *DocumentIntelligenceService {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	client := resty.New().
		SetTimeout(30*time.Second).
		SetHeader("Ocp-Apim-Subscription-Key", cfg.APIKey)
	return &DocumentIntelligenceService{client: client, cfg: cfg, logger: logger.OrNop(log)}
}

func (s *DocumentIntelligenceService) ReadPDF(ctx context.Context, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	analyzeURL := fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze",
		strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Model)

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("api-version", s.cfg.APIVersion).
		SetHeader("Content-Type", "application/pdf").
		SetBody(data).
		Post(analyzeURL)
	if err != nil {
		return "", fmt.Errorf("submit document: %w", err)
	}
	if resp.StatusCode() != 202 {
		return "", fmt.Errorf("submit document failed with status %d: %s", resp.StatusCode(), errorMessage(resp))
	}

	operation := resp.Header().Get("Operation-Location")
	if operation == "" {
		return "", fmt.Errorf("submit document: no Operation-Location header")
	}
	s.logger.Debug("document submitted", zap.String("operation", operation))

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	for {
		poll, err := s.client.R().SetContext(ctx).Get(operation)
		if err != nil {
			return "", fmt.Errorf("poll analysis: %w", err)
		}
		if poll.IsError() {
			return "", fmt.Errorf("poll analysis failed with status %d: %s", poll.StatusCode(), errorMessage(poll))
		}

		body := poll.String()
		switch status := gjson.Get(body, "status").String(); status {
		case "succeeded":
			return strings.TrimSpace(gjson.Get(body, "analyzeResult.content").String()), nil
		case "failed", "canceled":
			return "", fmt.Errorf("analysis %s: %s", status, gjson.Get(body, "error.message").String())
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("analysis not finished: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
