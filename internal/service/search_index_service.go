package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/logger"
	"github.com/fadilmartias/resume-matcher/internal/match"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// SearchIndexService queries and feeds an Azure AI Search index over its REST API.
// Documents are job chunks keyed "<jobId>_chunk<n>".
type SearchIndexService struct {
	client *resty.Client
	cfg    config.SearchConfig
	logger *zap.Logger
}

func NewSearchIndexService(cfg config.SearchConfig, log *zap.Logger) *SearchIndexService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(30*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() == 503
		}).
		SetHeader("api-key", cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("api-version", cfg.APIVersion)

	return &SearchIndexService{client: client, cfg: cfg, logger: logger.OrNop(log)}
}

type searchRequest struct {
	Search    string `json:"search"`
	Top       int    `json:"top,omitempty"`
	Highlight string `json:"highlight,omitempty"`
	Select    string `json:"select,omitempty"`
	Count     bool   `json:"count"`
}

type searchDocument struct {
	Score               float64             `json:"@search.score"`
	Highlights          map[string][]string `json:"@search.highlights"`
	ID                  string              `json:"id"`
	JobID               string              `json:"job_id"`
	Title               string              `json:"title"`
	Company             string              `json:"company"`
	Location            string              `json:"location"`
	Type                string              `json:"type"`
	ReqSkills           string              `json:"req_skills"`
	KeyResponsibilities string              `json:"key_responsibilities"`
}

type searchResponse struct {
	Value []searchDocument `json:"value"`
}

// Search runs a full-text query and returns the raw chunk hits in index order.
func (s *SearchIndexService) Search(ctx context.Context, query string) ([]match.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	var out searchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("index", s.cfg.Index).
		SetBody(searchRequest{
			Search:    query,
			Top:       s.cfg.Top,
			Highlight: s.cfg.HighlightFields,
			Select:    s.cfg.Select,
		}).
		SetResult(&out).
		Post("/indexes/{index}/docs/search")
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search failed with status %d: %s", resp.StatusCode(), errorMessage(resp))
	}

	hits := make([]match.SearchHit, 0, len(out.Value))
	for _, doc := range out.Value {
		hits = append(hits, match.SearchHit{
			ChunkID:             doc.ID,
			JobID:               doc.JobID,
			Score:               doc.Score,
			Title:               doc.Title,
			Company:             doc.Company,
			Location:            doc.Location,
			Type:                doc.Type,
			ReqSkills:           doc.ReqSkills,
			KeyResponsibilities: doc.KeyResponsibilities,
			Highlights:          doc.Highlights,
		})
	}
	s.logger.Info("search returned results", zap.String("index", s.cfg.Index), zap.Int("hits", len(hits)))
	return hits, nil
}

// IndexDocument is one job chunk pushed to the index.
type IndexDocument struct {
	ID                  string `json:"id"`
	JobID               string `json:"job_id"`
	Title               string `json:"title"`
	Company             string `json:"company"`
	Location            string `json:"location"`
	Type                string `json:"type"`
	JobDesc             string `json:"job_desc"`
	ReqSkills           string `json:"req_skills"`
	KeyResponsibilities string `json:"key_responsibilities"`
}

// Upsert merges or uploads docs, and deletes the ids listed in remove.
func (s *SearchIndexService) Upsert(ctx context.Context, docs []IndexDocument, remove []string) error {
	actions := make([]map[string]any, 0, len(docs)+len(remove))
	for _, id := range remove {
		actions = append(actions, map[string]any{"@search.action": "delete", "id": id})
	}
	for _, doc := range docs {
		actions = append(actions, map[string]any{
			"@search.action":       "mergeOrUpload",
			"id":                   doc.ID,
			"job_id":               doc.JobID,
			"title":                doc.Title,
			"company":              doc.Company,
			"location":             doc.Location,
			"type":                 doc.Type,
			"job_desc":             doc.JobDesc,
			"req_skills":           doc.ReqSkills,
			"key_responsibilities": doc.KeyResponsibilities,
		})
	}
	if len(actions) == 0 {
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("index", s.cfg.Index).
		SetBody(map[string]any{"value": actions}).
		Post("/indexes/{index}/docs/index")
	if err != nil {
		return fmt.Errorf("index request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("index failed with status %d: %s", resp.StatusCode(), errorMessage(resp))
	}

	failed := gjson.Get(resp.String(), `value.#(status==false)#.key`).Array()
	if len(failed) > 0 {
		keys := make([]string, 0, len(failed))
		for _, k := range failed {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("index rejected documents: %s", strings.Join(keys, ", "))
	}
	return nil
}

func errorMessage(resp *resty.Response) string {
	if msg := gjson.Get(resp.String(), "error.message").String(); msg != "" {
		return msg
	}
	return logger.TruncateForLog(resp.String(), 200)
}
