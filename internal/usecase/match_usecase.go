package usecase

import (
	"context"
	"strings"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/logger"
	"github.com/fadilmartias/resume-matcher/internal/match"
	"github.com/fadilmartias/resume-matcher/internal/search"
	"github.com/fadilmartias/resume-matcher/internal/service"
	"github.com/fadilmartias/resume-matcher/internal/storage"
	"go.uber.org/zap"
)

type ResumeSource interface {
	LatestResumeText(ctx context.Context) (*storage.BlobInfo, string, error)
}

type MatchUsecase struct {
	resumes    ResumeSource
	completer  service.Completer
	searcher   search.Searcher
	aggregator *match.Aggregator
	logger     *zap.Logger
}

func NewMatchUsecase(resumes ResumeSource, completer service.Completer, searcher search.Searcher, aggregator *match.Aggregator, log *zap.Logger) *MatchUsecase {
	if aggregator == nil {
		aggregator = match.NewAggregator(match.SkipAndCollect)
	}
	return &MatchUsecase{
		resumes:    resumes,
		completer:  completer,
		searcher:   searcher,
		aggregator: aggregator,
		logger:     logger.OrNop(log),
	}
}

// MatchLatestResume ranks jobs against the newest uploaded resume.
func (uc *MatchUsecase) MatchLatestResume(ctx context.Context) (*dto.MatchResult, error) {
	const op = "usecase.MatchLatestResume"

	blob, text, err := uc.resumes.LatestResumeText(ctx)
	if err != nil {
		return nil, err
	}

	query, err := uc.ExtractQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	hits, err := uc.searcher.Search(ctx, query)
	if err != nil {
		return nil, apperr.New(apperr.Upstream, op, err)
	}
	uc.logger.Info("search returned results", zap.String("query", query), zap.Int("hits", len(hits)))

	result, err := uc.aggregator.Aggregate(hits)
	if err != nil {
		return nil, apperr.New(apperr.Upstream, op, err)
	}
	if result.Skipped > 0 {
		uc.logger.Warn("malformed search hits skipped",
			zap.Int("skipped", result.Skipped),
			zap.Errors("errors", result.Errors),
		)
	}

	return &dto.MatchResult{
		Query:       query,
		ResumeBlob:  blob.Name,
		MatchedJobs: result.Matches,
		SkippedHits: result.Skipped,
	}, nil
}

// ExtractQuery asks the model for a one-line job search query describing the resume.
func (uc *MatchUsecase) ExtractQuery(ctx context.Context, resumeText string) (string, error) {
	const op = "usecase.ExtractQuery"

	raw, err := uc.completer.Complete(ctx, querySystemPrompt, renderPrompt(queryPromptTemplate, map[string]string{"RESUME": resumeText}))
	if err != nil {
		return "", apperr.New(apperr.Upstream, op, err)
	}

	query := strings.TrimSpace(raw)
	if i := strings.IndexByte(query, '\n'); i >= 0 {
		query = query[:i]
	}
	query = strings.TrimSpace(strings.Trim(strings.TrimSpace(query), `"'`+"`"))
	if query == "" {
		return "", apperr.Errorf(apperr.Upstream, op, "model returned an empty search query")
	}
	return query, nil
}
