package handler

import (
	"context"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/middleware"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
)

type MatchService interface {
	MatchLatestResume(ctx context.Context) (*dto.MatchResult, error)
}

type IndexService interface {
	IndexJobs(ctx context.Context, jobs []model.Assignment) (*dto.IndexResult, error)
}

type MatchHandler struct {
	matcher MatchService
	indexer IndexService
}

func NewMatchHandler(matcher MatchService, indexer IndexService) *MatchHandler {
	return &MatchHandler{matcher: matcher, indexer: indexer}
}

func (h *MatchHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/assignmentsMatch", middleware.RateLimiter(10, time.Minute), h.Match)
	router.Post("/jobs/index", h.IndexJobs)
}

func (h *MatchHandler) Match(c *fiber.Ctx) error {
	result, err := h.matcher.MatchLatestResume(c.UserContext())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: util.PublicMessage(err, "failed to match assignments"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success match assignments",
		Data:    result,
	})
}

func (h *MatchHandler) IndexJobs(c *fiber.Ctx) error {
	var req dto.IndexJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	result, err := h.indexer.IndexJobs(c.UserContext(), req.Jobs)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: util.PublicMessage(err, "failed to index jobs"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success index jobs",
		Data:    result,
	})
}
