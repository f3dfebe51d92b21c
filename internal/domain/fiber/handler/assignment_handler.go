package handler

import (
	"context"

	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AssignmentService interface {
	GetAssignment(ctx context.Context, jobID string) (*model.Assignment, error)
}

type AssignmentHandler struct {
	uc AssignmentService
}

func NewAssignmentHandler(uc AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

func (h *AssignmentHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/getAssignmentDetails", h.GetAssignmentDetails)
}

func (h *AssignmentHandler) GetAssignmentDetails(c *fiber.Ctx) error {
	assignment, err := h.uc.GetAssignment(c.UserContext(), c.Query("job_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: util.PublicMessage(err, "failed to get assignment"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get assignment",
		Data:    assignment,
	})
}
