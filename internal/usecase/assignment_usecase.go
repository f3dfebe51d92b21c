package usecase

import (
	"context"
	"strings"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/fadilmartias/resume-matcher/internal/model"
)

type AssignmentFinder interface {
	FindByID(ctx context.Context, id string) (*model.Assignment, error)
}

type AssignmentUsecase struct {
	repo AssignmentFinder
}

func NewAssignmentUsecase(repo AssignmentFinder) *AssignmentUsecase {
	return &AssignmentUsecase{repo: repo}
}

func (uc *AssignmentUsecase) GetAssignment(ctx context.Context, jobID string) (*model.Assignment, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, apperr.Errorf(apperr.InvalidInput, "usecase.GetAssignment", "missing job_id parameter")
	}
	a, err := uc.repo.FindByID(ctx, jobID)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.Errorf(apperr.NotFound, "usecase.GetAssignment", "no assignment found with id %s", jobID)
		}
		return nil, err
	}
	return a, nil
}
