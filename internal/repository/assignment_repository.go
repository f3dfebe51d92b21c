package repository

import (
	"context"

	"github.com/fadilmartias/resume-matcher/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db}
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, wrap("repository.FindAssignment", err)
	}
	return &a, nil
}

func (r *AssignmentRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Assignment, error) {
	var out []model.Assignment
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, wrap("repository.FindAssignments", err)
}

// Upsert inserts the assignment or overwrites every column of an existing row.
func (r *AssignmentRepository) Upsert(ctx context.Context, a *model.Assignment) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(a).Error
	return wrap("repository.UpsertAssignment", err)
}
