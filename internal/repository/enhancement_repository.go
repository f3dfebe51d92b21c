package repository

import (
	"context"

	"github.com/fadilmartias/resume-matcher/internal/model"
	"gorm.io/gorm"
)

type EnhancementRepository struct {
	db *gorm.DB
}

func NewEnhancementRepository(db *gorm.DB) *EnhancementRepository {
	return &EnhancementRepository{db}
}

func (r *EnhancementRepository) Create(ctx context.Context, e *model.Enhancement) error {
	return wrap("repository.CreateEnhancement", r.db.WithContext(ctx).Create(e).Error)
}

func (r *EnhancementRepository) FindByID(ctx context.Context, id string) (*model.Enhancement, error) {
	var e model.Enhancement
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, wrap("repository.FindEnhancement", err)
	}
	return &e, nil
}
