package repository

import (
	"errors"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"gorm.io/gorm"
)

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, op, err)
	}
	return apperr.New(apperr.Internal, op, err)
}
