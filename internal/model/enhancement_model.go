package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnhancementStatusCompleted = "completed"
	EnhancementStatusFailed    = "failed"
)

type Enhancement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SourceBlob string    `gorm:"type:text" json:"source_blob"`
	OutputBlob string    `gorm:"type:text" json:"output_blob"`
	JobDesc    string    `gorm:"type:text" json:"job_desc"`
	ReqSkills  string    `gorm:"type:text" json:"req_skills"`
	Status     string    `gorm:"type:varchar(50)" json:"status"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e *Enhancement) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
