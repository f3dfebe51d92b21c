package model

import "time"

// Assignment is one job posting. Its ID is the job id used in chunk ids.
type Assignment struct {
	ID                  string    `gorm:"type:varchar(64);primaryKey" json:"id" yaml:"id"`
	Title               string    `gorm:"type:varchar(255)" json:"title" yaml:"title"`
	Company             string    `gorm:"type:varchar(255)" json:"company" yaml:"company"`
	Location            string    `gorm:"type:varchar(255)" json:"location" yaml:"location"`
	Type                string    `gorm:"type:varchar(50)" json:"type" yaml:"type"`
	JobDesc             string    `gorm:"type:text" json:"job_desc" yaml:"job_desc"`
	ReqSkills           string    `gorm:"type:text" json:"req_skills" yaml:"req_skills"`
	KeyResponsibilities string    `gorm:"type:text" json:"key_responsibilities" yaml:"key_responsibilities"`
	LogoURL             string    `gorm:"type:text" json:"logo_url,omitempty" yaml:"logo_url"`
	CreatedAt           time.Time `json:"created_at" yaml:"-"`
	UpdatedAt           time.Time `json:"updated_at" yaml:"-"`
}

func (a *Assignment) TableName() string {
	return "assignment_list"
}
