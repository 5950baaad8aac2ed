package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resume is a protected resource. UserID holds the owner's external
// identity; it is stamped from the request principal at creation time and
// never reassigned by any caller-facing operation. The data store applies
// no row-level security, so every query against resumes must filter on
// user_id before execution.
type Resume struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Summary     string    `json:"summary"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	JobTitle    string    `json:"job_title"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Template    string    `gorm:"default:'classic'" json:"template"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	WorkExperiences []WorkExperience `json:"work_experiences,omitempty"`
	Educations      []Education      `json:"educations,omitempty"`
}

func (Resume) TableName() string {
	return "resumes"
}

func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// WorkExperience belongs to a resume; ownership is derived through the
// parent, it carries no owner column of its own.
type WorkExperience struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResumeID    uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	Position    string    `json:"position"`
	Company     string    `json:"company"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (WorkExperience) TableName() string {
	return "work_experiences"
}

func (w *WorkExperience) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type Education struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResumeID  uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	Degree    string    `json:"degree"`
	School    string    `json:"school"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Education) TableName() string {
	return "educations"
}

func (e *Education) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
