// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// RoleJobSeeker marks an account that browses and applies to postings
	RoleJobSeeker = "job_seeker"
	// RoleEmployer marks an account that posts jobs and manages applicants
	RoleEmployer = "employer"
	// RoleAdmin marks an account that moderates users and listings
	RoleAdmin = "admin"
)

// Account is the identity record. Role is immutable after creation and
// exactly one profile variant is populated, matching the role.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;<-:create" json:"role"`

	Active bool `gorm:"default:true" json:"active"`
	Banned bool `gorm:"default:false" json:"banned"`

	RatingAverage float64 `json:"rating_average"`
	RatingCount   int     `json:"rating_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SeekerProfile   *SeekerProfile   `gorm:"foreignKey:AccountID" json:"seeker_profile,omitempty"`
	EmployerProfile *EmployerProfile `gorm:"foreignKey:AccountID" json:"employer_profile,omitempty"`

	Notifications []Notification `gorm:"foreignKey:AccountID" json:"notifications,omitempty"`
	SavedJobs     []SavedJob     `gorm:"foreignKey:AccountID" json:"saved_jobs,omitempty"`
	Ratings       []Rating       `gorm:"foreignKey:RatedID" json:"ratings,omitempty"`
}

// SeekerProfile is the role-specific profile variant for job seekers
type SeekerProfile struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"-"`

	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Headline        string         `json:"headline"`
	Bio             string         `gorm:"type:text" json:"bio"`
	Location        string         `json:"location"`
	Skills          pq.StringArray `gorm:"type:text[]" json:"skills"`
	ResumeURL       string         `json:"resume_url"`
	ProfileImageURL string         `json:"profile_image_url"`
}

// EmployerProfile is the role-specific profile variant for employers
type EmployerProfile struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"-"`

	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
	About       string `gorm:"type:text" json:"about"`
	LogoURL     string `json:"logo_url"`
}
