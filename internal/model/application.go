package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusPending indicates that the application is awaiting review
	ApplicationStatusPending = "pending"
	// ApplicationStatusShortlisted indicates that the employer shortlisted the applicant
	ApplicationStatusShortlisted = "shortlisted"
	// ApplicationStatusAccepted indicates that the application has been accepted
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "rejected"
)

// ApplicationStatuses is the set of values SetApplicationStatus accepts.
// Transitions between them are deliberately unrestricted: an employer
// may move a rejected application back to pending.
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusShortlisted,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

// Application represents a job seeker's submission against a posting.
// It is a top-level entity referencing posting and applicant by id
// because it is queried from both directions.
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Plain id columns, no foreign-key constraints: deleting an
	// account or posting orphans its applications by contract.
	JobID       uint      `gorm:"not null;index;uniqueIndex:idx_job_applicant" json:"job_id"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_applicant" json:"applicant_id"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	Status      string `gorm:"type:text" json:"status"`

	AppliedAt time.Time `gorm:"type:timestamp" json:"applied_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}
