package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// PostingStatusActive means the posting is visible and accepting applications
	PostingStatusActive = "active"
	// PostingStatusPaused means the employer temporarily hid the posting
	PostingStatusPaused = "paused"
	// PostingStatusClosed means the posting no longer accepts applications
	PostingStatusClosed = "closed"
)

// EditableJobPostingInfo holds the fields an employer may set when
// creating or patching a posting. Ownership and lifecycle fields live
// on JobPosting itself.
type EditableJobPostingInfo struct {
	Title            string         `gorm:"type:text" json:"title"`
	CompanyName      string         `gorm:"type:text" json:"company_name"`
	Location         string         `gorm:"type:text" json:"location"`
	EmploymentType   string         `gorm:"type:text" json:"employment_type"`
	WorkMode         string         `gorm:"type:text" json:"work_mode"`
	Description      string         `gorm:"type:text" json:"description"`
	Requirements     string         `gorm:"type:text" json:"requirements"`
	Responsibilities string         `gorm:"type:text" json:"responsibilities"`
	Skills           pq.StringArray `gorm:"type:text[]" json:"skills"`
	SalaryMin        *int           `json:"salary_min,omitempty"`
	SalaryMax        *int           `json:"salary_max,omitempty"`
	SalaryCurrency   string         `json:"salary_currency,omitempty"`
	ExpiresAt        *time.Time     `gorm:"type:timestamp" json:"expires_at,omitempty"`
}

// JobPosting is an employer-authored listing. ApplicationsCount equals
// the number of applications created against it: incremented on each
// create, never decremented.
type JobPosting struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`
	// Owning account by id only; postings survive their employer's
	// deletion (documented no-cascade behavior).
	EmployerID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"employer_id"`

	EditableJobPostingInfo `gorm:"embedded"`

	Status            string `gorm:"type:text;default:active" json:"status"`
	ApplicationsCount int    `gorm:"default:0" json:"applications_count"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}
