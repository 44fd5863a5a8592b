package model

import (
	"time"

	"github.com/google/uuid"
)

// SavedJob is a saved-job reference owned by an account. Saving the
// same posting twice is a no-op.
type SavedJob struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_account_job" json:"account_id"`
	JobID     uint      `gorm:"not null;uniqueIndex:idx_account_job" json:"job_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}
