package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// NotificationTypeJobAlert is fanned out to every job seeker when a posting is created
	NotificationTypeJobAlert = "job_alert"
	// NotificationTypeApplicationUpdate targets an applicant when their application status changes
	NotificationTypeApplicationUpdate = "application_update"
	// NotificationTypeProfileView is recorded when someone views a seeker profile
	NotificationTypeProfileView = "profile_view"
	// NotificationTypeRating is recorded when a seeker receives a new rating
	NotificationTypeRating = "rating"
)

// Notification is an owned, append-only message queued to an Account.
// It is mutated only by marking it read and never deleted.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`

	Type    string `gorm:"type:text;not null" json:"type"`
	Title   string `gorm:"type:text" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	JobID   *uint  `json:"job_id,omitempty"`

	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}
