package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a scored review of a job seeker by another account. One
// rating per rater per ratee; the ratee's aggregate average and count
// are recomputed on every insert.
type Rating struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	RatedID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_rated_rater" json:"rated_id"`
	RaterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rated_rater" json:"rater_id"`

	RaterName string `gorm:"type:text" json:"rater_name"`
	Score     int    `gorm:"not null" json:"score" binding:"required,min=1,max=5"`
	Comment   string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}
