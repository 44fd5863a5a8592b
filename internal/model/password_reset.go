package model

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use reset credential. Only the SHA-256
// hash of the token is stored; the plain value goes out by mail.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"type:timestamp;not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}
