// Package store defines the persistence adapter contract. Exactly one
// implementation is active per process, selected at startup; callers go
// through the service facade and never import an adapter directly.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ethiowork-backend/internal/model"
)

// Store is the uniform CRUD contract every backing-store adapter
// satisfies. All operations take a context and return adapter errors
// unchanged; sentinel errors are defined in errors.go.
type Store interface {
	// CreateAccountProfile attaches the role-specific profile to an
	// account. The gorm adapter requires the identity row to already
	// exist (ErrNotFound otherwise); the in-memory adapter creates a
	// fresh record. Implementations are allowed to diverge here since
	// identity creation is owned by the auth gateway.
	CreateAccountProfile(ctx context.Context, acc *model.Account) error
	GetAccountProfile(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// UpdateAccountProfile merges non-zero fields of the matching
	// profile variant and stamps the updated timestamp. Role is never
	// touched. Upserts the profile row if absent.
	UpdateAccountProfile(ctx context.Context, id uuid.UUID, patch *model.Account) error
	ListAccounts(ctx context.Context) ([]model.Account, error)
	ListAccountsByRole(ctx context.Context, role string) ([]model.Account, error)
	// SetBanned sets the banned flag and flips active to its
	// complement. Idempotent.
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
	// DeleteAccount hard-deletes the identity record. Owned postings
	// and applications are deliberately orphaned, not cascaded.
	DeleteAccount(ctx context.Context, id uuid.UUID) error

	// CreateJobPosting persists a new posting with status=active,
	// counter=0 and fresh timestamps, returning its id.
	CreateJobPosting(ctx context.Context, posting *model.JobPosting) (uint, error)
	GetJobPosting(ctx context.Context, id uint) (*model.JobPosting, error)
	ListActiveJobPostings(ctx context.Context) ([]model.JobPosting, error)
	ListJobPostingsByEmployer(ctx context.Context, employerID uuid.UUID) ([]model.JobPosting, error)
	UpdateJobPosting(ctx context.Context, id uint, patch *model.EditableJobPostingInfo) error
	// SetJobPostingStatus moves a posting between active, paused and
	// closed. No transition validation is performed at this layer.
	SetJobPostingStatus(ctx context.Context, id uint, status string) error
	DeleteJobPosting(ctx context.Context, id uint) error
	// CloseExpiredPostings flips active postings whose expiry has
	// passed to closed and reports how many were affected.
	CloseExpiredPostings(ctx context.Context, now time.Time) (int64, error)

	// CreateApplication persists a pending application, then
	// increments the posting's applications counter. The increment is
	// best-effort: a failure after a successful insert is logged by
	// the adapter and never fails the create.
	// ErrDuplicateApplication when the applicant already applied.
	CreateApplication(ctx context.Context, app *model.Application) (uint, error)
	GetApplication(ctx context.Context, id uint) (*model.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID uint) ([]model.Application, error)
	ListApplicationsByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Application, error)
	// SetApplicationStatus stamps the updated timestamp. No transition
	// validation is performed at this layer.
	SetApplicationStatus(ctx context.Context, id uint, status string) error

	AddNotification(ctx context.Context, accountID uuid.UUID, n *model.Notification) error
	ListNotifications(ctx context.Context, accountID uuid.UUID) ([]model.Notification, error)
	// MarkNotificationRead rewrites the matching entry of the owner's
	// list with read=true. Idempotent.
	MarkNotificationRead(ctx context.Context, accountID uuid.UUID, notificationID uint) error

	// AddRating appends a rating to the ratee and recomputes the
	// aggregate, returning the new average. ErrDuplicateRating when
	// the rater already rated this account; the aggregate is left
	// unchanged in that case.
	AddRating(ctx context.Context, ratedID uuid.UUID, rating *model.Rating) (float64, error)
	ListRatings(ctx context.Context, ratedID uuid.UUID) ([]model.Rating, error)

	SaveJob(ctx context.Context, accountID uuid.UUID, jobID uint) error
	UnsaveJob(ctx context.Context, accountID uuid.UUID, jobID uint) error
	ListSavedJobs(ctx context.Context, accountID uuid.UUID) ([]model.SavedJob, error)

	AggregateCounts(ctx context.Context) (*model.Counts, error)
}

// IdentityStore is the identity-provider side of an adapter, consumed
// only by the auth gateway. Kept separate from Store because the rest
// of the system treats identity as an upstream capability.
type IdentityStore interface {
	// CreateIdentity persists a fresh identity row.
	// ErrDuplicateEmail when the email is already registered.
	CreateIdentity(ctx context.Context, acc *model.Account) error
	FindAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateResetToken(ctx context.Context, token *model.PasswordResetToken) error
	// FindResetToken returns the token row matching the hash, whether
	// revoked or expired; the caller decides what to do with it.
	FindResetToken(ctx context.Context, tokenHash string) (*model.PasswordResetToken, error)
	RevokeResetToken(ctx context.Context, id uint) error
	RevokeResetTokensForAccount(ctx context.Context, accountID uuid.UUID) error
}
