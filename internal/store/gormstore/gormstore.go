// Package gormstore is the primary persistence adapter, backed by
// PostgreSQL through GORM.
package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/store"
	"ethiowork-backend/internal/utilities"
)

// GormStore implements store.Store on a *gorm.DB handle.
type GormStore struct {
	db  *gorm.DB
	log *logrus.Logger
}

// New creates a GormStore around an already-connected gorm handle.
func New(db *gorm.DB, logger *logrus.Logger) *GormStore {
	return &GormStore{db: db, log: logger}
}

const pgUniqueViolation = "23505"

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

// CreateAccountProfile attaches the role-specific profile variant to an
// existing identity row. Fails with store.ErrNotFound when the identity
// has not been created by the auth gateway yet.
func (s *GormStore) CreateAccountProfile(ctx context.Context, acc *model.Account) error {
	var existing model.Account
	if err := s.db.WithContext(ctx).Where("id = ?", acc.ID).First(&existing).Error; err != nil {
		return translate(err)
	}

	switch acc.Role {
	case model.RoleJobSeeker:
		if acc.SeekerProfile == nil {
			acc.SeekerProfile = &model.SeekerProfile{}
		}
		acc.SeekerProfile.AccountID = acc.ID
		return s.db.WithContext(ctx).Create(acc.SeekerProfile).Error
	case model.RoleEmployer:
		if acc.EmployerProfile == nil {
			acc.EmployerProfile = &model.EmployerProfile{}
		}
		acc.EmployerProfile.AccountID = acc.ID
		return s.db.WithContext(ctx).Create(acc.EmployerProfile).Error
	}
	return nil
}

func (s *GormStore) GetAccountProfile(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var acc model.Account
	err := s.db.WithContext(ctx).
		Preload("SeekerProfile").
		Preload("EmployerProfile").
		Where("id = ?", id).
		First(&acc).Error
	if err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

// UpdateAccountProfile merges non-zero fields into the stored profile
// variant and stamps the updated timestamp. Role is immutable and never
// merged. The profile row is upserted if absent.
func (s *GormStore) UpdateAccountProfile(ctx context.Context, id uuid.UUID, patch *model.Account) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acc model.Account
		if err := tx.Preload("SeekerProfile").Preload("EmployerProfile").
			Where("id = ?", id).First(&acc).Error; err != nil {
			return translate(err)
		}

		if patch.SeekerProfile != nil {
			if acc.SeekerProfile == nil {
				acc.SeekerProfile = &model.SeekerProfile{AccountID: id}
			}
			utilities.MergeNonEmpty(acc.SeekerProfile, patch.SeekerProfile)
			acc.SeekerProfile.AccountID = id
			if err := tx.Save(acc.SeekerProfile).Error; err != nil {
				return err
			}
		}
		if patch.EmployerProfile != nil {
			if acc.EmployerProfile == nil {
				acc.EmployerProfile = &model.EmployerProfile{AccountID: id}
			}
			utilities.MergeNonEmpty(acc.EmployerProfile, patch.EmployerProfile)
			acc.EmployerProfile.AccountID = id
			if err := tx.Save(acc.EmployerProfile).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Account{}).Where("id = ?", id).
			UpdateColumn("updated_at", time.Now()).Error
	})
}

// ListAccounts returns the entire collection, unordered and
// unpaginated. Acceptable only because this is not a scaled system.
func (s *GormStore) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := s.db.WithContext(ctx).
		Preload("SeekerProfile").
		Preload("EmployerProfile").
		Find(&accounts).Error
	return accounts, err
}

func (s *GormStore) ListAccountsByRole(ctx context.Context, role string) ([]model.Account, error) {
	var accounts []model.Account
	err := s.db.WithContext(ctx).Where("role = ?", role).Find(&accounts).Error
	return accounts, err
}

func (s *GormStore) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	result := s.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"banned":     banned,
			"active":     !banned,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteAccount hard-deletes the identity row together with the lists
// it owns (profiles, notifications, saved jobs, ratings). Postings and
// applications reference the account by plain id and are left behind.
func (s *GormStore) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acc model.Account
		if err := tx.Where("id = ?", id).First(&acc).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("account_id = ?", id).Delete(&model.SeekerProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&model.EmployerProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&model.SavedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rated_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&acc).Error
	})
}

func (s *GormStore) CreateJobPosting(ctx context.Context, posting *model.JobPosting) (uint, error) {
	now := time.Now()
	posting.Status = model.PostingStatusActive
	posting.ApplicationsCount = 0
	posting.CreatedAt = now
	posting.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(posting).Error; err != nil {
		return 0, err
	}
	return posting.ID, nil
}

func (s *GormStore) GetJobPosting(ctx context.Context, id uint) (*model.JobPosting, error) {
	var posting model.JobPosting
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&posting).Error; err != nil {
		return nil, translate(err)
	}
	return &posting, nil
}

func (s *GormStore) ListActiveJobPostings(ctx context.Context) ([]model.JobPosting, error) {
	var postings []model.JobPosting
	err := s.db.WithContext(ctx).
		Where("status = ?", model.PostingStatusActive).
		Order("created_at DESC").
		Find(&postings).Error
	return postings, err
}

func (s *GormStore) ListJobPostingsByEmployer(ctx context.Context, employerID uuid.UUID) ([]model.JobPosting, error) {
	var postings []model.JobPosting
	err := s.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&postings).Error
	return postings, err
}

func (s *GormStore) UpdateJobPosting(ctx context.Context, id uint, patch *model.EditableJobPostingInfo) error {
	var posting model.JobPosting
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&posting).Error; err != nil {
		return translate(err)
	}

	utilities.MergeNonEmpty(&posting.EditableJobPostingInfo, patch)
	posting.UpdatedAt = time.Now()

	return s.db.WithContext(ctx).Save(&posting).Error
}

func (s *GormStore) SetJobPostingStatus(ctx context.Context, id uint, status string) error {
	result := s.db.WithContext(ctx).Model(&model.JobPosting{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteJobPosting(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.JobPosting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *GormStore) CloseExpiredPostings(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.JobPosting{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", model.PostingStatusActive, now).
		Updates(map[string]interface{}{
			"status":     model.PostingStatusClosed,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// CreateApplication inserts a pending application and then bumps the
// posting's counter with a single atomic UPDATE. A counter failure
// after a successful insert is logged, not propagated.
func (s *GormStore) CreateApplication(ctx context.Context, app *model.Application) (uint, error) {
	if _, err := s.GetJobPosting(ctx, app.JobID); err != nil {
		return 0, err
	}

	now := time.Now()
	app.Status = model.ApplicationStatusPending
	app.AppliedAt = now
	app.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, store.ErrDuplicateApplication
		}
		return 0, err
	}

	if err := s.db.WithContext(ctx).Model(&model.JobPosting{}).
		Where("id = ?", app.JobID).
		UpdateColumn("applications_count", gorm.Expr("applications_count + ?", 1)).Error; err != nil {
		s.log.WithFields(logrus.Fields{
			"job_id":         app.JobID,
			"application_id": app.ID,
			"error":          err.Error(),
		}).Warn("failed to increment applications counter")
	}

	return app.ID, nil
}

func (s *GormStore) GetApplication(ctx context.Context, id uint) (*model.Application, error) {
	var app model.Application
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (s *GormStore) ListApplicationsByJob(ctx context.Context, jobID uint) ([]model.Application, error) {
	var apps []model.Application
	err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (s *GormStore) ListApplicationsByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Application, error) {
	var apps []model.Application
	err := s.db.WithContext(ctx).
		Where("applicant_id = ?", accountID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (s *GormStore) SetApplicationStatus(ctx context.Context, id uint, status string) error {
	result := s.db.WithContext(ctx).Model(&model.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *GormStore) AddNotification(ctx context.Context, accountID uuid.UUID, n *model.Notification) error {
	n.AccountID = accountID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *GormStore) ListNotifications(ctx context.Context, accountID uuid.UUID) ([]model.Notification, error) {
	var notifications []model.Notification
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkNotificationRead loads the owner's full list, rewrites the
// matching entry and writes the list back, mirroring the embedded-list
// shape of the original document model. Idempotent.
func (s *GormStore) MarkNotificationRead(ctx context.Context, accountID uuid.UUID, notificationID uint) error {
	notifications, err := s.ListNotifications(ctx, accountID)
	if err != nil {
		return err
	}

	found := false
	for i := range notifications {
		if notifications[i].ID == notificationID {
			notifications[i].Read = true
			found = true
		}
	}
	if !found {
		return store.ErrNotFound
	}
	if len(notifications) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Save(&notifications).Error
}

// AddRating appends a rating inside a transaction and recomputes the
// ratee's aggregate. The aggregate stays untouched when the rater
// already rated this account.
func (s *GormStore) AddRating(ctx context.Context, ratedID uuid.UUID, rating *model.Rating) (float64, error) {
	var average float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ratee model.Account
		if err := tx.Where("id = ?", ratedID).First(&ratee).Error; err != nil {
			return translate(err)
		}

		var existing model.Rating
		err := tx.Where("rated_id = ? AND rater_id = ?", ratedID, rating.RaterID).
			First(&existing).Error
		if err == nil {
			return store.ErrDuplicateRating
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		rating.RatedID = ratedID
		rating.CreatedAt = time.Now()
		if err := tx.Create(rating).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return store.ErrDuplicateRating
			}
			return err
		}

		type aggregate struct {
			Count int64
			Sum   float64
		}
		var agg aggregate
		if err := tx.Model(&model.Rating{}).
			Select("COUNT(*) AS count, COALESCE(SUM(score), 0) AS sum").
			Where("rated_id = ?", ratedID).
			Scan(&agg).Error; err != nil {
			return err
		}
		if agg.Count > 0 {
			average = agg.Sum / float64(agg.Count)
		}

		return tx.Model(&model.Account{}).Where("id = ?", ratedID).
			Updates(map[string]interface{}{
				"rating_average": average,
				"rating_count":   agg.Count,
				"updated_at":     time.Now(),
			}).Error
	})
	if err != nil {
		return 0, err
	}
	return average, nil
}

func (s *GormStore) ListRatings(ctx context.Context, ratedID uuid.UUID) ([]model.Rating, error) {
	var ratings []model.Rating
	err := s.db.WithContext(ctx).
		Where("rated_id = ?", ratedID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (s *GormStore) SaveJob(ctx context.Context, accountID uuid.UUID, jobID uint) error {
	if _, err := s.GetJobPosting(ctx, jobID); err != nil {
		return err
	}
	saved := model.SavedJob{AccountID: accountID, JobID: jobID, CreatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND job_id = ?", accountID, jobID).
		FirstOrCreate(&saved).Error
	return err
}

func (s *GormStore) UnsaveJob(ctx context.Context, accountID uuid.UUID, jobID uint) error {
	return s.db.WithContext(ctx).
		Where("account_id = ? AND job_id = ?", accountID, jobID).
		Delete(&model.SavedJob{}).Error
}

func (s *GormStore) ListSavedJobs(ctx context.Context, accountID uuid.UUID) ([]model.SavedJob, error) {
	var saved []model.SavedJob
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&saved).Error
	return saved, err
}

// AggregateCounts runs three independent full-collection counts.
func (s *GormStore) AggregateCounts(ctx context.Context) (*model.Counts, error) {
	var counts model.Counts
	if err := s.db.WithContext(ctx).Model(&model.Account{}).Count(&counts.Accounts).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.JobPosting{}).Count(&counts.JobPostings).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.Application{}).Count(&counts.Applications).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}

var _ store.Store = (*GormStore)(nil)
