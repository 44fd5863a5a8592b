// Package service is the data-service facade. Every caller outside the
// adapters goes through it, so the active store implementation can be
// swapped without touching calling code. Methods delegate one-to-one to
// the adapter and never catch its errors; the only added behavior is
// side-effect dispatch on the two mutations that have one.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/notify"
	"ethiowork-backend/internal/store"
)

// Service delegates to the configured persistence adapter.
type Service struct {
	store      store.Store
	dispatcher *notify.Dispatcher
	log        *logrus.Logger
}

// New wires a Service around the active adapter.
func New(s store.Store, dispatcher *notify.Dispatcher, logger *logrus.Logger) *Service {
	return &Service{store: s, dispatcher: dispatcher, log: logger}
}

func (s *Service) CreateAccountProfile(ctx context.Context, acc *model.Account) error {
	return s.store.CreateAccountProfile(ctx, acc)
}

func (s *Service) GetAccountProfile(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return s.store.GetAccountProfile(ctx, id)
}

func (s *Service) UpdateAccountProfile(ctx context.Context, id uuid.UUID, patch *model.Account) error {
	return s.store.UpdateAccountProfile(ctx, id, patch)
}

func (s *Service) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return s.store.ListAccounts(ctx)
}

func (s *Service) ListAccountsByRole(ctx context.Context, role string) ([]model.Account, error) {
	return s.store.ListAccountsByRole(ctx, role)
}

func (s *Service) BanAccount(ctx context.Context, id uuid.UUID) error {
	return s.store.SetBanned(ctx, id, true)
}

func (s *Service) UnbanAccount(ctx context.Context, id uuid.UUID) error {
	return s.store.SetBanned(ctx, id, false)
}

func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteAccount(ctx, id)
}

// CreateJobPosting persists the posting, then fans the job alert out to
// every job seeker. The fan-out is fire-and-forget: the posting is
// created even when every notification write fails.
func (s *Service) CreateJobPosting(ctx context.Context, posting *model.JobPosting) (uint, error) {
	id, err := s.store.CreateJobPosting(ctx, posting)
	if err != nil {
		return 0, err
	}

	s.dispatcher.JobPosted(ctx, posting)
	return id, nil
}

func (s *Service) GetJobPosting(ctx context.Context, id uint) (*model.JobPosting, error) {
	return s.store.GetJobPosting(ctx, id)
}

func (s *Service) ListActiveJobPostings(ctx context.Context) ([]model.JobPosting, error) {
	return s.store.ListActiveJobPostings(ctx)
}

func (s *Service) ListJobPostingsByEmployer(ctx context.Context, employerID uuid.UUID) ([]model.JobPosting, error) {
	return s.store.ListJobPostingsByEmployer(ctx, employerID)
}

func (s *Service) UpdateJobPosting(ctx context.Context, id uint, patch *model.EditableJobPostingInfo) error {
	return s.store.UpdateJobPosting(ctx, id, patch)
}

func (s *Service) SetJobPostingStatus(ctx context.Context, id uint, status string) error {
	return s.store.SetJobPostingStatus(ctx, id, status)
}

func (s *Service) DeleteJobPosting(ctx context.Context, id uint) error {
	return s.store.DeleteJobPosting(ctx, id)
}

func (s *Service) CloseExpiredPostings(ctx context.Context, now time.Time) (int64, error) {
	return s.store.CloseExpiredPostings(ctx, now)
}

func (s *Service) ApplyToJob(ctx context.Context, app *model.Application) (uint, error) {
	return s.store.CreateApplication(ctx, app)
}

func (s *Service) GetApplication(ctx context.Context, id uint) (*model.Application, error) {
	return s.store.GetApplication(ctx, id)
}

func (s *Service) ListApplicationsByJob(ctx context.Context, jobID uint) ([]model.Application, error) {
	return s.store.ListApplicationsByJob(ctx, jobID)
}

func (s *Service) ListApplicationsByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Application, error) {
	return s.store.ListApplicationsByAccount(ctx, accountID)
}

// SetApplicationStatus validates the status value, writes it, then
// notifies the applicant. Transitions are deliberately unrestricted
// (a rejected application can go back to pending); only membership in
// the known status set is checked. A failed notification never rolls
// the status change back.
func (s *Service) SetApplicationStatus(ctx context.Context, id uint, status string) error {
	valid := false
	for _, allowed := range model.ApplicationStatuses {
		if status == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown application status: %s", status)
	}

	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.SetApplicationStatus(ctx, id, status); err != nil {
		return err
	}

	jobTitle := ""
	if posting, err := s.store.GetJobPosting(ctx, app.JobID); err == nil {
		jobTitle = posting.Title
	} else {
		s.log.WithFields(logrus.Fields{
			"job_id": app.JobID,
			"error":  err.Error(),
		}).Warn("posting lookup for status notification failed")
	}
	s.dispatcher.ApplicationStatusChanged(ctx, app.ApplicantID, app.JobID, jobTitle, status)

	return nil
}

func (s *Service) ListNotifications(ctx context.Context, accountID uuid.UUID) ([]model.Notification, error) {
	return s.store.ListNotifications(ctx, accountID)
}

func (s *Service) MarkNotificationRead(ctx context.Context, accountID uuid.UUID, notificationID uint) error {
	return s.dispatcher.MarkRead(ctx, accountID, notificationID)
}

func (s *Service) AddRating(ctx context.Context, ratedID uuid.UUID, rating *model.Rating) (float64, error) {
	return s.store.AddRating(ctx, ratedID, rating)
}

func (s *Service) ListRatings(ctx context.Context, ratedID uuid.UUID) ([]model.Rating, error) {
	return s.store.ListRatings(ctx, ratedID)
}

func (s *Service) SaveJob(ctx context.Context, accountID uuid.UUID, jobID uint) error {
	return s.store.SaveJob(ctx, accountID, jobID)
}

func (s *Service) UnsaveJob(ctx context.Context, accountID uuid.UUID, jobID uint) error {
	return s.store.UnsaveJob(ctx, accountID, jobID)
}

func (s *Service) ListSavedJobs(ctx context.Context, accountID uuid.UUID) ([]model.SavedJob, error) {
	return s.store.ListSavedJobs(ctx, accountID)
}

func (s *Service) AggregateCounts(ctx context.Context) (*model.Counts, error) {
	return s.store.AggregateCounts(ctx)
}
