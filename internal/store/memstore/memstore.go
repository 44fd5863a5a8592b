// Package memstore is the in-memory mock adapter. It satisfies the same
// contract as the gorm adapter and backs tests and demo runs that need
// no external database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/store"
	"ethiowork-backend/internal/utilities"
)

// MemStore keeps every collection in a mutex-guarded map.
type MemStore struct {
	mu sync.RWMutex

	accounts      map[uuid.UUID]*model.Account
	postings      map[uint]*model.JobPosting
	applications  map[uint]*model.Application
	notifications map[uuid.UUID][]model.Notification
	ratings       map[uuid.UUID][]model.Rating
	savedJobs     map[uuid.UUID][]model.SavedJob
	resetTokens   map[string]model.PasswordResetToken

	nextPostingID      uint
	nextApplicationID  uint
	nextNotificationID uint
	nextRatingID       uint
	nextSavedJobID     uint
	nextResetTokenID   uint
}

// New creates an empty MemStore.
func New() *MemStore {
	return &MemStore{
		accounts:      make(map[uuid.UUID]*model.Account),
		postings:      make(map[uint]*model.JobPosting),
		applications:  make(map[uint]*model.Application),
		notifications: make(map[uuid.UUID][]model.Notification),
		ratings:       make(map[uuid.UUID][]model.Rating),
		savedJobs:     make(map[uuid.UUID][]model.SavedJob),
		resetTokens:   make(map[string]model.PasswordResetToken),
	}
}

// CreateAccountProfile creates the record outright when no identity row
// exists yet. This divergence from the gorm adapter is part of the
// contract: upstream identity creation belongs to the auth gateway,
// which the mock does not assume.
func (s *MemStore) CreateAccountProfile(_ context.Context, acc *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	now := time.Now()
	if existing, ok := s.accounts[acc.ID]; ok {
		existing.SeekerProfile = acc.SeekerProfile
		existing.EmployerProfile = acc.EmployerProfile
		existing.UpdatedAt = now
		return nil
	}

	cp := *acc
	cp.Active = true
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.accounts[acc.ID] = &cp
	return nil
}

func (s *MemStore) GetAccountProfile(_ context.Context, id uuid.UUID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *acc
	return &cp, nil
}

func (s *MemStore) UpdateAccountProfile(_ context.Context, id uuid.UUID, patch *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		// Upsert, mirroring the merge-or-create update contract.
		cp := *patch
		cp.ID = id
		cp.Active = true
		cp.CreatedAt = time.Now()
		cp.UpdatedAt = cp.CreatedAt
		s.accounts[id] = &cp
		return nil
	}

	if patch.SeekerProfile != nil {
		if acc.SeekerProfile == nil {
			acc.SeekerProfile = &model.SeekerProfile{AccountID: id}
		}
		utilities.MergeNonEmpty(acc.SeekerProfile, patch.SeekerProfile)
	}
	if patch.EmployerProfile != nil {
		if acc.EmployerProfile == nil {
			acc.EmployerProfile = &model.EmployerProfile{AccountID: id}
		}
		utilities.MergeNonEmpty(acc.EmployerProfile, patch.EmployerProfile)
	}
	acc.UpdatedAt = time.Now()
	return nil
}

func (s *MemStore) ListAccounts(_ context.Context) ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]model.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		accounts = append(accounts, *acc)
	}
	return accounts, nil
}

func (s *MemStore) ListAccountsByRole(_ context.Context, role string) ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var accounts []model.Account
	for _, acc := range s.accounts {
		if acc.Role == role {
			accounts = append(accounts, *acc)
		}
	}
	return accounts, nil
}

func (s *MemStore) SetBanned(_ context.Context, id uuid.UUID, banned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return store.ErrNotFound
	}
	acc.Banned = banned
	acc.Active = !banned
	acc.UpdatedAt = time.Now()
	return nil
}

func (s *MemStore) DeleteAccount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return store.ErrNotFound
	}
	// Owned lists go with the aggregate; postings and applications
	// referencing the account stay behind.
	delete(s.accounts, id)
	delete(s.notifications, id)
	delete(s.ratings, id)
	delete(s.savedJobs, id)
	return nil
}

func (s *MemStore) CreateJobPosting(_ context.Context, posting *model.JobPosting) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPostingID++
	now := time.Now()
	posting.ID = s.nextPostingID
	posting.Status = model.PostingStatusActive
	posting.ApplicationsCount = 0
	posting.CreatedAt = now
	posting.UpdatedAt = now

	cp := *posting
	s.postings[posting.ID] = &cp
	return posting.ID, nil
}

func (s *MemStore) GetJobPosting(_ context.Context, id uint) (*model.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posting, ok := s.postings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *posting
	return &cp, nil
}

func (s *MemStore) ListActiveJobPostings(_ context.Context) ([]model.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var postings []model.JobPosting
	for _, posting := range s.postings {
		if posting.Status == model.PostingStatusActive {
			postings = append(postings, *posting)
		}
	}
	sortPostings(postings)
	return postings, nil
}

func (s *MemStore) ListJobPostingsByEmployer(_ context.Context, employerID uuid.UUID) ([]model.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var postings []model.JobPosting
	for _, posting := range s.postings {
		if posting.EmployerID == employerID {
			postings = append(postings, *posting)
		}
	}
	sortPostings(postings)
	return postings, nil
}

func sortPostings(postings []model.JobPosting) {
	sort.Slice(postings, func(i, j int) bool {
		return postings[i].CreatedAt.After(postings[j].CreatedAt)
	})
}

func (s *MemStore) UpdateJobPosting(_ context.Context, id uint, patch *model.EditableJobPostingInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posting, ok := s.postings[id]
	if !ok {
		return store.ErrNotFound
	}
	utilities.MergeNonEmpty(&posting.EditableJobPostingInfo, patch)
	posting.UpdatedAt = time.Now()
	return nil
}

func (s *MemStore) SetJobPostingStatus(_ context.Context, id uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posting, ok := s.postings[id]
	if !ok {
		return store.ErrNotFound
	}
	posting.Status = status
	posting.UpdatedAt = time.Now()
	return nil
}

func (s *MemStore) DeleteJobPosting(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.postings[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.postings, id)
	return nil
}

func (s *MemStore) CloseExpiredPostings(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var closed int64
	for _, posting := range s.postings {
		if posting.Status == model.PostingStatusActive &&
			posting.ExpiresAt != nil && posting.ExpiresAt.Before(now) {
			posting.Status = model.PostingStatusClosed
			posting.UpdatedAt = now
			closed++
		}
	}
	return closed, nil
}

func (s *MemStore) CreateApplication(_ context.Context, app *model.Application) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posting, ok := s.postings[app.JobID]
	if !ok {
		return 0, store.ErrNotFound
	}
	for _, existing := range s.applications {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return 0, store.ErrDuplicateApplication
		}
	}

	s.nextApplicationID++
	now := time.Now()
	app.ID = s.nextApplicationID
	app.Status = model.ApplicationStatusPending
	app.AppliedAt = now
	app.UpdatedAt = now

	cp := *app
	s.applications[app.ID] = &cp
	posting.ApplicationsCount++
	return app.ID, nil
}

func (s *MemStore) GetApplication(_ context.Context, id uint) (*model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.applications[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *app
	return &cp, nil
}

func (s *MemStore) ListApplicationsByJob(_ context.Context, jobID uint) ([]model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var apps []model.Application
	for _, app := range s.applications {
		if app.JobID == jobID {
			apps = append(apps, *app)
		}
	}
	sortApplications(apps)
	return apps, nil
}

func (s *MemStore) ListApplicationsByAccount(_ context.Context, accountID uuid.UUID) ([]model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var apps []model.Application
	for _, app := range s.applications {
		if app.ApplicantID == accountID {
			apps = append(apps, *app)
		}
	}
	sortApplications(apps)
	return apps, nil
}

func sortApplications(apps []model.Application) {
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].AppliedAt.After(apps[j].AppliedAt)
	})
}

func (s *MemStore) SetApplicationStatus(_ context.Context, id uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[id]
	if !ok {
		return store.ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = time.Now()
	return nil
}

func (s *MemStore) AddNotification(_ context.Context, accountID uuid.UUID, n *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return store.ErrNotFound
	}

	s.nextNotificationID++
	n.ID = s.nextNotificationID
	n.AccountID = accountID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.notifications[accountID] = append(s.notifications[accountID], *n)
	return nil
}

func (s *MemStore) ListNotifications(_ context.Context, accountID uuid.UUID) ([]model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]model.Notification, len(s.notifications[accountID]))
	copy(notifications, s.notifications[accountID])
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *MemStore) MarkNotificationRead(_ context.Context, accountID uuid.UUID, notificationID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.notifications[accountID]
	for i := range list {
		if list[i].ID == notificationID {
			list[i].Read = true
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *MemStore) AddRating(_ context.Context, ratedID uuid.UUID, rating *model.Rating) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ratee, ok := s.accounts[ratedID]
	if !ok {
		return 0, store.ErrNotFound
	}
	for _, existing := range s.ratings[ratedID] {
		if existing.RaterID == rating.RaterID {
			return 0, store.ErrDuplicateRating
		}
	}

	s.nextRatingID++
	rating.ID = s.nextRatingID
	rating.RatedID = ratedID
	rating.CreatedAt = time.Now()
	s.ratings[ratedID] = append(s.ratings[ratedID], *rating)

	var sum int
	for _, r := range s.ratings[ratedID] {
		sum += r.Score
	}
	average := float64(sum) / float64(len(s.ratings[ratedID]))
	ratee.RatingAverage = average
	ratee.RatingCount = len(s.ratings[ratedID])
	ratee.UpdatedAt = time.Now()
	return average, nil
}

func (s *MemStore) ListRatings(_ context.Context, ratedID uuid.UUID) ([]model.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ratings := make([]model.Rating, len(s.ratings[ratedID]))
	copy(ratings, s.ratings[ratedID])
	return ratings, nil
}

func (s *MemStore) SaveJob(_ context.Context, accountID uuid.UUID, jobID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.postings[jobID]; !ok {
		return store.ErrNotFound
	}
	for _, saved := range s.savedJobs[accountID] {
		if saved.JobID == jobID {
			return nil
		}
	}

	s.nextSavedJobID++
	s.savedJobs[accountID] = append(s.savedJobs[accountID], model.SavedJob{
		ID:        s.nextSavedJobID,
		AccountID: accountID,
		JobID:     jobID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *MemStore) UnsaveJob(_ context.Context, accountID uuid.UUID, jobID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.savedJobs[accountID]
	for i := range list {
		if list[i].JobID == jobID {
			s.savedJobs[accountID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemStore) ListSavedJobs(_ context.Context, accountID uuid.UUID) ([]model.SavedJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	saved := make([]model.SavedJob, len(s.savedJobs[accountID]))
	copy(saved, s.savedJobs[accountID])
	return saved, nil
}

func (s *MemStore) AggregateCounts(_ context.Context) (*model.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &model.Counts{
		Accounts:     int64(len(s.accounts)),
		JobPostings:  int64(len(s.postings)),
		Applications: int64(len(s.applications)),
	}, nil
}

var _ store.Store = (*MemStore)(nil)
