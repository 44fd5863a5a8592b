package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/store"
)

func seedSeeker(t *testing.T, s *MemStore) model.Account {
	t.Helper()
	acc := model.Account{
		Email: uuid.NewString() + "@ethiowork.test",
		Role:  model.RoleJobSeeker,
		SeekerProfile: &model.SeekerProfile{
			FirstName: "Abel",
			LastName:  "Tesfaye",
		},
	}
	assert.NoError(t, s.CreateAccountProfile(context.Background(), &acc))
	return acc
}

func seedEmployer(t *testing.T, s *MemStore) model.Account {
	t.Helper()
	acc := model.Account{
		Email: uuid.NewString() + "@ethiowork.test",
		Role:  model.RoleEmployer,
		EmployerProfile: &model.EmployerProfile{
			CompanyName: "Sheba Tech",
		},
	}
	assert.NoError(t, s.CreateAccountProfile(context.Background(), &acc))
	return acc
}

func seedPosting(t *testing.T, s *MemStore, employerID uuid.UUID) model.JobPosting {
	t.Helper()
	posting := model.JobPosting{
		EmployerID: employerID,
		EditableJobPostingInfo: model.EditableJobPostingInfo{
			Title:       "Senior Go Developer",
			CompanyName: "Sheba Tech",
			Location:    "Addis Ababa",
		},
	}
	_, err := s.CreateJobPosting(context.Background(), &posting)
	assert.NoError(t, err)
	return posting
}

func TestSetBannedFlipsActive(t *testing.T) {
	s := New()
	acc := seedSeeker(t, s)

	assert.NoError(t, s.SetBanned(context.Background(), acc.ID, true))
	got, err := s.GetAccountProfile(context.Background(), acc.ID)
	assert.NoError(t, err)
	assert.True(t, got.Banned)
	assert.False(t, got.Active)

	// Banning again is a no-op, not an error.
	assert.NoError(t, s.SetBanned(context.Background(), acc.ID, true))

	assert.NoError(t, s.SetBanned(context.Background(), acc.ID, false))
	got, err = s.GetAccountProfile(context.Background(), acc.ID)
	assert.NoError(t, err)
	assert.False(t, got.Banned)
	assert.True(t, got.Active)
}

func TestUpdateAccountProfileMergesNonEmpty(t *testing.T) {
	s := New()
	acc := seedSeeker(t, s)

	patch := model.Account{SeekerProfile: &model.SeekerProfile{Headline: "Backend developer"}}
	assert.NoError(t, s.UpdateAccountProfile(context.Background(), acc.ID, &patch))

	got, err := s.GetAccountProfile(context.Background(), acc.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Backend developer", got.SeekerProfile.Headline)
	assert.Equal(t, "Abel", got.SeekerProfile.FirstName, "empty patch fields must not clear existing values")
}

func TestCreateApplicationIncrementsCounter(t *testing.T) {
	s := New()
	employer := seedEmployer(t, s)
	seeker := seedSeeker(t, s)
	posting := seedPosting(t, s, employer.ID)

	app := model.Application{JobID: posting.ID, ApplicantID: seeker.ID}
	_, err := s.CreateApplication(context.Background(), &app)
	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)

	got, err := s.GetJobPosting(context.Background(), posting.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, got.ApplicationsCount)
}

func TestCreateApplicationRejectsDuplicate(t *testing.T) {
	s := New()
	employer := seedEmployer(t, s)
	seeker := seedSeeker(t, s)
	posting := seedPosting(t, s, employer.ID)

	first := model.Application{JobID: posting.ID, ApplicantID: seeker.ID}
	_, err := s.CreateApplication(context.Background(), &first)
	assert.NoError(t, err)

	second := model.Application{JobID: posting.ID, ApplicantID: seeker.ID}
	_, err = s.CreateApplication(context.Background(), &second)
	assert.ErrorIs(t, err, store.ErrDuplicateApplication)

	got, err := s.GetJobPosting(context.Background(), posting.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, got.ApplicationsCount, "rejected duplicate must not bump the counter")
}

func TestCreateApplicationMissingPosting(t *testing.T) {
	s := New()
	seeker := seedSeeker(t, s)

	app := model.Application{JobID: 42, ApplicantID: seeker.ID}
	_, err := s.CreateApplication(context.Background(), &app)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCloseExpiredPostings(t *testing.T) {
	s := New()
	employer := seedEmployer(t, s)

	expired := seedPosting(t, s, employer.ID)
	past := time.Now().Add(-time.Hour)
	assert.NoError(t, s.UpdateJobPosting(context.Background(), expired.ID, &model.EditableJobPostingInfo{ExpiresAt: &past}))

	fresh := seedPosting(t, s, employer.ID)

	closed, err := s.CloseExpiredPostings(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	got, err := s.GetJobPosting(context.Background(), expired.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.PostingStatusClosed, got.Status)

	got, err = s.GetJobPosting(context.Background(), fresh.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.PostingStatusActive, got.Status)

	// A second sweep finds nothing left to close.
	closed, err = s.CloseExpiredPostings(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), closed)
}

func TestAddRatingAggregate(t *testing.T) {
	s := New()
	rated := seedSeeker(t, s)
	rater1 := seedEmployer(t, s)
	rater2 := seedEmployer(t, s)

	avg, err := s.AddRating(context.Background(), rated.ID, &model.Rating{RaterID: rater1.ID, Score: 5})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, avg)

	avg, err = s.AddRating(context.Background(), rated.ID, &model.Rating{RaterID: rater2.ID, Score: 2})
	assert.NoError(t, err)
	assert.Equal(t, 3.5, avg)

	_, err = s.AddRating(context.Background(), rated.ID, &model.Rating{RaterID: rater1.ID, Score: 1})
	assert.ErrorIs(t, err, store.ErrDuplicateRating)

	got, err := s.GetAccountProfile(context.Background(), rated.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3.5, got.RatingAverage, "rejected duplicate must leave the aggregate untouched")
	assert.Equal(t, 2, got.RatingCount)
}

func TestMarkNotificationReadIdempotent(t *testing.T) {
	s := New()
	acc := seedSeeker(t, s)

	n := model.Notification{Type: model.NotificationTypeJobAlert, Title: "New job posted"}
	assert.NoError(t, s.AddNotification(context.Background(), acc.ID, &n))

	assert.NoError(t, s.MarkNotificationRead(context.Background(), acc.ID, n.ID))
	assert.NoError(t, s.MarkNotificationRead(context.Background(), acc.ID, n.ID))

	list, err := s.ListNotifications(context.Background(), acc.ID)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.True(t, list[0].Read)

	assert.ErrorIs(t, s.MarkNotificationRead(context.Background(), acc.ID, 999), store.ErrNotFound)
}

func TestSaveJobIdempotent(t *testing.T) {
	s := New()
	employer := seedEmployer(t, s)
	seeker := seedSeeker(t, s)
	posting := seedPosting(t, s, employer.ID)

	assert.NoError(t, s.SaveJob(context.Background(), seeker.ID, posting.ID))
	assert.NoError(t, s.SaveJob(context.Background(), seeker.ID, posting.ID))

	saved, err := s.ListSavedJobs(context.Background(), seeker.ID)
	assert.NoError(t, err)
	assert.Len(t, saved, 1)

	assert.NoError(t, s.UnsaveJob(context.Background(), seeker.ID, posting.ID))
	// Removing an absent bookmark stays silent.
	assert.NoError(t, s.UnsaveJob(context.Background(), seeker.ID, posting.ID))

	saved, err = s.ListSavedJobs(context.Background(), seeker.ID)
	assert.NoError(t, err)
	assert.Len(t, saved, 0)
}

func TestDeleteAccountOrphansPostings(t *testing.T) {
	s := New()
	employer := seedEmployer(t, s)
	seeker := seedSeeker(t, s)
	posting := seedPosting(t, s, employer.ID)

	app := model.Application{JobID: posting.ID, ApplicantID: seeker.ID}
	_, err := s.CreateApplication(context.Background(), &app)
	assert.NoError(t, err)

	assert.NoError(t, s.DeleteAccount(context.Background(), employer.ID))
	_, err = s.GetAccountProfile(context.Background(), employer.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The posting and its applications survive the owner's deletion.
	got, err := s.GetJobPosting(context.Background(), posting.ID)
	assert.NoError(t, err)
	assert.Equal(t, employer.ID, got.EmployerID)

	apps, err := s.ListApplicationsByJob(context.Background(), posting.ID)
	assert.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestAggregateCounts(t *testing.T) {
	s := New()
	employer := seedEmployer(t, s)
	seeker := seedSeeker(t, s)
	posting := seedPosting(t, s, employer.ID)

	app := model.Application{JobID: posting.ID, ApplicantID: seeker.ID}
	_, err := s.CreateApplication(context.Background(), &app)
	assert.NoError(t, err)

	counts, err := s.AggregateCounts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), counts.Accounts)
	assert.Equal(t, int64(1), counts.JobPostings)
	assert.Equal(t, int64(1), counts.Applications)
}
