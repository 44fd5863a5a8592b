package service

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/notify"
	"ethiowork-backend/internal/store/memstore"
)

func newTestService() (*Service, *memstore.MemStore) {
	ms := memstore.New()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(ms, notify.NewDispatcher(ms, log), log), ms
}

func seedAccount(t *testing.T, svc *Service, role string) model.Account {
	t.Helper()
	acc := model.Account{
		Email: uuid.NewString() + "@ethiowork.test",
		Role:  role,
	}
	switch role {
	case model.RoleJobSeeker:
		acc.SeekerProfile = &model.SeekerProfile{FirstName: "Sara", LastName: "Bekele"}
	case model.RoleEmployer:
		acc.EmployerProfile = &model.EmployerProfile{CompanyName: "Blue Nile Logistics"}
	}
	assert.NoError(t, svc.CreateAccountProfile(context.Background(), &acc))
	return acc
}

func TestCreateJobPostingFansOutJobAlerts(t *testing.T) {
	svc, _ := newTestService()
	employer := seedAccount(t, svc, model.RoleEmployer)
	seeker1 := seedAccount(t, svc, model.RoleJobSeeker)
	seeker2 := seedAccount(t, svc, model.RoleJobSeeker)

	posting := model.JobPosting{
		EmployerID: employer.ID,
		EditableJobPostingInfo: model.EditableJobPostingInfo{
			Title:       "Operations Analyst",
			CompanyName: "Blue Nile Logistics",
		},
	}
	id, err := svc.CreateJobPosting(context.Background(), &posting)
	assert.NoError(t, err)
	assert.NotZero(t, id)

	for _, seeker := range []model.Account{seeker1, seeker2} {
		list, err := svc.ListNotifications(context.Background(), seeker.ID)
		assert.NoError(t, err)
		if assert.Len(t, list, 1) {
			assert.Equal(t, model.NotificationTypeJobAlert, list[0].Type)
			assert.Contains(t, list[0].Message, "Operations Analyst")
			if assert.NotNil(t, list[0].JobID) {
				assert.Equal(t, id, *list[0].JobID)
			}
		}
	}

	// The employer is not a job seeker and gets no alert.
	list, err := svc.ListNotifications(context.Background(), employer.ID)
	assert.NoError(t, err)
	assert.Len(t, list, 0)
}

func TestSetApplicationStatusNotifiesApplicant(t *testing.T) {
	svc, _ := newTestService()
	employer := seedAccount(t, svc, model.RoleEmployer)
	seeker := seedAccount(t, svc, model.RoleJobSeeker)

	posting := model.JobPosting{
		EmployerID: employer.ID,
		EditableJobPostingInfo: model.EditableJobPostingInfo{
			Title:       "Frontend Engineer",
			CompanyName: "Blue Nile Logistics",
		},
	}
	_, err := svc.CreateJobPosting(context.Background(), &posting)
	assert.NoError(t, err)

	app := model.Application{JobID: posting.ID, ApplicantID: seeker.ID}
	appID, err := svc.ApplyToJob(context.Background(), &app)
	assert.NoError(t, err)

	assert.NoError(t, svc.SetApplicationStatus(context.Background(), appID, model.ApplicationStatusShortlisted))

	got, err := svc.GetApplication(context.Background(), appID)
	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusShortlisted, got.Status)

	list, err := svc.ListNotifications(context.Background(), seeker.ID)
	assert.NoError(t, err)

	var update *model.Notification
	for i := range list {
		if list[i].Type == model.NotificationTypeApplicationUpdate {
			update = &list[i]
		}
	}
	if assert.NotNil(t, update, "applicant must receive an application_update notification") {
		assert.Contains(t, update.Message, "Frontend Engineer")
		assert.Contains(t, update.Message, model.ApplicationStatusShortlisted)
	}
}

func TestSetApplicationStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()
	employer := seedAccount(t, svc, model.RoleEmployer)
	seeker := seedAccount(t, svc, model.RoleJobSeeker)

	posting := model.JobPosting{
		EmployerID:             employer.ID,
		EditableJobPostingInfo: model.EditableJobPostingInfo{Title: "Frontend Engineer"},
	}
	_, err := svc.CreateJobPosting(context.Background(), &posting)
	assert.NoError(t, err)

	app := model.Application{JobID: posting.ID, ApplicantID: seeker.ID}
	appID, err := svc.ApplyToJob(context.Background(), &app)
	assert.NoError(t, err)

	err = svc.SetApplicationStatus(context.Background(), appID, "hired")
	assert.EqualError(t, err, "unknown application status: hired")

	got, err := svc.GetApplication(context.Background(), appID)
	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, got.Status, "rejected status write must leave the application untouched")
}

func TestSetApplicationStatusAllowsBackwardTransition(t *testing.T) {
	svc, _ := newTestService()
	employer := seedAccount(t, svc, model.RoleEmployer)
	seeker := seedAccount(t, svc, model.RoleJobSeeker)

	posting := model.JobPosting{
		EmployerID:             employer.ID,
		EditableJobPostingInfo: model.EditableJobPostingInfo{Title: "Senior Go Developer"},
	}
	_, err := svc.CreateJobPosting(context.Background(), &posting)
	assert.NoError(t, err)

	app := model.Application{JobID: posting.ID, ApplicantID: seeker.ID}
	appID, err := svc.ApplyToJob(context.Background(), &app)
	assert.NoError(t, err)

	assert.NoError(t, svc.SetApplicationStatus(context.Background(), appID, model.ApplicationStatusRejected))
	assert.NoError(t, svc.SetApplicationStatus(context.Background(), appID, model.ApplicationStatusPending))

	got, err := svc.GetApplication(context.Background(), appID)
	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, got.Status)
}
