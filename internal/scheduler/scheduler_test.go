package scheduler

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/notify"
	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/store/memstore"
)

func TestStartRunsImmediateSweep(t *testing.T) {
	ms := memstore.New()
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := service.New(ms, notify.NewDispatcher(ms, log), log)

	employer := model.Account{
		Email: uuid.NewString() + "@ethiowork.test",
		Role:  model.RoleEmployer,
	}
	assert.NoError(t, ms.CreateAccountProfile(context.Background(), &employer))

	past := time.Now().Add(-time.Hour)
	posting := model.JobPosting{
		EmployerID: employer.ID,
		EditableJobPostingInfo: model.EditableJobPostingInfo{
			Title:     "Expired posting",
			ExpiresAt: &past,
		},
	}
	_, err := ms.CreateJobPosting(context.Background(), &posting)
	assert.NoError(t, err)
	// Creation forces status to active; push the expiry back afterwards.
	assert.NoError(t, ms.UpdateJobPosting(context.Background(), posting.ID, &model.EditableJobPostingInfo{ExpiresAt: &past}))

	s := New(svc, log, 60)
	assert.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		got, err := ms.GetJobPosting(context.Background(), posting.ID)
		return err == nil && got.Status == model.PostingStatusClosed
	}, 2*time.Second, 20*time.Millisecond, "the startup sweep closes already-expired postings")
}
