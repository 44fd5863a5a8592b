// Package notify fans notification writes out as a side effect of
// marketplace mutations. Dispatch is best-effort: every failure here is
// logged and swallowed so the primary write never fails because of it.
package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/store"
)

// Dispatcher writes notifications through the active store adapter.
type Dispatcher struct {
	store store.Store
	log   *logrus.Logger
}

// NewDispatcher creates a Dispatcher on the given adapter.
func NewDispatcher(s store.Store, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{store: s, log: logger}
}

// JobPosted notifies every job seeker about a freshly created posting.
// Per-account failures are logged and skipped; the fan-out keeps going.
func (d *Dispatcher) JobPosted(ctx context.Context, posting *model.JobPosting) {
	seekers, err := d.store.ListAccountsByRole(ctx, model.RoleJobSeeker)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"job_id": posting.ID,
			"error":  err.Error(),
		}).Warn("job-alert fan-out: failed to list job seekers")
		return
	}

	jobID := posting.ID
	for _, seeker := range seekers {
		n := model.Notification{
			Type:    model.NotificationTypeJobAlert,
			Title:   "New job posted",
			Message: fmt.Sprintf("%s is hiring: %s", posting.CompanyName, posting.Title),
			JobID:   &jobID,
		}
		if err := d.store.AddNotification(ctx, seeker.ID, &n); err != nil {
			d.log.WithFields(logrus.Fields{
				"job_id":     posting.ID,
				"account_id": seeker.ID,
				"error":      err.Error(),
			}).Warn("job-alert fan-out: failed to notify account")
		}
	}
}

// ApplicationStatusChanged notifies the applicant that an employer
// moved their application, embedding the job title and new status.
func (d *Dispatcher) ApplicationStatusChanged(ctx context.Context, applicantID uuid.UUID, jobID uint, jobTitle, status string) {
	n := model.Notification{
		Type:    model.NotificationTypeApplicationUpdate,
		Title:   "Application update",
		Message: fmt.Sprintf("Your application for %q is now %s", jobTitle, status),
		JobID:   &jobID,
	}
	if err := d.store.AddNotification(ctx, applicantID, &n); err != nil {
		d.log.WithFields(logrus.Fields{
			"job_id":     jobID,
			"account_id": applicantID,
			"error":      err.Error(),
		}).Warn("failed to notify applicant of status change")
	}
}

// MarkRead flips one notification of the owner to read. Idempotent.
func (d *Dispatcher) MarkRead(ctx context.Context, accountID uuid.UUID, notificationID uint) error {
	return d.store.MarkNotificationRead(ctx, accountID, notificationID)
}
