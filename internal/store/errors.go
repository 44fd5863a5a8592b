package store

import "errors"

var (
	// ErrNotFound is returned when a referenced entity is absent.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateRating is returned when a rater already rated the
	// same account.
	ErrDuplicateRating = errors.New("account already rated by this rater")
	// ErrDuplicateApplication is returned when an applicant already
	// applied to the same posting.
	ErrDuplicateApplication = errors.New("already applied to this job posting")
	// ErrDuplicateEmail is returned when registering an email that
	// already has an identity.
	ErrDuplicateEmail = errors.New("email already registered")
)
