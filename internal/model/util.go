package model

// MigrateAble is array of model instance, use for migrating database
var MigrateAble []interface{}

func init() {
	MigrateAble = append(
		MigrateAble,
		&Account{},
		&SeekerProfile{},
		&EmployerProfile{},
		&JobPosting{},
		&Application{},
		&Notification{},
		&Rating{},
		&SavedJob{},
		&PasswordResetToken{},
	)
}

// Counts holds the three independent full-collection counts exposed on
// the admin dashboard.
type Counts struct {
	Accounts     int64 `json:"accounts"`
	JobPostings  int64 `json:"job_postings"`
	Applications int64 `json:"applications"`
}
