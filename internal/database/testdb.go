package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "ethiowork-backend/internal/model"
	"ethiowork-backend/internal/utilities"
)

var testDBInstance *DBInstance
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded accounts & postings for tests
var (
	TestAdmin     m.Account
	TestSeeker1   m.Account
	TestSeeker2   m.Account
	TestEmployer1 m.Account
	TestEmployer2 m.Account

	// Plain password every seeded account uses
	TestSeedPassword = "SeedPass123!"

	TestPosting1 m.JobPosting
	TestPosting2 m.JobPosting
	TestPosting3 m.JobPosting
)

// GetTestDB starts a PostgreSQL test container and returns a teardown
// function, the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBInstance, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		UseConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample seeker and employer accounts (2 each)
// plus three postings if the database is empty.
func seedTestData(db *DBInstance) error {
	var accountCount int64
	if err := db.Model(&m.Account{}).Count(&accountCount).Error; err != nil {
		return err
	}

	// Ignore admin account that got created during NewDBInstance
	if accountCount > 1 {
		return loadTestData(db)
	}

	hashed, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	TestAdmin = m.Account{
		Email:        "admin@ethiowork.test",
		PasswordHash: hashed,
		Role:         m.RoleAdmin,
		Active:       true,
	}
	TestSeeker1 = m.Account{
		Email:        "seeker1@ethiowork.test",
		PasswordHash: hashed,
		Role:         m.RoleJobSeeker,
		Active:       true,
		SeekerProfile: &m.SeekerProfile{
			FirstName: "Abel",
			LastName:  "Tesfaye",
			Headline:  "Backend developer",
			Location:  "Addis Ababa",
			Skills:    pq.StringArray{"go", "postgres"},
		},
	}
	TestSeeker2 = m.Account{
		Email:        "seeker2@ethiowork.test",
		PasswordHash: hashed,
		Role:         m.RoleJobSeeker,
		Active:       true,
		SeekerProfile: &m.SeekerProfile{
			FirstName: "Sara",
			LastName:  "Bekele",
			Headline:  "Frontend developer",
			Location:  "Bahir Dar",
			Skills:    pq.StringArray{"typescript", "react"},
		},
	}
	TestEmployer1 = m.Account{
		Email:        "employer1@ethiowork.test",
		PasswordHash: hashed,
		Role:         m.RoleEmployer,
		Active:       true,
		EmployerProfile: &m.EmployerProfile{
			CompanyName: "Sheba Tech",
			Industry:    "Software",
			Website:     "https://shebatech.test",
		},
	}
	TestEmployer2 = m.Account{
		Email:        "employer2@ethiowork.test",
		PasswordHash: hashed,
		Role:         m.RoleEmployer,
		Active:       true,
		EmployerProfile: &m.EmployerProfile{
			CompanyName: "Blue Nile Logistics",
			Industry:    "Logistics",
		},
	}

	for _, acc := range []*m.Account{&TestAdmin, &TestSeeker1, &TestSeeker2, &TestEmployer1, &TestEmployer2} {
		if err := db.Create(acc).Error; err != nil {
			return err
		}
	}

	TestPosting1 = m.JobPosting{
		EmployerID: TestEmployer1.ID,
		EditableJobPostingInfo: m.EditableJobPostingInfo{
			Title:          "Senior Go Developer",
			CompanyName:    "Sheba Tech",
			Location:       "Addis Ababa",
			EmploymentType: "full_time",
			WorkMode:       "hybrid",
			Description:    "Build marketplace services",
			Skills:         pq.StringArray{"go", "postgres"},
		},
		Status: m.PostingStatusActive,
	}
	TestPosting2 = m.JobPosting{
		EmployerID: TestEmployer1.ID,
		EditableJobPostingInfo: m.EditableJobPostingInfo{
			Title:          "Frontend Engineer",
			CompanyName:    "Sheba Tech",
			Location:       "Remote",
			EmploymentType: "contract",
			WorkMode:       "remote",
			Description:    "Ship the web client",
			Skills:         pq.StringArray{"react"},
		},
		Status: m.PostingStatusActive,
	}
	TestPosting3 = m.JobPosting{
		EmployerID: TestEmployer2.ID,
		EditableJobPostingInfo: m.EditableJobPostingInfo{
			Title:          "Operations Analyst",
			CompanyName:    "Blue Nile Logistics",
			Location:       "Dire Dawa",
			EmploymentType: "full_time",
			WorkMode:       "onsite",
			Description:    "Keep the trucks moving",
		},
		Status: m.PostingStatusActive,
	}

	for _, posting := range []*m.JobPosting{&TestPosting1, &TestPosting2, &TestPosting3} {
		if err := db.Create(posting).Error; err != nil {
			return err
		}
	}

	return nil
}

// loadTestData refreshes the exported fixtures from an already-seeded
// database so every test package sees the same rows.
func loadTestData(db *DBInstance) error {
	if err := db.Where("email = ?", "admin@ethiowork.test").First(&TestAdmin).Error; err != nil {
		if err := db.Where("role = ?", m.RoleAdmin).First(&TestAdmin).Error; err != nil {
			return err
		}
	}
	if err := db.Preload("SeekerProfile").Where("email = ?", "seeker1@ethiowork.test").First(&TestSeeker1).Error; err != nil {
		return err
	}
	if err := db.Preload("SeekerProfile").Where("email = ?", "seeker2@ethiowork.test").First(&TestSeeker2).Error; err != nil {
		return err
	}
	if err := db.Preload("EmployerProfile").Where("email = ?", "employer1@ethiowork.test").First(&TestEmployer1).Error; err != nil {
		return err
	}
	if err := db.Preload("EmployerProfile").Where("email = ?", "employer2@ethiowork.test").First(&TestEmployer2).Error; err != nil {
		return err
	}
	if err := db.Where("title = ?", "Senior Go Developer").First(&TestPosting1).Error; err != nil {
		return err
	}
	if err := db.Where("title = ?", "Frontend Engineer").First(&TestPosting2).Error; err != nil {
		return err
	}
	if err := db.Where("title = ?", "Operations Analyst").First(&TestPosting3).Error; err != nil {
		return err
	}
	return nil
}
