// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"poolservice_backend/database"
	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/email"
	"poolservice_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated, isolated in-memory SQLite database. A single
// connection serializes access the way one postgres row lock would.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig("test"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// NewMailer returns an in-memory mail provider with the built-in templates.
func NewMailer(t *testing.T) *email.MemoryProvider {
	t.Helper()
	tm, err := email.NewDefaultTemplateManager("")
	require.NoError(t, err)
	return email.NewMemoryProvider(tm)
}

// CreateUser inserts an active user with the given role and password "password123".
func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole, emailAddr string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		FirstName:    "Test",
		LastName:     string(role),
		Email:        emailAddr,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

var einSeq atomic.Int64

// CreateApplicant inserts a job applicant in the given status.
func CreateApplicant(t *testing.T, db *gorm.DB, emailAddr string, status models.ApplicantStatus) *models.JobApplicant {
	t.Helper()

	phone := "555-0100"
	kind := models.TaxIDEIN
	ein := fmt.Sprintf("90-%07d", einSeq.Add(1))
	applicant := &models.JobApplicant{
		FirstName: "Jamie",
		LastName:  "Rivera",
		Email:     emailAddr,
		Phone:     &phone,
		Age:       29,
		Days:      []string{"Monday", "Tuesday"},
		Status:    status,

		SocialSecurity: &kind,
		EINNumber:      &ein,
	}
	require.NoError(t, db.Create(applicant).Error)
	return applicant
}

// Identity returns the request identity of user.
func Identity(user *models.User) auth.Identity {
	return auth.IdentityFromUser(user)
}
