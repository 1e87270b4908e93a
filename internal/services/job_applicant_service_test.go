package services

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/internal/testutil"
	"poolservice_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPortalApplication() *dto.PortalApplicationForm {
	return &dto.PortalApplicationForm{
		FirstName:            "Riley",
		LastName:             "Chen",
		Email:                "riley@example.com",
		Phone:                "555-0199",
		Address:              "1 Ocean Dr",
		City:                 "Miami",
		State:                "FL",
		Zip:                  "33139",
		Age:                  28,
		Birthdate:            "1997-04-02",
		Nationality:          "US",
		SocialSecurity:       "SSN",
		SocialSecurityNumber: "123-45-6789",
		Licence:              "no",
		Days:                 []string{"Monday", "Wednesday", "Friday"},
		WorkPeriod:           6,
		WorkHours:            40,
	}
}

func countRows(t *testing.T, env *testEnv, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(model).Count(&n).Error)
	return n
}

// ============================================================================
// Portal application
// ============================================================================

func TestApply_StoresApplicant(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, models.UserRoleUser, "user@example.com")

	a, err := env.svc.JobApplicantService.Apply(env.db, testutil.Identity(user), validPortalApplication())
	require.NoError(t, err)

	stored, err := env.svc.JobApplicantService.Get(env.db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicantStatusPending, stored.Status)
	require.NotNil(t, stored.SubmittedByID)
	assert.Equal(t, user.ID, *stored.SubmittedByID)
	require.NotNil(t, stored.WorkPeriodMonths)
	assert.Equal(t, 6, *stored.WorkPeriodMonths)
	assert.Nil(t, stored.EINNumber)
	assert.Nil(t, stored.LicenceNumber, "licence details are NULL, never a sentinel")
	assert.Nil(t, stored.LicenceIssuedCity)
}

func TestApply_SSNWithoutNumber(t *testing.T) {
	env := newTestEnv(t)

	form := validPortalApplication()
	form.SocialSecurityNumber = ""

	_, err := env.svc.JobApplicantService.Apply(env.db, auth.Identity{}, form)
	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	assert.Equal(t, "This field is required", fields["socialsecurityNumber"])
	assert.Zero(t, countRows(t, env, &models.JobApplicant{}))
}

func TestApply_StricterRules(t *testing.T) {
	env := newTestEnv(t)

	form := validPortalApplication()
	form.Age = 46
	form.Days = []string{"Monday"}
	form.WorkPeriod = 13
	form.WorkHours = 20
	form.Zip = "33a"
	form.SocialSecurityNumber = "123"

	_, err := env.svc.JobApplicantService.Apply(env.db, auth.Identity{}, form)
	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	for _, f := range []string{"age", "days", "workperiod", "workHours", "zip", "socialsecurityNumber"} {
		assert.Contains(t, fields, f)
	}
}

func TestApply_LicenceSecondPass(t *testing.T) {
	env := newTestEnv(t)

	form := validPortalApplication()
	form.Licence = "YES"
	form.LicenceNumber = "123"

	_, err := env.svc.JobApplicantService.Apply(env.db, auth.Identity{}, form)
	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "licenceNumber")
	assert.Contains(t, fields, "issueddate")
	assert.Contains(t, fields, "expiredate")
	assert.Contains(t, fields, "issuedcity")
	assert.Zero(t, countRows(t, env, &models.JobApplicant{}))

	form.LicenceNumber = "FL-998877"
	form.LicenceIssuedDate = "2020-01-01"
	form.LicenceExpireDate = "2026-01-01"
	form.LicenceIssuedCity = "Tampa"

	a, err := env.svc.JobApplicantService.Apply(env.db, auth.Identity{}, form)
	require.NoError(t, err)
	assert.True(t, a.Licence)
	require.NotNil(t, a.LicenceNumber)
	assert.Equal(t, "FL-998877", *a.LicenceNumber)
}

func TestApply_DuplicateSSN(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.JobApplicantService.Apply(env.db, auth.Identity{}, validPortalApplication())
	require.NoError(t, err)

	form := validPortalApplication()
	form.Email = "other@example.com"
	_, err = env.svc.JobApplicantService.Apply(env.db, auth.Identity{}, form)

	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "socialsecurityNumber")
	assert.NotContains(t, fields, "email")
	assert.Equal(t, int64(1), countRows(t, env, &models.JobApplicant{}))
}

// ============================================================================
// Lifecycle
// ============================================================================

func TestAccept(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateApplicant(t, env.db, "jamie@example.com", models.ApplicantStatusPending)

	accepted, err := env.svc.JobApplicantService.Accept(env.db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicantStatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.AcceptedAt)
	assert.Len(t, env.mailer.SentTo("jamie@example.com"), 1)

	_, err = env.svc.JobApplicantService.Accept(env.db, a.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestReject_WithReason(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateApplicant(t, env.db, "jamie@example.com", models.ApplicantStatusAccepted)

	reason := "  We need a licensed CPO.  "
	rejected, err := env.svc.JobApplicantService.Reject(env.db, a.ID, &dto.RejectApplicantRequest{Reason: reason})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicantStatusRejected, rejected.Status)
	assert.NotNil(t, rejected.RejectedAt)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)

	sent := env.mailer.SentTo("jamie@example.com")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTMLBody, "We need a licensed CPO.")
}

func TestReject_WithoutReason(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateApplicant(t, env.db, "jamie@example.com", models.ApplicantStatusPending)

	rejected, err := env.svc.JobApplicantService.Reject(env.db, a.ID, &dto.RejectApplicantRequest{Reason: "   "})
	require.NoError(t, err)
	assert.NotNil(t, rejected.RejectedAt)
	assert.Nil(t, rejected.RejectionReason)
}

func TestHire_FromAccepted(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateApplicant(t, env.db, "jamie@example.com", models.ApplicantStatusPending)
	_, err := env.svc.JobApplicantService.Accept(env.db, a.ID)
	require.NoError(t, err)
	env.mailer.Reset()

	res, err := env.svc.JobApplicantService.Hire(env.db, a.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ApplicantStatusHired, res.Applicant.Status)
	assert.True(t, res.Applicant.Hire)
	assert.NotNil(t, res.Applicant.HiredAt)
	require.NotNil(t, res.Applicant.UserID)
	assert.Equal(t, res.Technician.ID, *res.Applicant.UserID)

	user, err := env.svc.UserService.Get(env.db, res.Technician.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Email, user.Email)
	assert.Equal(t, models.UserRoleTechnician, user.Role)
	assert.True(t, user.IsActive)

	sent := env.mailer.SentTo("jamie@example.com")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTMLBody, "https://pools.test/login")
}

func TestHire_Twice(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateApplicant(t, env.db, "jamie@example.com", models.ApplicantStatusAccepted)

	_, err := env.svc.JobApplicantService.Hire(env.db, a.ID)
	require.NoError(t, err)
	env.mailer.Reset()

	_, err = env.svc.JobApplicantService.Hire(env.db, a.ID)
	require.ErrorIs(t, err, apperrors.ErrApplicantAlreadyHired)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	assert.Equal(t, int64(1), countRows(t, env, &models.User{}))
	assert.Empty(t, env.mailer.Sent())
}

func TestHire_Concurrent(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateApplicant(t, env.db, "jamie@example.com", models.ApplicantStatusAccepted)

	const attempts = 5
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.JobApplicantService.Hire(env.db, a.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(1), countRows(t, env, &models.User{}))
}

// Hiring straight from pending is allowed and ends in the same state as
// hiring an accepted applicant.
func TestHire_FromPending(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateApplicant(t, env.db, "jamie@example.com", models.ApplicantStatusPending)

	res, err := env.svc.JobApplicantService.Hire(env.db, a.ID)
	require.NoError(t, err)

	h := res.Applicant
	assert.Equal(t, models.ApplicantStatusHired, h.Status)
	assert.True(t, h.Hire)
	assert.NotNil(t, h.HiredAt)
	assert.NotNil(t, h.AcceptedAt, "accepted_at is filled in when skipping accepted")
	assert.NotNil(t, h.UserID)
}

func TestHire_Rejected(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateApplicant(t, env.db, "jamie@example.com", models.ApplicantStatusRejected)

	_, err := env.svc.JobApplicantService.Hire(env.db, a.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
	assert.Zero(t, countRows(t, env, &models.User{}))
}

func TestHire_EmailTakenRollsBack(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, models.UserRoleUser, "jamie@example.com")
	a := testutil.CreateApplicant(t, env.db, "jamie@example.com", models.ApplicantStatusAccepted)

	_, err := env.svc.JobApplicantService.Hire(env.db, a.ID)
	require.ErrorIs(t, err, apperrors.ErrHireEmailTaken)

	stored, err := env.svc.JobApplicantService.Get(env.db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicantStatusAccepted, stored.Status)
	assert.Nil(t, stored.UserID)
	assert.Equal(t, int64(1), countRows(t, env, &models.User{}))
}

func TestHire_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.JobApplicantService.Hire(env.db, "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestDeleteApplicant_IsSoft(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateApplicant(t, env.db, "jamie@example.com", models.ApplicantStatusPending)

	require.NoError(t, env.svc.JobApplicantService.Delete(env.db, a.ID))

	_, err := env.svc.JobApplicantService.Get(env.db, a.ID)
	require.Error(t, err)

	var raw models.JobApplicant
	require.NoError(t, env.db.Where("id = ?", a.ID).First(&raw).Error)
	assert.NotNil(t, raw.DeletedAt)

	list, err := env.svc.JobApplicantService.List(env.db, &dto.ApplicantListQuery{}, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, list.Total)

	// The email can be used again once the old application is deleted.
	form := validPublicApplication()
	form.Email = strings.ToUpper(a.Email)
	_, err = env.svc.IntakeService.SubmitJobApplication(env.db, form)
	require.NoError(t, err)
}
