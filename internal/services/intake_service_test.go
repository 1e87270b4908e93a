package services

import (
	"net/http"
	"strings"
	"testing"

	"poolservice_backend/internal/models"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validServiceRequestForm() *dto.ServiceRequestForm {
	return &dto.ServiceRequestForm{
		Name:        "Maria Lopez",
		Email:       "Maria@Example.com",
		Zip:         "33101",
		Phone:       "305-555-0101",
		Service:     "Weekly cleaning",
		Description: "The pool is green after the storm.",
	}
}

func TestSubmitServiceRequest_CreatesUnassignedRow(t *testing.T) {
	env := newTestEnv(t)

	sr, err := env.svc.IntakeService.SubmitServiceRequest(env.db, validServiceRequestForm())
	require.NoError(t, err)

	var rows []models.ServiceRequest
	require.NoError(t, env.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, sr.ID, rows[0].ID)
	assert.False(t, rows[0].Assigned)
	assert.Equal(t, "maria@example.com", rows[0].Email)

	assert.Len(t, env.mailer.SentTo("maria@example.com"), 1, "acknowledgement")
	assert.Len(t, env.mailer.SentTo("office@pools.test"), 1, "staff alert")
}

func TestSubmitServiceRequest_Validation(t *testing.T) {
	env := newTestEnv(t)

	form := validServiceRequestForm()
	form.Name = "Jo"
	form.Email = "not-an-email"
	form.Description = "short"

	_, err := env.svc.IntakeService.SubmitServiceRequest(env.db, form)
	require.Error(t, err)

	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "description")

	var count int64
	env.db.Model(&models.ServiceRequest{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, env.mailer.Sent())
}

func TestSubmitServiceRequest_MailFailureDoesNotFailRequest(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.FailWith = assert.AnError

	_, err := env.svc.IntakeService.SubmitServiceRequest(env.db, validServiceRequestForm())
	require.NoError(t, err)

	var count int64
	env.db.Model(&models.ServiceRequest{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubmitMessage_BodyLengthBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"empty", "", true},
		{"too long", strings.Repeat("a", 1001), true},
		{"exactly 1000", strings.Repeat("a", 1000), false},
		{"1000 multibyte runes", strings.Repeat("ñ", 1000), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.svc.IntakeService.SubmitMessage(env.db, &dto.MessageForm{
				Name:    "Sam",
				Email:   "sam@example.com",
				Subject: "Quote",
				Message: tc.body,
			})

			var count int64
			env.db.Model(&models.Message{}).Count(&count)

			if tc.wantErr {
				require.Error(t, err)
				fields, ok := apperrors.Fields(err)
				require.True(t, ok)
				assert.Contains(t, fields, "message")
				assert.Zero(t, count)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})
	}
}

func TestSubmitMessage_StoresUnread(t *testing.T) {
	env := newTestEnv(t)

	msg, err := env.svc.IntakeService.SubmitMessage(env.db, &dto.MessageForm{
		Name: "Sam", Email: "sam@example.com", Subject: "Hi", Message: "Do you service spas?",
	})
	require.NoError(t, err)

	stored, err := env.svc.MessageService.Get(env.db, msg.ID)
	require.NoError(t, err)
	assert.False(t, stored.Read)
	assert.False(t, stored.Replied)
	assert.Nil(t, stored.Phone)
}

func validPublicApplication() *dto.PublicApplicationForm {
	return &dto.PublicApplicationForm{
		FirstName:  "Alex",
		LastName:   "Kim",
		Email:      "alex@example.com",
		Age:        30,
		Days:       []string{"monday", "Friday"},
		WorkPeriod: "full-time",

		SocialSecurity:       "SSN",
		SocialSecurityNumber: "123-45-6789",
	}
}

func TestSubmitJobApplication_Public(t *testing.T) {
	env := newTestEnv(t)

	a, err := env.svc.IntakeService.SubmitJobApplication(env.db, validPublicApplication())
	require.NoError(t, err)

	stored, err := env.svc.JobApplicantService.Get(env.db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicantStatusPending, stored.Status)
	assert.Equal(t, []string{"Monday", "Friday"}, []string(stored.Days))
	require.NotNil(t, stored.SocialSecurity)
	assert.Equal(t, models.TaxIDSSN, *stored.SocialSecurity)
	require.NotNil(t, stored.SocialSecurityNumber)
	assert.Equal(t, "123-45-6789", *stored.SocialSecurityNumber)
	assert.Nil(t, stored.EINNumber)
	assert.Nil(t, stored.LicenceNumber)
	assert.False(t, stored.Licence)
}

func TestSubmitJobApplication_AbbreviatedDays(t *testing.T) {
	env := newTestEnv(t)

	form := validPublicApplication()
	form.Days = []string{"Mon", "tue", "Monday", "Sun"}

	a, err := env.svc.IntakeService.SubmitJobApplication(env.db, form)
	require.NoError(t, err)

	stored, err := env.svc.JobApplicantService.Get(env.db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "Tuesday", "Sunday"}, []string(stored.Days))
}

func TestSubmitJobApplication_PublicRules(t *testing.T) {
	env := newTestEnv(t)

	form := validPublicApplication()
	form.Age = 17
	form.Days = []string{"Funday"}
	form.WorkPeriod = "forever"

	_, err := env.svc.IntakeService.SubmitJobApplication(env.db, form)
	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "age")
	assert.Contains(t, fields, "days[0]")
	assert.Contains(t, fields, "workperiod")
}

func TestSubmitJobApplication_SSNRequiresNumber(t *testing.T) {
	env := newTestEnv(t)

	form := validPublicApplication()
	form.SocialSecurityNumber = ""

	_, err := env.svc.IntakeService.SubmitJobApplication(env.db, form)
	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "socialsecurityNumber")

	var count int64
	env.db.Model(&models.JobApplicant{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitJobApplication_RequiresTaxIDKind(t *testing.T) {
	env := newTestEnv(t)

	form := validPublicApplication()
	form.SocialSecurity = ""
	form.SocialSecurityNumber = ""

	_, err := env.svc.IntakeService.SubmitJobApplication(env.db, form)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode)
	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "socialsecurity")

	var count int64
	env.db.Model(&models.JobApplicant{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitJobApplication_KeepsOnlyMatchingTaxID(t *testing.T) {
	env := newTestEnv(t)

	form := validPublicApplication()
	form.SocialSecurity = "EIN"
	form.SocialSecurityNumber = "123-45-6789"
	form.EINNumber = "12-3456789"

	a, err := env.svc.IntakeService.SubmitJobApplication(env.db, form)
	require.NoError(t, err)

	stored, err := env.svc.JobApplicantService.Get(env.db, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EINNumber)
	assert.Equal(t, "12-3456789", *stored.EINNumber)
	assert.Nil(t, stored.SocialSecurityNumber)
}

func TestSubmitJobApplication_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.IntakeService.SubmitJobApplication(env.db, validPublicApplication())
	require.NoError(t, err)

	form := validPublicApplication()
	form.Email = "ALEX@example.com"
	_, err = env.svc.IntakeService.SubmitJobApplication(env.db, form)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
}
