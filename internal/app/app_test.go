package app_test

import (
	"net/http"
	"net/url"
	"testing"

	"poolservice_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validServiceRequest() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Dana Ortiz",
		"email":       "dana@example.com",
		"zip":         "33139",
		"phone":       "305-555-0101",
		"service":     "Weekly cleaning",
		"description": "Green water since the storm last week.",
	}
}

func TestServiceRequestIntake(t *testing.T) {
	// Arrange
	ts := NewTestServer(t, 100)

	// Act
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/public/service-requests", "", validServiceRequest())

	// Assert
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	resp := decode(t, body)
	assert.NotEmpty(t, resp["id"])
	assert.NotEmpty(t, resp["message"])

	var stored models.ServiceRequest
	require.NoError(t, ts.DB.First(&stored, "id = ?", resp["id"]).Error)
	assert.False(t, stored.Assigned)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestServiceRequestIntake_ValidationEchoesInput(t *testing.T) {
	// Arrange
	ts := NewTestServer(t, 100)
	req := validServiceRequest()
	req["name"] = "Al"
	req["description"] = "short"

	// Act
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/public/service-requests", "", req)

	// Assert
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, body)
	details := errorDetails(t, body)

	fields, ok := details["fields"].(map[string]interface{})
	require.True(t, ok, body)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")

	input, ok := details["input"].(map[string]interface{})
	require.True(t, ok, body)
	assert.Equal(t, "Al", input["name"])
	assert.Equal(t, "dana@example.com", input["email"])

	var count int64
	ts.DB.Model(&models.ServiceRequest{}).Count(&count)
	assert.Zero(t, count)
}

func TestIntake_RateLimited(t *testing.T) {
	// Arrange
	ts := NewTestServer(t, 2)
	msg := map[string]interface{}{
		"name":    "Sam",
		"email":   "sam@example.com",
		"subject": "Pricing",
		"message": "How much for a monthly plan?",
	}

	// Act
	for i := 0; i < 2; i++ {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/public/messages", "", msg)
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
	}
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/public/messages", "", msg)

	// Assert
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode, body)
	assert.NotEmpty(t, res.Header.Get("Retry-After"))

	var count int64
	ts.DB.Model(&models.Message{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestMe_RequiresToken(t *testing.T) {
	ts := NewTestServer(t, 100)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestMe_ReturnsCapabilities(t *testing.T) {
	// Arrange
	ts := NewTestServer(t, 100)
	token := ts.Login(t, models.UserRoleTechnician, "tech@pools.test")

	// Act
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/me", token, nil)

	// Assert
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "tech@pools.test")
	assert.Contains(t, body, "assigned_tasks:view")
	assert.NotContains(t, body, "job_applicants")
}

func TestAdminRoutes_RequireCapability(t *testing.T) {
	// Arrange
	ts := NewTestServer(t, 100)
	techToken := ts.Login(t, models.UserRoleTechnician, "tech@pools.test")
	managerToken := ts.Login(t, models.UserRoleManager, "manager@pools.test")

	// Act + Assert
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/job-applicants", techToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/job-applicants", managerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	// Managers can send blasts but not delete their audit rows.
	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/email-blasts/00000000-0000-0000-0000-000000000000", managerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestHireFlow(t *testing.T) {
	// Arrange
	ts := NewTestServer(t, 100)
	managerToken := ts.Login(t, models.UserRoleManager, "manager@pools.test")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/public/job-applications", "", map[string]interface{}{
		"firstname":  "Alex",
		"lastname":   "Kim",
		"email":      "alex@example.com",
		"age":        30,
		"days":       []string{"Monday", "Friday"},
		"workperiod": "full-time",

		"socialsecurity":       "SSN",
		"socialsecurityNumber": "123-45-6789",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	applicantID := decode(t, body)["id"].(string)

	// Act
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/job-applicants/"+applicantID+"/accept", managerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/job-applicants/"+applicantID+"/hire", managerToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	again, againBody := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/job-applicants/"+applicantID+"/hire", managerToken, nil)

	// Assert
	assert.Equal(t, http.StatusConflict, again.StatusCode, againBody)

	var technicians int64
	ts.DB.Model(&models.User{}).Where("role = ? AND LOWER(email) = ?", models.UserRoleTechnician, "alex@example.com").Count(&technicians)
	assert.Equal(t, int64(1), technicians)
	assert.Len(t, ts.Mailer.SentTo("alex@example.com"), 2)
}

func TestJobApplicationForm_NonNumericAge(t *testing.T) {
	// Arrange
	ts := NewTestServer(t, 100)
	form := url.Values{
		"firstname":            {"Alex"},
		"lastname":             {"Kim"},
		"email":                {"alex@example.com"},
		"age":                  {"twenty"},
		"days":                 {"Monday", "Friday"},
		"socialsecurity":       {"SSN"},
		"socialsecurityNumber": {"123-45-6789"},
	}

	// Act
	res, body := ts.SendForm(t, "/api/v1/public/job-applications", form)

	// Assert
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, body)
	details := errorDetails(t, body)
	fields, ok := details["fields"].(map[string]interface{})
	require.True(t, ok, body)
	assert.Contains(t, fields, "age")
	input, ok := details["input"].(map[string]interface{})
	require.True(t, ok, body)
	assert.Equal(t, "twenty", input["age"])
	assert.Equal(t, []interface{}{"Monday", "Friday"}, input["days"])

	var count int64
	ts.DB.Model(&models.JobApplicant{}).Count(&count)
	assert.Zero(t, count)
}

func TestHome_TracksVisit(t *testing.T) {
	// Arrange
	ts := NewTestServer(t, 100)

	// Act
	for i := 0; i < 3; i++ {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/public/home", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
	}

	// Assert
	var visitors []models.Visitor
	require.NoError(t, ts.DB.Find(&visitors).Error)
	require.Len(t, visitors, 1)
	assert.Equal(t, int64(3), visitors[0].Request)
	assert.Equal(t, "127.0.0.1", visitors[0].IP)
}

func TestHealth(t *testing.T) {
	ts := NewTestServer(t, 100)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "ok")
}
