package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"poolservice_backend/internal/app"
	"poolservice_backend/internal/config"
	"poolservice_backend/internal/email"
	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/middleware"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestServer is the full router over an in-memory database and mailer.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Mailer *email.MemoryProvider
}

func NewTestServer(t *testing.T, rateLimit int) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "integration-secret"
	cfg.App.PublicURL = "https://pools.test"

	db := testutil.NewDB(t)
	mailer := testutil.NewMailer(t)
	svc := app.NewServices(cfg, mailer)
	limiter := middleware.NewMemoryLimiter(rateLimit, time.Minute)

	server := httptest.NewServer(app.SetupRouter(cfg, db, svc, limiter))
	t.Cleanup(server.Close)

	return &TestServer{Server: server, DB: db, Mailer: mailer}
}

// SendRequest sends body as JSON and returns the response with its body.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(resBody)
}

// SendForm posts form as application/x-www-form-urlencoded.
func (ts *TestServer) SendForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(resBody)
}

// Login creates an active user with role and returns its access token.
func (ts *TestServer) Login(t *testing.T, role models.UserRole, emailAddr string) string {
	t.Helper()
	testutil.CreateUser(t, ts.DB, role, emailAddr)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    emailAddr,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &login))
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func decode(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &out), body)
	return out
}

// errorDetails returns error.details of an error response.
func errorDetails(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	errObj, ok := decode(t, body)["error"].(map[string]interface{})
	require.True(t, ok, body)
	details, ok := errObj["details"].(map[string]interface{})
	require.True(t, ok, body)
	return details
}
