package services

import (
	"testing"
	"time"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/config"
	"poolservice_backend/internal/email"
	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/testutil"
	"poolservice_backend/internal/validator"

	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	mailer *email.MemoryProvider
	svc    *ServiceContainer
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Init("test")

	cfg := config.Default()
	cfg.Email.StaffEmail = "office@pools.test"
	cfg.Email.FromEmail = "noreply@pools.test"
	cfg.App.PublicURL = "https://pools.test"

	db := testutil.NewDB(t)
	mailer := testutil.NewMailer(t)

	svc := NewServiceContainer(Dependencies{
		Config:     cfg,
		Mailer:     mailer,
		Tokens:     auth.NewTokenManager("test-secret", time.Hour),
		Authorizer: auth.NewAuthorizer(auth.DefaultRoleCapabilities),
		Validator:  validator.New(),
	})
	return &testEnv{db: db, mailer: mailer, svc: svc, cfg: cfg}
}
