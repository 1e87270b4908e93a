package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"poolservice_backend/database"
	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/config"
	"poolservice_backend/internal/email"
	"poolservice_backend/internal/handlers"
	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/middleware"
	"poolservice_backend/internal/routes"
	"poolservice_backend/internal/services"
	"poolservice_backend/internal/validator"
	"poolservice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Init loads configuration and sets up logging. Every command calls it first.
func Init() *config.Config {
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	apperrors.Debug = cfg.IsDevelopment()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	return cfg
}

// Serve runs the HTTP server until SIGINT or SIGTERM.
func Serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...")
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	logger.Info("Database connected")

	if cfg.IsDevelopment() {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}

	mailer, err := NewMailer(cfg)
	if err != nil {
		return err
	}
	defer closeMailer(mailer)

	limiter, closeLimiter, err := NewLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	svc := NewServices(cfg, mailer)
	if err := seedFirstAdmin(db, cfg, svc); err != nil {
		return fmt.Errorf("failed to seed first admin user: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      SetupRouter(cfg, db, svc, limiter),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server startup error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// Migrate creates or updates the schema.
func Migrate(cfg *config.Config) error {
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	logger.Info("✅ Schema migrated", "tables", len(database.Models()))
	return nil
}

// SeedAdmin creates the first administrator from configuration.
func SeedAdmin(cfg *config.Config) error {
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	mailer, err := NewMailer(cfg)
	if err != nil {
		return err
	}
	defer closeMailer(mailer)
	return seedFirstAdmin(db, cfg, NewServices(cfg, mailer))
}

// NewServices builds the service container for cfg.
func NewServices(cfg *config.Config, mailer email.Provider) *services.ServiceContainer {
	return services.NewServiceContainer(services.Dependencies{
		Config:     cfg,
		Mailer:     mailer,
		Tokens:     auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL()),
		Authorizer: auth.NewAuthorizer(auth.DefaultRoleCapabilities),
		Validator:  validator.New(),
	})
}

// NewMailer returns the SMTP transport, or the in-memory one when the email
// driver is "log".
func NewMailer(cfg *config.Config) (email.Provider, error) {
	templates, err := email.NewDefaultTemplateManager(cfg.Email.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	if cfg.Email.Driver != "smtp" {
		logger.Warn("Email driver is not smtp, outgoing mail is only logged", "driver", cfg.Email.Driver)
		return email.NewMemoryProvider(templates), nil
	}

	smtpCfg := email.DefaultConfig()
	smtpCfg.Host = cfg.Email.SMTPHost
	smtpCfg.Port = cfg.Email.SMTPPort
	smtpCfg.Username = cfg.Email.SMTPUsername
	smtpCfg.Password = cfg.Email.SMTPPassword
	smtpCfg.FromEmail = cfg.Email.FromEmail
	smtpCfg.FromName = cfg.Email.FromName

	provider := email.NewSMTPProvider(smtpCfg, templates)
	if err := provider.Validate(); err != nil {
		return nil, fmt.Errorf("invalid smtp configuration: %w", err)
	}
	logger.Info("SMTP email provider initialized", "host", smtpCfg.Host, "port", smtpCfg.Port)
	return provider, nil
}

// NewLimiter returns a Redis-backed limiter when Redis is configured, so the
// limit is shared by all instances, and a process-local one otherwise.
func NewLimiter(ctx context.Context, cfg *config.Config) (middleware.Limiter, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("Rate limiter uses process memory")
		return middleware.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateWindow()), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis unavailable: %w", err)
	}
	logger.Info("Rate limiter uses redis", "addr", cfg.Redis.Addr)

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}
	return middleware.NewRedisLimiter(client, cfg.RateLimit.Requests, cfg.RateWindow()), closeFn, nil
}

// SetupRouter builds the gin engine with every route registered.
func SetupRouter(cfg *config.Config, db *gorm.DB, svc *services.ServiceContainer, limiter middleware.Limiter) *gin.Engine {
	base := handlers.NewBaseHandler(svc.AuthService, svc.Authorizer, limiter)
	appHandlers := handlers.NewAppHandlers(base, svc)

	ginRouter := initializeGinRouter(cfg, db)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.PathIDMiddleware())
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config, svc *services.ServiceContainer) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	_, created, err := svc.AuthService.EnsureAdmin(db, cfg.FirstAdminEmail, cfg.FirstAdminPassword)
	if err != nil {
		return err
	}
	if created {
		logger.Info("✅ Created first admin user", "email", cfg.FirstAdminEmail)
	} else {
		logger.Info("Admin user already exists. Skipping creation.", "email", cfg.FirstAdminEmail)
	}
	return nil
}

func closeMailer(mailer email.Provider) {
	if err := mailer.Close(); err != nil {
		logger.Warn("Failed to close email provider", "error", err)
	}
}
