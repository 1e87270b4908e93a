// @title           Pool Service API
// @version         1.0
// @description     Public intake, back office and technician portal of the pool service business.
// @contact.name    Pool Service
// @contact.email   office@poolservice.local
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"os"

	"poolservice_backend/internal/app"
	"poolservice_backend/internal/config"
	"poolservice_backend/internal/logger"

	"github.com/spf13/cobra"
)

var cfg *config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:   "poolservice",
		Short: "Pool service backend",
		Long:  `HTTP API for service requests, job applications, technicians and the public site.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = app.Init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve(cfg)
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve(cfg)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Migrate(cfg)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed-admin",
		Short: "Create the first administrator from FIRST_ADMIN_EMAIL and FIRST_ADMIN_PASSWORD",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.SeedAdmin(cfg)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
