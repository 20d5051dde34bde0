package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/cmd/cli/commands"
	"github.com/sekolahku/ppdb/internal/config"
	"github.com/sekolahku/ppdb/pkg/clients/mailclient"
	"github.com/sekolahku/ppdb/pkg/postgres"
	"github.com/sekolahku/ppdb/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ppdb",
		Short: "PPDB CLI - Manage new student admission selection",
		Long:  `A CLI tool for computing composite admission scores and running quota-based selection over verified applicants.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Logger != nil {
					app.Logger.Sync()
				}
				if app.Database != nil {
					app.Database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ComputeScoresCmd(appRef()))
	rootCmd.AddCommand(commands.RunSelectionCmd(appRef()))
	rootCmd.AddCommand(commands.ListCandidatesCmd(appRef()))
	rootCmd.AddCommand(commands.OverrideOutcomeCmd(appRef()))
	rootCmd.AddCommand(commands.ShowConfigCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, allocating it before initApp has
// populated it so command constructors can hold a stable pointer.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{Ctx: context.Background()}
	}
	return app
}

// initApp sets up logger, env, config, database, and the notifier
func initApp() error {
	a := appRef()

	var err error
	a.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.Logger.Info("Starting application", zap.String("environment", env))

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		a.Logger.Debug("Loaded environment from .env file")
	}

	a.Logger.Info("Loading configuration")
	a.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.Logger.Debug("Configuration loaded successfully")

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	a.Logger.Info("Connecting to database")
	a.Database, err = postgres.NewDB(a.Ctx, connString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	a.Logger.Info("Running database migrations")
	if err := a.Database.RunMigrations(a.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Notifier is optional: without Gmail credentials, selection still
	// commits outcomes and simply skips notification delivery
	if creds, ok := mailclient.CredentialsFromEnv(); ok {
		a.Logger.Info("Initializing mail client")
		mailer, err := mailclient.NewClient(a.Ctx, creds, a.Cfg.Notifier.GmailUserID)
		if err != nil {
			return fmt.Errorf("failed to create mail client: %w", err)
		}
		a.Notifier = mailer
	} else {
		a.Logger.Warn("Gmail credentials not set - outcome notifications disabled")
	}

	a.Logger.Info("Application initialized successfully")
	return nil
}
