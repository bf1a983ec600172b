// Command sitectl runs maintenance tasks against the site database: schema migrations
// and fixture backups.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/suresh-yadav/portfolio-backend/config"
	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/fixtures"
)

var (
	cfg map[string]string

	fixturesDir string
	bucket      string
	prefix      string
)

var rootCmd = &cobra.Command{
	Use:           "sitectl",
	Short:         "Maintenance tasks for the portfolio backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("No .env file loaded")
		}
		var err error
		cfg, err = config.WithSSM(cmd.Context(), config.New())
		if err != nil {
			return err
		}
		config.ConfigureLogging(cfg)
		return nil
	},
}

// migrateCmd is the parent of the schema migration commands
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back SQL schema migrations (postgres only)",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up [steps]",
	Short: "Apply pending migrations, or only the next N",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := stepsArg(args, 0)
		if err != nil {
			return err
		}
		return runMigrations(cmd.Context(), steps)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back the last N migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := stepsArg(args, 1)
		if err != nil {
			return err
		}
		if steps == 0 {
			return fmt.Errorf("down needs at least one step")
		}
		return runMigrations(cmd.Context(), -steps)
	},
}

// fixturesCmd is the parent of the backup commands
var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Export, import and back up content as JSON fixtures",
}

var fixturesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every table to JSON files in --dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		results, err := fixtures.Export(cmd.Context(), db, fixturesDir)
		if err != nil {
			return err
		}
		printResults(cmd, "exported", results)
		return nil
	},
}

var fixturesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the JSON files in --dir into empty tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		results, err := fixtures.Import(cmd.Context(), db, fixturesDir)
		if err != nil {
			return err
		}
		printResults(cmd, "imported", results)
		return nil
	},
}

var fixturesPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the fixture files in --dir to S3",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := fixtures.NewS3StoreFromEnv(cmd.Context(), bucketName(), prefix)
		if err != nil {
			return err
		}
		files, err := store.Push(cmd.Context(), fixturesDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d files to s3://%s/%s\n", len(files), bucketName(), prefix)
		return nil
	},
}

var fixturesPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download fixture files from S3 into --dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := fixtures.NewS3StoreFromEnv(cmd.Context(), bucketName(), prefix)
		if err != nil {
			return err
		}
		files, err := store.Pull(cmd.Context(), fixturesDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "downloaded %d files into %s\n", len(files), fixturesDir)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)

	fixturesCmd.PersistentFlags().StringVar(&fixturesDir, "dir", "fixtures/data", "Directory holding the fixture files")
	fixturesPushCmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (defaults to FIXTURES_BUCKET)")
	fixturesPushCmd.Flags().StringVar(&prefix, "prefix", "fixtures", "Key prefix inside the bucket")
	fixturesPullCmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (defaults to FIXTURES_BUCKET)")
	fixturesPullCmd.Flags().StringVar(&prefix, "prefix", "fixtures", "Key prefix inside the bucket")
	fixturesCmd.AddCommand(fixturesExportCmd, fixturesImportCmd, fixturesPushCmd, fixturesPullCmd)

	rootCmd.AddCommand(migrateCmd, fixturesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func stepsArg(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps < 0 {
		return 0, fmt.Errorf("steps must be a non-negative integer, got %q", args[0])
	}
	return steps, nil
}

func runMigrations(ctx context.Context, steps int) error {
	opts, err := database.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	if !opts.IsPostgres() {
		return fmt.Errorf("SQL migrations target postgres; DB_TYPE=%s is migrated automatically at startup", opts.Type)
	}
	if err := database.MigrateStep(ctx, opts.DSN, steps); err != nil {
		return err
	}
	log.Info().Int("steps", steps).Msg("Migrations applied")
	return nil
}

func openDatabase() (*gorm.DB, error) {
	opts, err := database.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(opts)
	if err != nil {
		return nil, err
	}
	if !opts.IsPostgres() {
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func bucketName() string {
	if bucket != "" {
		return bucket
	}
	return config.GetString(cfg, "FIXTURES_BUCKET", "")
}

func printResults(cmd *cobra.Command, verb string, results []fixtures.Result) {
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-20s %d records\n", verb, r.File, r.Records)
	}
}
