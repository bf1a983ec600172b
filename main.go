package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	api "github.com/suresh-yadav/portfolio-backend/api"
	"github.com/suresh-yadav/portfolio-backend/config"
	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/models"
	"github.com/suresh-yadav/portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx := context.Background()
	c, err := config.WithSSM(ctx, config.New())
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	config.ConfigureLogging(c)

	opts, err := database.OptionsFromConfig(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid database configuration")
	}
	log.Info().Str("dbType", opts.Type).Int("replicas", len(opts.ReplicaDSNs)).Msg("Connecting to database")

	db, err := database.Open(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db, "./query"); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		if err := models.GenerateColumnMismatchReport(db, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		return
	}

	if err := migrateSchema(ctx, c, opts, db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating schema")
	}

	// buffered so the listener can still report ErrServerClosed after shutdown
	errChannel := make(chan error, 2)

	server, err := api.NewServer(database.New(db), c, newNotifier(c))
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// migrateSchema brings the schema up to date: SQL migrations on postgres, AutoMigrate on
// sqlite. MIGRATE_ON_STARTUP=false leaves postgres untouched.
func migrateSchema(ctx context.Context, c map[string]string, opts database.Options, db *gorm.DB) error {
	if !opts.IsPostgres() {
		return database.AutoMigrate(db)
	}
	if !config.GetBool(c, "MIGRATE_ON_STARTUP", true) {
		return nil
	}
	return database.MigrateStep(ctx, opts.DSN, 0)
}

// newNotifier collects every configured notification channel. Email is the primary
// channel and SMS is added when Twilio is configured.
func newNotifier(c map[string]string) services.Notifier {
	notifier := services.NewMultiNotifier()

	mailer, err := services.NewResendMailer(c)
	if err != nil {
		log.Warn().Err(err).Msg("Email notifications disabled")
	} else {
		notifier.Add("email", mailer)
	}

	if sms := services.NewTwilioNotifierFromConfig(c); sms != nil {
		notifier.Add("sms", sms)
	}

	log.Info().Strs("channels", notifier.Channels()).Msg("Contact notifications configured")
	return notifier
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
