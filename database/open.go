package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/suresh-yadav/portfolio-backend/config"
	"github.com/suresh-yadav/portfolio-backend/errs"
	"github.com/suresh-yadav/portfolio-backend/models"
)

const (
	TypeSupabase = "supa"
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

type Options struct {
	Type        string
	DSN         string
	ReplicaDSNs []string
	LogLevel    logger.LogLevel
}

// OptionsFromConfig builds connection options from DB_TYPE and the matching keys.
func OptionsFromConfig(c map[string]string) (Options, error) {
	opts := Options{
		Type:        config.GetString(c, "DB_TYPE", ""),
		ReplicaDSNs: config.GetList(c, "DB_REPLICA_DSNS"),
		LogLevel:    logger.Warn,
	}

	switch opts.Type {
	case TypeSupabase:
		opts.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
	case TypePostgres:
		opts.DSN = config.GetString(c, "DATABASE_URL", "")
		if opts.DSN == "" {
			return opts, errs.NewEnvironmentVariableError("DATABASE_URL")
		}
	case TypeSQLite:
		opts.DSN = config.GetString(c, "SQLITE_PATH", "portfolio.db")
	default:
		return opts, errs.NewEnvironmentVariableError("DB_TYPE")
	}
	return opts, nil
}

// IsPostgres reports whether opts points at a postgres server (plain or Supabase).
func (o Options) IsPostgres() bool {
	return o.Type == TypePostgres || o.Type == TypeSupabase
}

// Open connects to the configured store and checks the connection. Reads are spread over
// the replicas when any are configured.
func Open(opts Options) (*gorm.DB, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var dialector gorm.Dialector
	switch {
	case opts.IsPostgres():
		dialector = postgresDialector(opts.DSN)
	case opts.Type == TypeSQLite:
		dialector = sqliteDialector(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database type %q", opts.Type)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", opts.Type, err)
	}

	if opts.Type == TypeSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite serialises writers; one connection also keeps :memory: databases alive
		sqlDB.SetMaxOpenConns(1)
	}

	if len(opts.ReplicaDSNs) > 0 && opts.IsPostgres() {
		replicas := make([]gorm.Dialector, 0, len(opts.ReplicaDSNs))
		for _, dsn := range opts.ReplicaDSNs {
			replicas = append(replicas, postgresDialector(dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the tables for every model. Postgres deployments use the
// SQL migrations instead; this serves sqlite and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.AllModels()...)
}

func postgresDialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

func sqliteDSN(path string) string {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}
