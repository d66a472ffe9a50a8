package database

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hms-system/internal/models"

	"github.com/m-mizutani/goerr/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("not found")

// connection retry policy; the database container often comes up after us
var (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
)

// Store wraps the gorm handle together with the queries the app needs.
type Store struct {
	DB  *gorm.DB
	log *slog.Logger
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	}
	return nil, goerr.New("unsupported database driver", goerr.V("driver", driver))
}

// Open connects (retrying while the server is not reachable) and runs
// migrations.
func Open(driver, dsn string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	dial, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	cfg := &gorm.Config{
		Logger: gormlogger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	var db *gorm.DB
	for i := 1; i <= connectAttempts; i++ {
		log.Info("connecting to database", "driver", driver, "attempt", i, "max_attempts", connectAttempts)

		db, err = gorm.Open(dial, cfg)
		if err == nil {
			log.Info("connected to database")
			break
		}

		log.Warn("failed to connect to database", "error", err)
		if i < connectAttempts {
			time.Sleep(connectDelay)
		}
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to database",
			goerr.V("driver", driver), goerr.V("attempts", connectAttempts))
	}

	s := NewStore(db, log)
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func NewStore(db *gorm.DB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{DB: db, log: log}
}

func (s *Store) Migrate() error {
	err := s.DB.AutoMigrate(
		&models.RiskAssessment{},
		&models.Incident{},
		&models.AuditLog{},
	)
	if err != nil {
		return goerr.Wrap(err, "failed to migrate")
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return goerr.Wrap(err, "failed to get sql.DB")
	}
	return sqlDB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return goerr.Wrap(err, "failed to get sql.DB")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return goerr.Wrap(err, "database ping failed")
	}
	return nil
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return goerr.Wrap(ErrNotFound, entity+" not found", goerr.V("id", id))
	}
	return goerr.Wrap(err, "failed to load "+entity, goerr.V("id", id))
}
