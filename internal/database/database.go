package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"portfolio/internal/config"
	"portfolio/internal/contacts"
	"portfolio/internal/education"
	"portfolio/internal/experiences"
	"portfolio/internal/homestats"
	"portfolio/internal/profiles"
	"portfolio/internal/projects"
	"portfolio/internal/skills"
	"portfolio/internal/users"
)

var _ cartridge.DBManager = (*DBManager)(nil)

// DBManager owns the application's database connection. SQLite goes through
// cartridge's sqlite.Manager; Postgres is opened directly with gorm.
type DBManager struct {
	cfg      *config.Config
	sqlite   *sqlite.Manager
	postgres *gorm.DB
	logger   *slog.Logger
}

// NewDBManager creates a new database manager for the configured database type.
func NewDBManager(cfg *config.Config, logger *slog.Logger) *DBManager {
	dm := &DBManager{cfg: cfg, logger: logger}

	if cfg.DatabaseType == config.SQLiteDatabase {
		dm.sqlite = sqlite.NewManager(sqlite.Config{
			Path:         cfg.GetDatabasePath(),
			MaxOpenConns: cfg.GetMaxOpenConns(),
			MaxIdleConns: cfg.GetMaxIdleConns(),
			Logger:       logger,
			EnableWAL:    true,
			TxImmediate:  true,
			BusyTimeout:  5000,
		})
	}

	return dm
}

// Init initializes the database connection.
func (dm *DBManager) Init() error {
	if dm.sqlite != nil {
		_, err := dm.sqlite.Connect()
		return err
	}

	db, err := gorm.Open(postgres.Open(dm.cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(dm.cfg.GetMaxOpenConns())
	sqlDB.SetMaxIdleConns(dm.cfg.GetMaxIdleConns())
	sqlDB.SetConnMaxLifetime(time.Hour)

	dm.postgres = db
	dm.logger.Info("Connected to postgres")
	return nil
}

// GetConnection returns the active gorm connection, or nil before Init.
func (dm *DBManager) GetConnection() *gorm.DB {
	if dm.sqlite != nil {
		return dm.sqlite.GetConnection()
	}
	return dm.postgres
}

// Connect returns the connection, opening it first when Init has not run.
func (dm *DBManager) Connect() (*gorm.DB, error) {
	if db := dm.GetConnection(); db != nil {
		return db, nil
	}
	if err := dm.Init(); err != nil {
		return nil, err
	}
	return dm.GetConnection(), nil
}

// IsSQLite reports whether the manager is backed by SQLite.
func (dm *DBManager) IsSQLite() bool {
	return dm.sqlite != nil
}

// AllModels returns every persisted model, in migration order.
func AllModels() []any {
	return []any{
		&users.User{},
		&profiles.Profile{},
		&homestats.HomeStats{},
		&projects.Project{},
		&skills.Skill{},
		&experiences.Experience{},
		&education.Education{},
		&contacts.Contact{},
	}
}

// MigrateDatabase creates or updates every table.
func (dm *DBManager) MigrateDatabase() error {
	db := dm.GetConnection()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.AutoMigrate(AllModels()...)
	})
	if err != nil {
		dm.logger.Error("Failed to auto-migrate database", slog.Any("error", err))
		return err
	}

	if dm.sqlite != nil {
		if err := dm.sqlite.CheckpointWAL("FULL"); err != nil {
			dm.logger.Warn("Failed to checkpoint WAL after migration", slog.Any("error", err))
		}
	}

	dm.logger.Info("Database migration completed successfully")
	return nil
}

// Close releases the underlying connection pool.
func (dm *DBManager) Close() error {
	db := dm.GetConnection()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
