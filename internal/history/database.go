// Package history keeps save-time snapshots of the command file in a
// local database, so an accidental save can be rolled back. Postgres is
// supported for shared setups, with SQLite as the default and fallback.
package history

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manager handles the history database connection.
type Manager struct {
	DB      *gorm.DB
	IsValid bool
	Logger  zerolog.Logger
}

// NewManager creates a new history database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{Logger: log}
}

// Connect opens the configured database. When Postgres is configured but
// unreachable, it falls back to the local SQLite file so revisions are
// never silently lost.
func (m *Manager) Connect() error {
	var err error

	switch viper.GetString("history.db.type") {
	case "postgres":
		m.DB, err = openPostgres()
		if err == nil {
			err = ping(m.DB)
		}
		if err != nil {
			m.Logger.Error().Err(err).Msg("postgres unavailable, falling back to sqlite")
			m.DB, err = openSqlite(viper.GetString("history.db.path"))
		}
	default:
		m.DB, err = openSqlite(viper.GetString("history.db.path"))
	}

	if err != nil || m.DB == nil {
		m.IsValid = false
		return fmt.Errorf("failed to open history database: %v", err)
	}

	m.IsValid = true
	m.Logger.Info().Msg("history database connected")
	return nil
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func openPostgres() (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("history.db.host"),
		viper.GetString("history.db.port"),
		viper.GetString("history.db.username"),
		viper.GetString("history.db.password"),
		viper.GetString("history.db.database"),
	)

	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
}

// openSqlite opens a SQLite database at path, or in memory when path is
// empty (tests use this).
func openSqlite(path string) (*gorm.DB, error) {
	if path == "" {
		path = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %s", err)
		}
	}

	return db, nil
}
