package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/atstracker/ats-tracking/internal/config"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultSqliteFile = "ats-tracking.db3"
	sqliteDriverName  = "sqlite3_ats"
)

var registerSqliteDriver sync.Once

// sqliteDriver registers a sqlite3 driver whose lower() folds all of Unicode
// like postgres does, instead of ASCII only.
func sqliteDriver() string {
	registerSqliteDriver.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", strings.ToLower, true)
			},
		})
	})
	return sqliteDriverName
}

// InitDB opens the database configured in cfg. The sqlite file gets its
// table created on open; the postgres schema is left to InitialMigration.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dia gorm.Dialector

	switch cfg.Database.Type {
	case config.PostgresType:
		dsn := fmt.Sprintf("host=%s user=%s password=%s port=%s",
			cfg.Database.Hostname,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Port,
		)
		if cfg.Database.Name != "" {
			dsn = fmt.Sprintf("%s dbname=%s", dsn, cfg.Database.Name)
		}
		dia = postgres.Open(dsn)
	case config.SqliteType:
		dia = sqlite.New(sqlite.Config{
			DriverName: sqliteDriver(),
			DSN:        SqlitePath(cfg.Database.Path),
		})
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Database.Type)
	}

	newLogger := logger.New(
		logrus.New(),
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true,        // Don't include params in the SQL log
			Colorful:                  false,       // Disable color
		},
	)

	newDB, err := gorm.Open(dia, &gorm.Config{Logger: newLogger})
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to connect database: %v", err)
		return nil, err
	}

	if cfg.Database.Type == config.PostgresType {
		var version string
		if result := newDB.Raw("SELECT version()").Scan(&version); result.Error != nil {
			zap.S().Named("gorm").Infoln(result.Error.Error())
			return nil, result.Error
		}

		zap.S().Named("gorm").Debugf("PostgreSQL information: '%s'", version)
		return newDB, nil
	}

	if err := newDB.Exec(sqliteTableDefinition).Error; err != nil {
		return nil, fmt.Errorf("creating job_applications table: %w", err)
	}

	return newDB, nil
}

// SqlitePath returns path, or ats-tracking.db3 in the user's home directory
// when path is empty. Without a home directory the working directory is used.
func SqlitePath(path string) string {
	if path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		zap.S().Named("gorm").Warnf("unable to find home directory, using current directory for %s", defaultSqliteFile)
		home = "."
	}
	return filepath.Join(home, defaultSqliteFile)
}
