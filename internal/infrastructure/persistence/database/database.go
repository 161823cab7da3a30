// Package database provides the core functionality for creating and managing
// the component store's database connection.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/pkg/config"
)

const (
	DriverSQLite = "sqlite3"
	DriverLibSQL = "libsql"
)

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
	Driver string
}

// Options selects the backing store. A non-empty TursoURL wins over
// SQLitePath.
type Options struct {
	SQLitePath string
	TursoURL   string
	TursoToken string
}

// OptionsFromConfig reads the connection settings from pkg/config.
func OptionsFromConfig() Options {
	return Options{
		SQLitePath: config.SQLitePath,
		TursoURL:   config.TursoDatabaseURL,
		TursoToken: config.TursoAuthToken,
	}
}

// DSN returns the driver name and data source for opts.
func (o Options) DSN() (string, string) {
	if o.TursoURL != "" {
		dsn := o.TursoURL
		if o.TursoToken != "" {
			dsn += "?authToken=" + o.TursoToken
		}
		return DriverLibSQL, dsn
	}
	return DriverSQLite, o.SQLitePath
}

// NewConnection opens and pings the database described by opts.
func NewConnection(opts Options, logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()
	driverName, dsn := opts.DSN()
	logger.Database().Debug("Creating new database connection", "driverName", driverName)

	if driverName == DriverSQLite && opts.SQLitePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(opts.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		logger.Database().Error("Failed to open database connection", "error", err.Error(), "driverName", driverName)
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		logger.Database().Error("Database ping failed", "error", err.Error(), "driverName", driverName)
		return nil, fmt.Errorf("%s database ping failed: %w", driverName, err)
	}

	if driverName == DriverSQLite && opts.SQLitePath == ":memory:" {
		// every pooled connection would get its own empty in-memory database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(config.DBMaxOpenConns)
		db.SetMaxIdleConns(config.DBMaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
		db.SetConnMaxIdleTime(time.Duration(config.DBConnMaxIdleMinutes) * time.Minute)
	}

	duration := time.Since(start)
	logger.Database().Info("Database connection established", "driverName", driverName, "duration", duration)
	if duration > config.SlowQueryThreshold {
		logger.LogSlowQuery("DATABASE_CONNECTION", duration)
	}

	return &DB{DB: db, Driver: driverName}, nil
}

// Describe returns a short human-readable description of the connection.
func (db *DB) Describe() string {
	if db.Driver == DriverLibSQL {
		return "Turso (libsql)"
	}
	return "SQLite"
}
