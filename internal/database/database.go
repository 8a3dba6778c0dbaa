package database

import (
	"fmt"
	"trivia-api/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver ("pgx")
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver ("sqlite3")
	_ "github.com/sijms/go-ora/v2"  // Oracle driver ("oracle")
)

// DriverName maps the configured driver to the database/sql driver name.
func DriverName(driver string) string {
	switch driver {
	case config.DriverPostgres:
		return "pgx"
	default:
		return driver
	}
}

// NewSQLXDB opens and pings a connection pool for the configured driver.
func NewSQLXDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverName(cfg.DB.Driver), cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DB.Driver, err)
	}

	if cfg.DB.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.Driver == config.DriverSQLite {
		// one writer at a time, the file is locked otherwise
		db.SetMaxOpenConns(1)
	}

	return db, nil
}
