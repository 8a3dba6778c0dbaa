package database

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"trivia-api/internal/config"
	"trivia-api/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator applies the embedded schema for one driver.
type Migrator struct {
	db     *sqlx.DB
	driver string
}

// NewMigrator creates a Migrator for an open connection.
func NewMigrator(db *sqlx.DB, driver string) *Migrator {
	return &Migrator{db: db, driver: driver}
}

// Up applies every pending migration.
func (m *Migrator) Up() error {
	if m.driver == config.DriverOracle {
		return m.runOracle(".up.sql", false)
	}
	mg, err := m.newMigrate()
	if err != nil {
		return err
	}
	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	logger.Get().Info("Migrations completed successfully", zap.String("driver", m.driver))
	return nil
}

// Down rolls back every applied migration.
func (m *Migrator) Down() error {
	if m.driver == config.DriverOracle {
		return m.runOracle(".down.sql", true)
	}
	mg, err := m.newMigrate()
	if err != nil {
		return err
	}
	if err := mg.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not roll back migrations: %w", err)
	}
	logger.Get().Info("Rollback completed successfully", zap.String("driver", m.driver))
	return nil
}

// Version reports the current schema version.
func (m *Migrator) Version() (uint, bool, error) {
	if m.driver == config.DriverOracle {
		return 0, false, fmt.Errorf("version tracking is not available for %s", m.driver)
	}
	mg, err := m.newMigrate()
	if err != nil {
		return 0, false, err
	}
	return mg.Version()
}

func (m *Migrator) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, path.Join("migrations", m.driver))
	if err != nil {
		return nil, fmt.Errorf("could not open migrations for %s: %w", m.driver, err)
	}

	var target migratedb.Driver
	switch m.driver {
	case config.DriverPostgres:
		target, err = pgxmigrate.WithInstance(m.db.DB, &pgxmigrate.Config{})
	case config.DriverSQLite:
		target, err = sqlitemigrate.WithInstance(m.db.DB, &sqlitemigrate.Config{})
	default:
		return nil, fmt.Errorf("unsupported migration driver: %s", m.driver)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create migration driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, m.driver, target)
}

// runOracle executes the embedded files one statement at a time; go-ora
// rejects multi-statement execs.
func (m *Migrator) runOracle(suffix string, reverse bool) error {
	dir := path.Join("migrations", config.DriverOracle)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), suffix) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}

	for _, name := range files {
		content, err := fs.ReadFile(migrationsFS, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		for _, stmt := range splitStatements(string(content)) {
			if _, err := m.db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", name, err)
			}
		}
		logger.Get().Info("Executed migration", zap.String("file", name))
	}
	return nil
}

func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
