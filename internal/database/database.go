// Package database opens the Postgres connection and applies schema
// migrations on startup.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// Connect opens the database, verifies connectivity and runs pending
// migrations from the migrations directory.
func Connect(dbConn, migrationsPath string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbConn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(50)
	db.SetConnMaxLifetime(time.Hour)

	if err := runMigrations(dbConn, migrationsPath); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// runMigrations expects dbConn in postgres:// URL form, which both lib/pq
// and golang-migrate accept.
func runMigrations(dbConn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dbConn)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
