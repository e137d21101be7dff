// Package storage provides SQLite persistence for cubie sessions and their
// move logs.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/SeamusWaldron/cubie/internal/config"
)

// DB wraps the SQLite database connection.
type DB struct {
	*sql.DB
	path string
	log  *logrus.Entry
}

const dbFileName = "cubie.db"

// DefaultDBPath returns cubie.db inside the cubie config directory. Open
// creates the directory.
func DefaultDBPath() (string, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

// Open opens (or creates) the SQLite database at the given path.
func Open(dbPath string) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(5000)")

	db, err := sql.Open("sqlite", "file:"+dbPath+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &DB{DB: db, path: dbPath, log: logger.WithField("component", "storage")}, nil
}

// SetLogger routes storage debug output to l.
func (db *DB) SetLogger(l *logrus.Logger) {
	if l != nil {
		db.log = l.WithFields(logrus.Fields{"component": "storage", "db": db.path})
	}
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// MigrateUp applies all pending migrations.
func (db *DB) MigrateUp() error {
	from, err := db.CurrentVersion()
	if err != nil {
		return err
	}
	if err := applyMigrations(db.DB); err != nil {
		return err
	}
	to, err := db.CurrentVersion()
	if err != nil {
		return err
	}
	if to != from {
		db.log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("migrated schema")
	}
	return nil
}

// CurrentVersion returns the current schema version.
func (db *DB) CurrentVersion() (int, error) {
	return schemaVersion(db.DB)
}

// Transaction runs fn inside a transaction. The transaction commits only if
// fn returns nil; an error or a panic in fn rolls it back.
func (db *DB) Transaction(fn func(*sql.Tx) error) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		rbErr := tx.Rollback()
		if p := recover(); p != nil {
			panic(p)
		}
		if rbErr != nil {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
