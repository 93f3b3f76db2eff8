// Package sqldb implements storage.Provider's data access over database/sql.
// The sqlite and postgres packages own connection setup and embed a Store.
package sqldb

import (
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/goaltrack/internal/migration"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/storage/migrations"
)

const (
	kindRoutine = "routine"
	kindPlanned = "planned"

	metaLastUpdated = "last_updated"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type Store struct {
	db      *sql.DB
	dialect migration.Dialect
	now     func() time.Time
}

func New(dialect migration.Dialect) *Store {
	return &Store{dialect: dialect, now: time.Now}
}

// Attach sets the connection once the owning backend has opened it.
func (s *Store) Attach(db *sql.DB) {
	s.db = db
}

// DB returns the underlying connection, nil before Attach.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Dialect() migration.Dialect {
	return s.dialect
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, string(s.dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", s.dialect, err)
	}
	return migration.NewRunner(s.db, sub, s.dialect), nil
}

// Migrate applies every pending embedded migration for the dialect.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		return 0, storage.ErrNotLoaded
	}
	r, err := s.runner()
	if err != nil {
		return 0, err
	}
	return r.ApplyMigrations(logFn)
}

// MigrationStatus reports the schema version against the embedded files.
func (s *Store) MigrationStatus() (migration.Status, error) {
	if s.db == nil {
		return migration.Status{}, storage.ErrNotLoaded
	}
	r, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return r.Status()
}

// ValidateSchema fails when the database was migrated by a newer build.
func (s *Store) ValidateSchema() error {
	r, err := s.runner()
	if err != nil {
		return err
	}
	return r.ValidateVersion()
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != migration.DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(e execer, query string, args ...any) error {
	_, err := e.Exec(s.rebind(query), args...)
	return err
}

// withTx runs fn in a transaction, rolling back on error.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) touch(e execer, at time.Time) error {
	return s.exec(e, `INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		metaLastUpdated, at.UTC().Format(time.RFC3339Nano))
}

// LastUpdated returns the time of the most recent write, zero if none.
func (s *Store) LastUpdated() (time.Time, error) {
	if s.db == nil {
		return time.Time{}, storage.ErrNotLoaded
	}
	var value string
	err := s.db.QueryRow(s.rebind("SELECT value FROM meta WHERE key = ?"), metaLastUpdated).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read last update time: %w", err)
	}
	return time.Parse(time.RFC3339Nano, value)
}
