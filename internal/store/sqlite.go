package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLite implements Store on a local SQLite database. The table and column
// names match the hosted store's collections so a dump from one loads into
// the other unchanged.
type SQLite struct {
	db   *sql.DB
	path string
}

const dateFormat = "2006-01-02"

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path cannot be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// SQLite does not benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging store: %w", err)
	}

	s := &SQLite{db: db, path: path}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// No foreign keys here on purpose: the hosted store enforces none, and the
// referencing rules live in the ledger service.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS bancos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nome TEXT NOT NULL,
		conta TEXT NOT NULL DEFAULT '',
		saldo TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS receitas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		descricao TEXT NOT NULL,
		valor TEXT NOT NULL,
		categoria TEXT NOT NULL,
		data TEXT NOT NULL,
		observacoes TEXT NOT NULL DEFAULT '',
		banco_id INTEGER NOT NULL,
		parcelamento TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS despesas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		descricao TEXT NOT NULL,
		valor TEXT NOT NULL,
		categoria TEXT NOT NULL,
		data TEXT NOT NULL,
		observacoes TEXT NOT NULL DEFAULT '',
		banco_id INTEGER NOT NULL,
		parcelamento TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS objetivos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		titulo TEXT NOT NULL,
		meta_valor TEXT NOT NULL,
		valor_atual TEXT NOT NULL,
		data_limite TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS metas (
		id INTEGER PRIMARY KEY,
		diaria TEXT NOT NULL,
		semanal TEXT NOT NULL,
		mensal TEXT NOT NULL
	)`,
}

func (s *SQLite) ensureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// patchUpdate runs an UPDATE built from column=value assignments against one
// row and maps "no rows changed" to ErrNotFound.
func (s *SQLite) patchUpdate(ctx context.Context, table string, id int64, sets []string, args []any) error {
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating %s: %w", table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s update: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s id %d: %w", table, id, ErrNotFound)
	}
	return nil
}

// deleteByID deletes one row and maps "no rows changed" to ErrNotFound.
func (s *SQLite) deleteByID(ctx context.Context, table string, id int64) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s delete: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s id %d: %w", table, id, ErrNotFound)
	}
	return nil
}
