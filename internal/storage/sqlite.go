// Package storage persists accepted statement records into SQLite. It is a
// downstream consumer of the engine's output: only validated records are
// written, and duplicates are detected by source filename before processing.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manateeit/taxtools/internal/registry"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Storage errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrDuplicateStatement = errors.New("statement already stored")
	ErrUnknownAccount     = errors.New("account not present in the registry table")
)

// Store is a SQLite-backed statement store.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Tables are created on open; the store owns no migration tooling. Amounts
// are stored as their exact two-decimal strings, dates as MM/DD/YYYY.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS account_references (
		account_number TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		bank_name TEXT NOT NULL,
		digit_length INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS banking_statements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_number TEXT NOT NULL REFERENCES account_references(account_number),
		filename TEXT UNIQUE NOT NULL,
		canonical_filename TEXT NOT NULL,
		statement_date TEXT NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		beginning_balance TEXT NOT NULL,
		ending_balance TEXT NOT NULL,
		total_fees TEXT NOT NULL,
		important_notes TEXT NOT NULL DEFAULT '',
		raw_data TEXT NOT NULL,
		run_id TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_statements_account ON banking_statements(account_number)`,
	`CREATE TABLE IF NOT EXISTS deposits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		banking_statement_id INTEGER NOT NULL REFERENCES banking_statements(id),
		transaction_date TEXT NOT NULL,
		description TEXT NOT NULL,
		amount TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS withdrawals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		banking_statement_id INTEGER NOT NULL REFERENCES banking_statements(id),
		transaction_date TEXT NOT NULL,
		description TEXT NOT NULL,
		amount TEXT NOT NULL,
		tax_category TEXT NOT NULL
	)`,
}

// New opens (creating if needed) the statement database at dbPath and seeds
// the account_references table from the registry.
func New(dbPath string, reg *registry.Registry) (*Store, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("store requires an account registry")
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite gains nothing from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.seedAccounts(reg); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (s *Store) seedAccounts(reg *registry.Registry) error {
	for _, ref := range reg.Accounts() {
		_, err := s.db.Exec(
			`INSERT INTO account_references (account_number, company_name, bank_name, digit_length)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(account_number) DO UPDATE SET
			 	company_name = excluded.company_name,
			 	bank_name = excluded.bank_name,
			 	digit_length = excluded.digit_length`,
			ref.CanonicalID, ref.CompanyName, ref.BankName, ref.DigitLength)
		if err != nil {
			return fmt.Errorf("failed to seed account %s: %w", ref.CanonicalID, err)
		}
	}
	return nil
}

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}
