package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/manateeit/taxtools/internal/model"
)

// StoredStatement is one listing row from the banking_statements table.
type StoredStatement struct {
	CreatedAt       time.Time
	Filename        string
	CanonicalName   string
	AccountNumber   string
	CompanyName     string
	StatementDate   string
	RunID           string
	ID              int64
	DepositCount    int
	WithdrawalCount int
}

// StatementExists reports whether a statement with this source filename has
// already been stored. Duplicate detection happens before processing.
func (s *Store) StatementExists(ctx context.Context, filename string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(filename, "filename"); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM banking_statements WHERE filename = ?)`,
		filename).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check statement existence: %w", err)
	}
	return exists, nil
}

// InsertStatement persists one accepted record with its deposits and
// withdrawals in a single transaction and returns the statement row ID.
// rawJSON is the full response payload as emitted; runID ties the row to the
// batch invocation that produced it.
func (s *Store) InsertStatement(ctx context.Context, record model.StatementRecord, rawJSON []byte, runID string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(record.StatementFilename, "record.StatementFilename"); err != nil {
		return 0, err
	}

	exists, err := s.StatementExists(ctx, record.StatementFilename)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateStatement, record.StatementFilename)
	}

	var known bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM account_references WHERE account_number = ?)`,
		record.AccountNumber).Scan(&known)
	if err != nil {
		return 0, fmt.Errorf("failed to check account reference: %w", err)
	}
	if !known {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAccount, record.AccountNumber)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO banking_statements (
			account_number, filename, canonical_filename, statement_date,
			period_start, period_end, beginning_balance, ending_balance,
			total_fees, important_notes, raw_data, run_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.AccountNumber,
		record.StatementFilename,
		CanonicalFilename(record),
		record.StatementDate.String(),
		record.PeriodStart.String(),
		record.PeriodEnd.String(),
		record.BeginningBalance.String(),
		record.EndingBalance.String(),
		record.TotalFees.String(),
		record.ImportantNotes,
		string(rawJSON),
		runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert statement: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read statement id: %w", err)
	}

	for _, d := range record.Deposits {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO deposits (banking_statement_id, transaction_date, description, amount)
			 VALUES (?, ?, ?, ?)`,
			id, d.Date.String(), d.Description, d.Amount.String())
		if err != nil {
			return 0, fmt.Errorf("failed to insert deposit: %w", err)
		}
	}

	for _, w := range record.Withdrawals {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO withdrawals (banking_statement_id, transaction_date, description, amount, tax_category)
			 VALUES (?, ?, ?, ?, ?)`,
			id, w.Date.String(), w.Description, w.Amount.String(), string(w.TaxCategory))
		if err != nil {
			return 0, fmt.Errorf("failed to insert withdrawal: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit statement: %w", err)
	}
	return id, nil
}

// ListStatements returns stored statements, newest first.
func (s *Store) ListStatements(ctx context.Context) ([]StoredStatement, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT bs.id, bs.filename, bs.canonical_filename, bs.account_number,
			ar.company_name, bs.statement_date, bs.run_id, bs.created_at,
			(SELECT COUNT(*) FROM deposits d WHERE d.banking_statement_id = bs.id),
			(SELECT COUNT(*) FROM withdrawals w WHERE w.banking_statement_id = bs.id)
		 FROM banking_statements bs
		 JOIN account_references ar ON ar.account_number = bs.account_number
		 ORDER BY bs.created_at DESC, bs.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []StoredStatement
	for rows.Next() {
		var st StoredStatement
		if err := rows.Scan(
			&st.ID, &st.Filename, &st.CanonicalName, &st.AccountNumber,
			&st.CompanyName, &st.StatementDate, &st.RunID, &st.CreatedAt,
			&st.DepositCount, &st.WithdrawalCount); err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statements: %w", err)
	}
	return out, nil
}

// CanonicalFilename derives the organized name a statement is filed under:
// the account's last four digits plus the statement month and year.
func CanonicalFilename(record model.StatementRecord) string {
	last4 := record.AccountNumber
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	t := record.StatementDate.Time()
	return fmt.Sprintf("%s-%02d-%04d.pdf", last4, int(t.Month()), t.Year())
}
