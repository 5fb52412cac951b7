// Package service defines the contracts between the CLI and its
// collaborators, so commands can be tested against fakes.
package service

import (
	"context"

	"github.com/manateeit/taxtools/internal/model"
	"github.com/manateeit/taxtools/internal/storage"
)

// StatementStore is the downstream consumer of accepted records: it persists
// validated statements and answers duplicate and listing queries.
type StatementStore interface {
	StatementExists(ctx context.Context, filename string) (bool, error)
	InsertStatement(ctx context.Context, record model.StatementRecord, rawJSON []byte, runID string) (int64, error)
	ListStatements(ctx context.Context) ([]storage.StoredStatement, error)
	Close() error
}
