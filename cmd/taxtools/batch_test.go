package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manateeit/taxtools/internal/cli"
	"github.com/manateeit/taxtools/internal/engine"
	"github.com/manateeit/taxtools/internal/model"
	"github.com/manateeit/taxtools/internal/registry"
	"github.com/manateeit/taxtools/internal/storage"
)

const sampleStatement = `IT DevOps LLC

Account Number: 000000954291944
Statement Date: 01/31/2023
Statement Period: 01/01/2023 - 01/31/2023
Beginning Balance: $4,000.00
Ending Balance: $12,571.27

Withdrawals
01/20 Online International Wire Transfer 1,428.73
`

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(registry.Default())
	require.NoError(t, err)
	return eng
}

func TestProcessOneSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement-jan-2023.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleStatement), 0o600))

	out := processOne(context.Background(), testEngine(t), path, 0)

	assert.Equal(t, cli.StatusSuccess, out.result.Status)
	assert.Equal(t, "statement-jan-2023.txt", out.result.Filename)
	assert.Equal(t, "statement-jan-2023.pdf", out.source)
	require.NotNil(t, out.response.Data)
	assert.Contains(t, string(out.payload), `"status":"success"`)
}

func TestProcessOneExtractionFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.txt")
	require.NoError(t, os.WriteFile(path, []byte("nothing useful here"), 0o600))

	out := processOne(context.Background(), testEngine(t), path, 0)

	assert.Equal(t, cli.StatusError, out.result.Status)
	assert.Contains(t, out.result.Message, "INVALID_ACCOUNT")
}

func TestProcessOneUnreadableFile(t *testing.T) {
	out := processOne(context.Background(), testEngine(t), filepath.Join(t.TempDir(), "missing.txt"), 0)
	assert.Equal(t, cli.StatusError, out.result.Status)
}

type fakeStore struct {
	insertErr error
	inserted  int
}

func (f *fakeStore) StatementExists(_ context.Context, _ string) (bool, error) { return false, nil }
func (f *fakeStore) InsertStatement(_ context.Context, _ model.StatementRecord, _ []byte, _ string) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted++
	return int64(f.inserted), nil
}
func (f *fakeStore) ListStatements(_ context.Context) ([]storage.StoredStatement, error) {
	return nil, nil
}
func (f *fakeStore) Close() error { return nil }

func TestPersistOutcome(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleStatement), 0o600))

	out := processOne(context.Background(), testEngine(t), path, 0)
	require.Equal(t, cli.StatusSuccess, out.result.Status)

	t.Run("stored", func(t *testing.T) {
		outcome := out
		store := &fakeStore{}
		persistOutcome(context.Background(), store, &outcome, "run-1")
		assert.Equal(t, cli.StatusSuccess, outcome.result.Status)
		assert.Equal(t, 1, store.inserted)
	})

	t.Run("duplicate marked skipped", func(t *testing.T) {
		outcome := out
		store := &fakeStore{insertErr: storage.ErrDuplicateStatement}
		persistOutcome(context.Background(), store, &outcome, "run-1")
		assert.Equal(t, cli.StatusSkipped, outcome.result.Status)
	})

	t.Run("store failure marked error", func(t *testing.T) {
		outcome := out
		store := &fakeStore{insertErr: storage.ErrUnknownAccount}
		persistOutcome(context.Background(), store, &outcome, "run-1")
		assert.Equal(t, cli.StatusError, outcome.result.Status)
	})
}

func TestFindStatementFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2023"), 0o750))

	for _, name := range []string{"b.txt", "a.txt", "notes.md", "2023/c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	files, err := findStatementFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	// Sorted, recursive, .txt only.
	assert.Equal(t, filepath.Join(dir, "2023", "c.txt"), files[0])
	assert.Equal(t, filepath.Join(dir, "a.txt"), files[1])
	assert.Equal(t, filepath.Join(dir, "b.txt"), files[2])
}

func TestSourceFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "statement.txt", want: "statement.pdf"},
		{input: "/data/2023/statement-jan.txt", want: "statement-jan.pdf"},
		{input: "noext", want: "noext.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sourceFilename(tt.input))
	}
}
