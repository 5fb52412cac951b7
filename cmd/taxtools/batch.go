package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/manateeit/taxtools/internal/cli"
	"github.com/manateeit/taxtools/internal/config"
	"github.com/manateeit/taxtools/internal/engine"
	"github.com/manateeit/taxtools/internal/model"
	"github.com/manateeit/taxtools/internal/service"
	"github.com/manateeit/taxtools/internal/storage"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Process every statement text file under a directory",
		Long: `Batch walks a directory tree, runs the engine over every .txt file in
parallel, and prints a per-file result list with a closing summary. With
--store, accepted records are persisted; statements already stored are
skipped by filename.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().Int("workers", 4, "number of documents processed in parallel")
	cmd.Flags().Bool("store", false, "persist accepted records to the statement database")
	cmd.Flags().Duration("timeout", 0, "per-document timeout (0 disables)")

	return cmd
}

type batchOutcome struct {
	response model.Response
	result   cli.Result
	source   string
	payload  []byte
}

func runBatch(cmd *cobra.Command, args []string) error {
	eng, reg, err := buildEngine()
	if err != nil {
		return err
	}

	files, err := findStatementFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .txt files found under %s", args[0])
	}

	workers, _ := cmd.Flags().GetInt("workers")
	if workers < 1 {
		workers = 1
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	var store service.StatementStore
	if persist, _ := cmd.Flags().GetBool("store"); persist {
		s, storeErr := storage.New(config.DatabasePath(viper.GetViper()), reg)
		if storeErr != nil {
			return fmt.Errorf("failed to open statement database: %w", storeErr)
		}
		defer func() { _ = s.Close() }()
		store = s
	}

	runID := uuid.NewString()
	slog.Info("starting batch run",
		"run_id", runID,
		"files", len(files),
		"workers", workers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("extracting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish())

	outcomes := make([]batchOutcome, len(files))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			outcomes[i] = processOne(ctx, eng, path, timeout)
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	_ = bar.Finish()

	results := make([]cli.Result, 0, len(files))
	for i := range outcomes {
		out := &outcomes[i]
		if store != nil && out.result.Status == cli.StatusSuccess {
			persistOutcome(cmd.Context(), store, out, runID)
		}
		results = append(results, out.result)
		cmd.Println(cli.RenderResult(out.result))
	}

	cmd.Println(cli.RenderSummary(results))

	failed := 0
	for _, r := range results {
		if r.Status == cli.StatusError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed extraction", failed, len(files))
	}
	return nil
}

func processOne(ctx context.Context, eng *engine.Engine, path string, timeout time.Duration) batchOutcome {
	out := batchOutcome{
		source: sourceFilename(path),
		result: cli.Result{Filename: filepath.Base(path)},
	}

	text, err := readStatementText(path)
	if err != nil {
		out.result.Status = cli.StatusError
		out.result.Message = err.Error()
		return out
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out.response = eng.ProcessContext(ctx, text, out.source)

	payload, err := engine.Encode(out.response, false)
	if err != nil {
		out.result.Status = cli.StatusError
		out.result.Message = err.Error()
		return out
	}
	out.payload = payload

	if out.response.OK() {
		out.result.Status = cli.StatusSuccess
	} else {
		out.result.Status = cli.StatusError
		out.result.Message = fmt.Sprintf("%s: %s", out.response.Error.Code, out.response.Error.Message)
	}
	return out
}

func persistOutcome(ctx context.Context, store service.StatementStore, out *batchOutcome, runID string) {
	_, err := store.InsertStatement(ctx, *out.response.Data, out.payload, runID)
	switch {
	case errors.Is(err, storage.ErrDuplicateStatement):
		out.result.Status = cli.StatusSkipped
		out.result.Message = "already stored"
	case err != nil:
		out.result.Status = cli.StatusError
		out.result.Message = fmt.Sprintf("failed to store: %v", err)
	}
}

func findStatementFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".txt" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
