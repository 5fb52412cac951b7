package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manateeit/taxtools/internal/engine"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file.txt> [file.txt...]",
		Short: "Extract statement records from text files",
		Long: `Extract runs the engine over one or more pre-extracted statement text
files and prints the success or error payload for each. The source PDF name
is derived from the text file name. Exits nonzero if any document failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().Bool("pretty", false, "indent the JSON output")
	cmd.Flags().String("output-dir", "", "write each payload to <name>.json in this directory instead of stdout")
	_ = viper.BindPFlag("output.pretty", cmd.Flags().Lookup("pretty"))

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	eng, _, err := buildEngine()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir != "" {
		if mkErr := os.MkdirAll(outputDir, 0o750); mkErr != nil {
			return fmt.Errorf("failed to create output directory: %w", mkErr)
		}
	}
	pretty := viper.GetBool("output.pretty")

	failures := 0
	for _, path := range args {
		text, readErr := readStatementText(path)
		if readErr != nil {
			return readErr
		}

		resp := eng.ProcessContext(cmd.Context(), text, sourceFilename(path))
		if !resp.OK() {
			failures++
		}

		data, encErr := engine.Encode(resp, pretty)
		if encErr != nil {
			return encErr
		}

		if outputDir == "" {
			cmd.Println(string(data))
			continue
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".json"
		outPath := filepath.Join(outputDir, name)
		if writeErr := os.WriteFile(outPath, append(data, '\n'), 0o600); writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, writeErr)
		}
		cmd.Printf("wrote %s\n", outPath)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d documents failed extraction", failures, len(args))
	}
	return nil
}
