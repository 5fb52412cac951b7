package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/manateeit/taxtools/internal/common"
	"github.com/manateeit/taxtools/internal/config"
	"github.com/manateeit/taxtools/internal/engine"
	"github.com/manateeit/taxtools/internal/registry"
)

// buildEngine assembles the registry and engine from the active config.
func buildEngine() (*engine.Engine, *registry.Registry, error) {
	reg, err := buildRegistry()
	if err != nil {
		return nil, nil, err
	}

	var opts []engine.Option
	if viper.GetBool("engine.strict_transactions") {
		opts = append(opts, engine.WithStrictTransactions())
	}

	eng, err := engine.New(reg, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build engine: %w", err)
	}
	return eng, reg, nil
}

func buildRegistry() (*registry.Registry, error) {
	path := viper.GetString("engine.registry_path")
	if path == "" {
		return registry.Default(), nil
	}

	reg, err := registry.Load(config.ExpandPath(path))
	if err != nil {
		return nil, common.NewUserError("failed to load account registry", err)
	}
	return reg, nil
}

// sourceFilename maps a text-file path to the PDF name the statement came
// from: the base name with the extension swapped for .pdf.
func sourceFilename(textPath string) string {
	base := filepath.Base(textPath)
	ext := filepath.Ext(base)
	if ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".pdf"
}

// readStatementText loads one pre-extracted statement text file.
func readStatementText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
