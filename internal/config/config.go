// Package config provides configuration loading and path utilities.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults registers every configuration key with its default value. Keys
// may be overridden by the config file, TAXTOOLS_ environment variables, or
// bound command-line flags, in ascending precedence.
func Defaults(v *viper.Viper) {
	v.SetDefault("database.path", "~/.local/share/taxtools/taxtools.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("engine.strict_transactions", false)
	v.SetDefault("engine.registry_path", "")
	v.SetDefault("output.pretty", false)
}

// LoadDotenv loads a .env file from the working directory when one exists.
// Variables already set in the environment win.
func LoadDotenv() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat .env: %w", err)
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// DatabasePath returns the configured statement database path, expanded.
func DatabasePath(v *viper.Viper) string {
	return ExpandPath(v.GetString("database.path"))
}

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
