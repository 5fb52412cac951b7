package registry

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/manateeit/taxtools/internal/model"
)

// fileEntry mirrors one account stanza in a registry YAML file.
type fileEntry struct {
	CanonicalID string `mapstructure:"canonical_id"`
	CompanyName string `mapstructure:"company_name"`
	BankName    string `mapstructure:"bank_name"`
	DigitLength int    `mapstructure:"digit_length"`
}

// Load reads an alternate registry from a YAML file so deployments and tests
// can substitute the built-in table. The file holds a top-level `accounts`
// list; entries are validated the same way as the defaults.
func Load(path string) (*Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}

	var raw []fileEntry
	if err := v.UnmarshalKey("accounts", &raw); err != nil {
		return nil, fmt.Errorf("failed to parse registry file %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("registry file %s defines no accounts", path)
	}

	entries := make([]model.AccountReference, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, model.AccountReference{
			CanonicalID: e.CanonicalID,
			CompanyName: e.CompanyName,
			BankName:    e.BankName,
			DigitLength: e.DigitLength,
		})
	}

	r, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid registry file %s: %w", path, err)
	}
	return r, nil
}
