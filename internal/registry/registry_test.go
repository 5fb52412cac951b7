package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manateeit/taxtools/internal/model"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	accounts := r.Accounts()
	require.Len(t, accounts, 5)

	seen := make(map[string]bool)
	for i, a := range accounts {
		assert.False(t, seen[a.CanonicalID], "duplicate canonical id %s", a.CanonicalID)
		seen[a.CanonicalID] = true
		if i > 0 {
			assert.LessOrEqual(t, accounts[i-1].CompanyName, a.CompanyName)
		}
	}

	ref, ok := r.Lookup("000000954291944")
	require.True(t, ok)
	assert.Equal(t, "IT DevOps LLC", ref.CompanyName)
	assert.Equal(t, "1944", ref.LastFour())
}

func TestNewRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []model.AccountReference
	}{
		{
			name:    "empty table",
			entries: nil,
		},
		{
			name: "duplicate canonical id",
			entries: []model.AccountReference{
				{CanonicalID: "000000954291944", CompanyName: "A"},
				{CanonicalID: "000000954291944", CompanyName: "B"},
			},
		},
		{
			name: "non-digit canonical id",
			entries: []model.AccountReference{
				{CanonicalID: "ABC123", CompanyName: "A"},
			},
		},
		{
			name: "missing company name",
			entries: []model.AccountReference{
				{CanonicalID: "000000954291944"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeExactMatch(t *testing.T) {
	r := Default()

	tests := []struct {
		name        string
		raw         string
		hint        string
		wantPresent bool
		wantID      string
	}{
		{
			name:        "exact canonical id",
			raw:         "000000954291944",
			wantPresent: true,
			wantID:      "000000954291944",
		},
		{
			name:        "whitespace and separators stripped",
			raw:         " 0000 0095-4291 944 ",
			wantPresent: true,
			wantID:      "000000954291944",
		},
		{
			name:        "valley bank eleven digit id",
			raw:         "00085695149",
			wantPresent: true,
			wantID:      "00085695149",
		},
		{
			name: "partial match rejected",
			raw:  "954291944",
		},
		{
			name: "unknown id rejected",
			raw:  "000000954291945",
		},
		{
			name: "near miss is not fuzzy matched",
			raw:  "000000954291943",
		},
		{
			name: "empty raw",
			raw:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Normalize(tt.raw, tt.hint)
			require.Equal(t, tt.wantPresent, got.Present)
			if tt.wantPresent {
				assert.Equal(t, tt.wantID, got.Value.CanonicalID)
			}
		})
	}
}

func TestNormalizeMasked(t *testing.T) {
	r := Default()

	tests := []struct {
		name        string
		raw         string
		hint        string
		wantPresent bool
		wantID      string
	}{
		{
			name:        "masked with unique company hint",
			raw:         "XXXX1944",
			hint:        "IT DevOps LLC",
			wantPresent: true,
			wantID:      "000000954291944",
		},
		{
			name:        "company hint matched case-insensitively",
			raw:         "XXXX1944",
			hint:        "Statement for it devops llc January",
			wantPresent: true,
			wantID:      "000000954291944",
		},
		{
			name:        "masked with separator noise",
			raw:         "XXXX-1944",
			hint:        "IT DevOps LLC",
			wantPresent: true,
			wantID:      "000000954291944",
		},
		{
			name: "masked without hint",
			raw:  "XXXX1944",
		},
		{
			name: "masked with hint matching no company",
			raw:  "XXXX1944",
			hint: "Unknown Holdings Inc",
		},
		{
			name: "visible suffix contradicts hinted account",
			raw:  "XXXX9999",
			hint: "IT DevOps LLC",
		},
		{
			name: "short x run is not a mask",
			raw:  "XX1944",
			hint: "IT DevOps LLC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Normalize(tt.raw, tt.hint)
			require.Equal(t, tt.wantPresent, got.Present)
			if tt.wantPresent {
				assert.Equal(t, tt.wantID, got.Value.CanonicalID)
			}
		})
	}
}

func TestNormalizeMaskedAmbiguousHint(t *testing.T) {
	r, err := New([]model.AccountReference{
		{CanonicalID: "000000000011111", CompanyName: "Acme LLC", BankName: "Chase", DigitLength: 12},
		{CanonicalID: "000000000022222", CompanyName: "Acme LLC East", BankName: "Chase", DigitLength: 12},
	})
	require.NoError(t, err)

	// The hint contains both company names as substrings, so resolution is
	// ambiguous and must come back absent.
	got := r.Normalize("XXXXXX", "Acme LLC East division")
	assert.False(t, got.Present)

	// Visible trailing digits cannot rescue an ambiguous hint: even though
	// only one candidate ends in 1111, two companies still match the hint.
	got = r.Normalize("XXXX11111", "Acme LLC East division")
	assert.False(t, got.Present)
}

func TestLoadRegistryFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.yaml")

	yaml := `accounts:
  - canonical_id: "000000111122223"
    company_name: Test Co LLC
    bank_name: Chase
    digit_length: 12
  - canonical_id: "00012345678"
    company_name: Other Co Inc
    bank_name: Valley National Bank
    digit_length: 11
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	r, err := Load(path)
	require.NoError(t, err)

	ref, ok := r.Lookup("000000111122223")
	require.True(t, ok)
	assert.Equal(t, "Test Co LLC", ref.CompanyName)
	assert.Equal(t, 12, ref.DigitLength)
	assert.Len(t, r.Accounts(), 2)
}

func TestLoadRegistryFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("no accounts", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("accounts: []\n"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid entry", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("accounts:\n  - canonical_id: abc\n    company_name: X\n"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
