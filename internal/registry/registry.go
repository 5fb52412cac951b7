// Package registry holds the canonical account table and the normalization
// rules that resolve raw or masked account numbers against it. The table is
// immutable once built and shared freely across concurrent pipelines.
package registry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/manateeit/taxtools/internal/extract"
	"github.com/manateeit/taxtools/internal/model"
)

// Registry is a read-only lookup table of known accounts.
type Registry struct {
	byID    map[string]model.AccountReference
	entries []model.AccountReference
}

// New builds a registry from the given references. Canonical IDs must be
// unique, all digits, and at least four digits long.
func New(entries []model.AccountReference) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("registry requires at least one account reference")
	}

	byID := make(map[string]model.AccountReference, len(entries))
	for _, e := range entries {
		if len(e.CanonicalID) < 4 || !allDigits(e.CanonicalID) {
			return nil, fmt.Errorf("invalid canonical id %q", e.CanonicalID)
		}
		if e.CompanyName == "" {
			return nil, fmt.Errorf("account %s has no company name", e.CanonicalID)
		}
		if _, dup := byID[e.CanonicalID]; dup {
			return nil, fmt.Errorf("duplicate canonical id %q", e.CanonicalID)
		}
		byID[e.CanonicalID] = e
	}

	refs := make([]model.AccountReference, len(entries))
	copy(refs, entries)

	return &Registry{byID: byID, entries: refs}, nil
}

// Default returns the built-in five-account table.
func Default() *Registry {
	r, err := New([]model.AccountReference{
		{CanonicalID: "000000228239080", CompanyName: "Atlas Property Group LLC", BankName: "Chase", DigitLength: 12},
		{CanonicalID: "000000954291944", CompanyName: "IT DevOps LLC", BankName: "Chase", DigitLength: 12},
		{CanonicalID: "000000333721212", CompanyName: "Harborview Media LLC", BankName: "Chase", DigitLength: 12},
		{CanonicalID: "00085695149", CompanyName: "Lakeside Dental PC", BankName: "Valley National Bank", DigitLength: 11},
		{CanonicalID: "000000880865188", CompanyName: "Summit Trade Partners LLC", BankName: "Chase", DigitLength: 12},
	})
	if err != nil {
		panic(fmt.Sprintf("default registry invalid: %v", err))
	}
	return r
}

// Accounts returns the registry entries ordered by company name.
func (r *Registry) Accounts() []model.AccountReference {
	out := make([]model.AccountReference, len(r.entries))
	copy(out, r.entries)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompanyName < out[j].CompanyName
	})
	return out
}

// Lookup returns the reference for an exact canonical ID.
func (r *Registry) Lookup(canonicalID string) (model.AccountReference, bool) {
	ref, ok := r.byID[canonicalID]
	return ref, ok
}

var maskRun = regexp.MustCompile(`[Xx]{4,}`)

// Normalize resolves a raw account token to a registry entry. Whitespace and
// separator noise are stripped first. A masked token (a run of four or more
// X characters) resolves through the company hint: each registered company
// name is tested as a case-insensitive substring of the hint, and exactly
// one match is required. An unmasked token must equal a canonical ID
// exactly; there is no partial or fuzzy matching.
func (r *Registry) Normalize(raw string, companyHint string) extract.Field[model.AccountReference] {
	cleaned := stripNoise(raw)
	if cleaned == "" {
		return extract.Absent[model.AccountReference]()
	}

	if maskRun.MatchString(cleaned) {
		return r.resolveMasked(cleaned, companyHint, raw)
	}

	if ref, ok := r.byID[cleaned]; ok {
		return extract.Present(ref, raw)
	}
	return extract.Absent[model.AccountReference]()
}

func (r *Registry) resolveMasked(cleaned, companyHint, raw string) extract.Field[model.AccountReference] {
	hint := strings.ToLower(strings.TrimSpace(companyHint))
	if hint == "" {
		return extract.Absent[model.AccountReference]()
	}

	// Hint matching alone decides uniqueness: an ambiguous hint stays
	// ambiguous even when visible digits could narrow it down.
	var matched []model.AccountReference
	for _, e := range r.entries {
		if strings.Contains(hint, strings.ToLower(e.CompanyName)) {
			matched = append(matched, e)
		}
	}
	if len(matched) != 1 {
		return extract.Absent[model.AccountReference]()
	}

	// Digits still visible after the mask can only veto the single match,
	// never create one.
	if suffix := visibleSuffix(cleaned); suffix != "" && !strings.HasSuffix(matched[0].CanonicalID, suffix) {
		return extract.Absent[model.AccountReference]()
	}
	return extract.Present(matched[0], raw)
}

// stripNoise keeps only digits and letters so tokens like "XXXX-1944" and
// "0000 0095 4291 944" normalize before matching.
func stripNoise(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// visibleSuffix returns the trailing digits after the last masked character.
func visibleSuffix(cleaned string) string {
	last := strings.LastIndexAny(cleaned, "Xx")
	if last < 0 {
		return ""
	}
	suffix := cleaned[last+1:]
	if !allDigits(suffix) {
		return ""
	}
	return suffix
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
