package model

// AccountReference describes one known account in the registry: the full
// zero-padded identifier as stored, plus the company and bank it belongs to.
// References are immutable once the registry is built.
type AccountReference struct {
	CanonicalID string
	CompanyName string
	BankName    string
	DigitLength int
}

// LastFour returns the final four digits of the canonical identifier, used
// for derived filenames and display.
func (r AccountReference) LastFour() string {
	if len(r.CanonicalID) < 4 {
		return r.CanonicalID
	}
	return r.CanonicalID[len(r.CanonicalID)-4:]
}
