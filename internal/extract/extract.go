package extract

import (
	"regexp"
	"strings"

	"github.com/manateeit/taxtools/internal/model"
)

var (
	freeTextStrip  = regexp.MustCompile(`[^a-zA-Z0-9\s]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	amountShape    = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// Date recognizes a strict MM/DD/YYYY token. Out-of-range values like
// 13/01/2023 or 02/30/2023 come back absent, never clamped to a nearby
// valid date.
func Date(token string) Field[model.Date] {
	token = strings.TrimSpace(token)
	d, err := model.ParseDate(token)
	if err != nil {
		return Absent[model.Date]()
	}
	return Present(d, token)
}

// Amount recognizes a non-negative monetary token. Currency symbols,
// thousands separators, and surrounding whitespace are stripped before
// parsing; up to two fractional digits are preserved exactly. Negative or
// unparsable tokens are absent, never coerced to zero.
func Amount(token string) Field[model.Amount] {
	raw := token
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, "$")
	token = strings.ReplaceAll(token, ",", "")
	token = strings.TrimSpace(token)

	// A leading sign is a rejection, not a parse target: "-42.00" must not
	// survive as 42.00.
	if !amountShape.MatchString(token) {
		return Absent[model.Amount]()
	}

	a, err := model.NewAmount(token)
	if err != nil {
		return Absent[model.Amount]()
	}
	return Present(a, raw)
}

// FreeText sanitizes descriptions and notes down to alphanumerics and
// single spaces. Everything else collapses; the result may be empty, and
// callers decide whether empty is acceptable for the field at hand.
func FreeText(s string) string {
	s = freeTextStrip.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
