// Package classify maps withdrawal descriptions to tax categories through an
// ordered keyword rule list. Rule order encodes business priority: the first
// matching rule wins, so "PayPal Loan Payment" is International
// Subcontractors, not Loan Payment.
package classify

import (
	"strings"

	"github.com/manateeit/taxtools/internal/model"
)

// Rule pairs a tax category with the keywords that select it. Keywords are
// tested as case-insensitive substrings of the sanitized description.
type Rule struct {
	Category model.TaxCategory
	Keywords []string
}

// defaultRules is the fixed priority list. Earlier rules beat later ones.
var defaultRules = []Rule{
	{Category: model.CategoryInternationalSubs, Keywords: []string{"paypal", "international"}},
	{Category: model.CategoryTaxPayment, Keywords: []string{"irs", "tax"}},
	{Category: model.CategoryLoanPayment, Keywords: []string{"loan"}},
	{Category: model.CategoryUtilityPayment, Keywords: []string{"utility", "electric", "water", "gas bill"}},
	{Category: model.CategoryTransfer, Keywords: []string{"transfer"}},
	{Category: model.CategoryProfessionalServices, Keywords: []string{"consulting", "legal", "accounting"}},
}

// Classifier assigns a category to every description. It is stateless and
// safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// New returns a classifier using the default priority rules.
func New() *Classifier {
	return &Classifier{rules: defaultRules}
}

// Rules returns the ordered rule list for inspection and display. The
// fallthrough category is not listed; it applies when nothing matches.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the tax category for a withdrawal description. The result
// is always one of the seven fixed categories; descriptions matching no rule
// fall through to Domestic Business Expense.
func (c *Classifier) Classify(description string) model.TaxCategory {
	desc := strings.ToLower(description)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return rule.Category
			}
		}
	}
	return model.CategoryDomesticBusiness
}
