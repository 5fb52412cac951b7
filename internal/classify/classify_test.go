package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manateeit/taxtools/internal/model"
)

func TestClassify(t *testing.T) {
	c := New()

	tests := []struct {
		name        string
		description string
		want        model.TaxCategory
	}{
		{
			name:        "paypal",
			description: "PAYPAL INST XFER",
			want:        model.CategoryInternationalSubs,
		},
		{
			name:        "irs payment",
			description: "IRS USATAXPYMT",
			want:        model.CategoryTaxPayment,
		},
		{
			name:        "state tax",
			description: "NY State Tax Payment",
			want:        model.CategoryTaxPayment,
		},
		{
			name:        "loan",
			description: "SBA Loan Repayment",
			want:        model.CategoryLoanPayment,
		},
		{
			name:        "electric utility",
			description: "City Electric Autopay",
			want:        model.CategoryUtilityPayment,
		},
		{
			name:        "gas bill",
			description: "Monthly gas bill",
			want:        model.CategoryUtilityPayment,
		},
		{
			name:        "international wire",
			description: "Online International Wire Transfer",
			want:        model.CategoryInternationalSubs,
		},
		{
			name:        "transfer",
			description: "Online Wire Transfer",
			want:        model.CategoryTransfer,
		},
		{
			name:        "consulting",
			description: "Acme Consulting Retainer",
			want:        model.CategoryProfessionalServices,
		},
		{
			name:        "legal",
			description: "Smith Legal Services",
			want:        model.CategoryProfessionalServices,
		},
		{
			name:        "accounting",
			description: "Quarterly Accounting Fee",
			want:        model.CategoryProfessionalServices,
		},
		{
			name:        "default",
			description: "Office Supplies Store 42",
			want:        model.CategoryDomesticBusiness,
		},
		{
			name:        "empty description falls through",
			description: "",
			want:        model.CategoryDomesticBusiness,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.description))
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	c := New()

	// Keywords from several rules in one description: earliest rule wins.
	assert.Equal(t, model.CategoryInternationalSubs, c.Classify("PayPal Loan Payment"))
	assert.Equal(t, model.CategoryInternationalSubs, c.Classify("PayPal loan transfer"))
	assert.Equal(t, model.CategoryInternationalSubs, c.Classify("International wire transfer"))
	assert.Equal(t, model.CategoryTaxPayment, c.Classify("Tax loan transfer"))
	assert.Equal(t, model.CategoryLoanPayment, c.Classify("Loan transfer"))
}

func TestClassifyAlwaysReturnsClosedSetValue(t *testing.T) {
	c := New()

	for _, desc := range []string{"", "zzz", "PayPal", "weird ~!@# input", "IRS"} {
		got := c.Classify(desc)
		assert.True(t, got.Valid(), "category %q outside the closed set", got)
	}
}

func TestRulesAreInspectable(t *testing.T) {
	c := New()
	rules := c.Rules()

	assert.Len(t, rules, 6)
	assert.Equal(t, model.CategoryInternationalSubs, rules[0].Category)
	assert.Equal(t, model.CategoryProfessionalServices, rules[len(rules)-1].Category)

	// Mutating the returned slice must not affect the classifier.
	rules[0] = Rule{Category: model.CategoryTransfer, Keywords: []string{"paypal"}}
	assert.Equal(t, model.CategoryInternationalSubs, c.Classify("paypal"))
}
