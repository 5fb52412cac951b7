package model

// TaxCategory classifies a withdrawal for downstream accounting and
// reporting. The set is closed: exactly these seven values are valid.
type TaxCategory string

// The fixed tax categories.
const (
	CategoryDomesticBusiness     TaxCategory = "Domestic Business Expense"
	CategoryInternationalSubs    TaxCategory = "International Subcontractors"
	CategoryTaxPayment           TaxCategory = "Tax Payment"
	CategoryTransfer             TaxCategory = "Transfer"
	CategoryLoanPayment          TaxCategory = "Loan Payment"
	CategoryUtilityPayment       TaxCategory = "Utility Payment"
	CategoryProfessionalServices TaxCategory = "Professional Services"
)

// TaxCategories returns the closed category set in a stable order.
func TaxCategories() []TaxCategory {
	return []TaxCategory{
		CategoryDomesticBusiness,
		CategoryInternationalSubs,
		CategoryTaxPayment,
		CategoryTransfer,
		CategoryLoanPayment,
		CategoryUtilityPayment,
		CategoryProfessionalServices,
	}
}

// Valid reports whether c is one of the seven fixed categories.
func (c TaxCategory) Valid() bool {
	switch c {
	case CategoryDomesticBusiness, CategoryInternationalSubs, CategoryTaxPayment,
		CategoryTransfer, CategoryLoanPayment, CategoryUtilityPayment,
		CategoryProfessionalServices:
		return true
	}
	return false
}
