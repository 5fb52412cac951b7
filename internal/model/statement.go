// Package model defines the core domain types shared across the extraction
// pipeline: statement records, transactions, amounts, dates, and the
// success/error response envelope.
package model

// StatementRecord is the fully validated result of extracting one bank
// statement. Field order matches the output contract; records are built once
// per document and never mutated afterwards.
type StatementRecord struct {
	StatementFilename string       `json:"statement_filename"`
	AccountNumber     string       `json:"account_number"`
	StatementDate     Date         `json:"statement_date"`
	PeriodStart       Date         `json:"period_start"`
	PeriodEnd         Date         `json:"period_end"`
	BeginningBalance  Amount       `json:"beginning_balance"`
	EndingBalance     Amount       `json:"ending_balance"`
	TotalFees         Amount       `json:"total_fees"`
	ImportantNotes    string       `json:"important_notes"`
	Deposits          []Deposit    `json:"deposits"`
	Withdrawals       []Withdrawal `json:"withdrawals"`
}

// Deposit is a single credit entry on a statement.
type Deposit struct {
	Date        Date   `json:"date"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
}

// Withdrawal is a single debit entry on a statement. Every withdrawal
// carries a category from the closed tax-category set.
type Withdrawal struct {
	Date        Date        `json:"date"`
	Description string      `json:"description"`
	Amount      Amount      `json:"amount"`
	TaxCategory TaxCategory `json:"tax_category"`
}
