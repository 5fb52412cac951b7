// Package validate enforces the record schema: required fields, formats,
// closed enumerations, and cross-field invariants. It turns a bag of
// extraction candidates into either a complete statement record or exactly
// one typed error, never both.
package validate

import (
	"fmt"
	"log/slog"

	"github.com/manateeit/taxtools/internal/extract"
	"github.com/manateeit/taxtools/internal/model"
)

// Classifier assigns a tax category to a withdrawal description.
type Classifier interface {
	Classify(description string) model.TaxCategory
}

// Input is everything the validator needs for one document. Filename is
// already reduced and checked at the engine boundary; Account is the
// registry's resolution of the raw account candidate.
type Input struct {
	Filename   string
	Candidates extract.Candidates
	Account    extract.Field[model.AccountReference]
}

// DefaultOrder is the standard short-circuit order: the first violated rule
// decides the error code when several conditions fail at once.
func DefaultOrder() []model.ErrorCode {
	return []model.ErrorCode{
		model.ErrCodeInvalidAccount,
		model.ErrCodeMissingStatementDate,
		model.ErrCodeMissingBalance,
		model.ErrCodeMissingPeriodDates,
	}
}

// Validator runs the ordered rule list over one document's candidates.
type Validator struct {
	classifier Classifier
	order      []model.ErrorCode
	strict     bool
}

// Option adjusts validator behavior.
type Option func(*Validator)

// WithOrder overrides the rule evaluation order. The order must be a
// permutation of DefaultOrder; PARSE_ERROR is the residual code and cannot
// be reordered.
func WithOrder(order ...model.ErrorCode) Option {
	return func(v *Validator) {
		v.order = order
	}
}

// WithStrictTransactions makes a malformed transaction row void the whole
// statement with PARSE_ERROR. The default is to skip the row and keep the
// statement.
func WithStrictTransactions() Option {
	return func(v *Validator) {
		v.strict = true
	}
}

// New builds a validator around the given classifier.
func New(classifier Classifier, opts ...Option) (*Validator, error) {
	if classifier == nil {
		return nil, fmt.Errorf("validator requires a classifier")
	}

	v := &Validator{
		classifier: classifier,
		order:      DefaultOrder(),
	}
	for _, opt := range opts {
		opt(v)
	}

	if err := checkOrder(v.order); err != nil {
		return nil, err
	}
	return v, nil
}

func checkOrder(order []model.ErrorCode) error {
	want := DefaultOrder()
	if len(order) != len(want) {
		return fmt.Errorf("validation order must list all %d field rules, got %d", len(want), len(order))
	}
	seen := make(map[model.ErrorCode]bool, len(order))
	for _, code := range order {
		switch code {
		case model.ErrCodeInvalidAccount, model.ErrCodeMissingStatementDate,
			model.ErrCodeMissingBalance, model.ErrCodeMissingPeriodDates:
		default:
			return fmt.Errorf("code %s cannot appear in the validation order", code)
		}
		if seen[code] {
			return fmt.Errorf("duplicate code %s in validation order", code)
		}
		seen[code] = true
	}
	return nil
}

// Validate applies the rule list to one document. Exactly one of the two
// return values is non-nil.
func (v *Validator) Validate(in Input) (*model.StatementRecord, *model.ErrorRecord) {
	for _, code := range v.order {
		if errRec := v.checkRule(code, in); errRec != nil {
			return nil, errRec
		}
	}

	deposits, withdrawals, errRec := v.buildTransactions(in.Candidates)
	if errRec != nil {
		return nil, errRec
	}

	rec := &model.StatementRecord{
		StatementFilename: in.Filename,
		AccountNumber:     in.Account.Value.CanonicalID,
		StatementDate:     in.Candidates.StatementDate.Value,
		PeriodStart:       in.Candidates.PeriodStart.Value,
		PeriodEnd:         in.Candidates.PeriodEnd.Value,
		BeginningBalance:  in.Candidates.BeginningBalance.Value,
		EndingBalance:     in.Candidates.EndingBalance.Value,
		TotalFees:         in.Candidates.TotalFees.Or(model.ZeroAmount()),
		ImportantNotes:    extract.FreeText(in.Candidates.ImportantNotes),
		Deposits:          deposits,
		Withdrawals:       withdrawals,
	}
	return rec, nil
}

func (v *Validator) checkRule(code model.ErrorCode, in Input) *model.ErrorRecord {
	c := in.Candidates

	switch code {
	case model.ErrCodeInvalidAccount:
		if !in.Account.Present {
			return &model.ErrorRecord{
				Code:    model.ErrCodeInvalidAccount,
				Message: "account number missing or not found in the account registry",
			}
		}

	case model.ErrCodeMissingStatementDate:
		if !c.StatementDate.Present {
			return &model.ErrorRecord{
				Code:    model.ErrCodeMissingStatementDate,
				Message: "statement date missing or not a valid MM/DD/YYYY date",
			}
		}

	case model.ErrCodeMissingBalance:
		if !c.BeginningBalance.Present || !c.EndingBalance.Present {
			return &model.ErrorRecord{
				Code:    model.ErrCodeMissingBalance,
				Message: "beginning or ending balance missing or not a valid amount",
			}
		}

	case model.ErrCodeMissingPeriodDates:
		if !c.PeriodStart.Present || !c.PeriodEnd.Present {
			return &model.ErrorRecord{
				Code:    model.ErrCodeMissingPeriodDates,
				Message: "statement period start or end missing or invalid",
			}
		}
		if c.PeriodEnd.Value.Before(c.PeriodStart.Value) {
			return &model.ErrorRecord{
				Code:    model.ErrCodeMissingPeriodDates,
				Message: "statement period ends before it starts",
			}
		}
		// Containment is only checkable once a statement date exists; with a
		// reordered rule list that may not have been verified yet.
		if c.StatementDate.Present {
			d := c.StatementDate.Value
			if d.Before(c.PeriodStart.Value) || d.After(c.PeriodEnd.Value) {
				return &model.ErrorRecord{
					Code:    model.ErrCodeMissingPeriodDates,
					Message: "statement date falls outside the statement period",
				}
			}
		}
	}

	return nil
}

// buildTransactions converts candidate rows into final deposits and
// withdrawals, preserving order. A malformed row (missing date or amount, or
// an empty description after sanitization) is skipped by default; in strict
// mode it voids the statement with PARSE_ERROR.
func (v *Validator) buildTransactions(c extract.Candidates) ([]model.Deposit, []model.Withdrawal, *model.ErrorRecord) {
	deposits := make([]model.Deposit, 0, len(c.Deposits))
	for i, txn := range c.Deposits {
		if reason := malformed(txn); reason != "" {
			if v.strict {
				return nil, nil, &model.ErrorRecord{
					Code:    model.ErrCodeParse,
					Message: fmt.Sprintf("deposit %d is malformed: %s", i+1, reason),
				}
			}
			slog.Debug("skipping malformed deposit row",
				"index", i,
				"reason", reason)
			continue
		}
		deposits = append(deposits, model.Deposit{
			Date:        txn.Date.Value,
			Description: txn.Description,
			Amount:      txn.Amount.Value,
		})
	}

	withdrawals := make([]model.Withdrawal, 0, len(c.Withdrawals))
	for i, txn := range c.Withdrawals {
		if reason := malformed(txn); reason != "" {
			if v.strict {
				return nil, nil, &model.ErrorRecord{
					Code:    model.ErrCodeParse,
					Message: fmt.Sprintf("withdrawal %d is malformed: %s", i+1, reason),
				}
			}
			slog.Debug("skipping malformed withdrawal row",
				"index", i,
				"reason", reason)
			continue
		}

		category := v.classifier.Classify(txn.Description)
		if !category.Valid() {
			return nil, nil, &model.ErrorRecord{
				Code:    model.ErrCodeParse,
				Message: fmt.Sprintf("withdrawal %d classified outside the fixed category set: %q", i+1, category),
			}
		}

		withdrawals = append(withdrawals, model.Withdrawal{
			Date:        txn.Date.Value,
			Description: txn.Description,
			Amount:      txn.Amount.Value,
			TaxCategory: category,
		})
	}

	return deposits, withdrawals, nil
}

func malformed(txn extract.Transaction) string {
	switch {
	case !txn.Date.Present:
		return "missing or invalid date"
	case txn.Description == "":
		return "empty description"
	case !txn.Amount.Present:
		return "missing or invalid amount"
	}
	return ""
}
