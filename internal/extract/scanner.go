package extract

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/manateeit/taxtools/internal/model"
)

// Candidates holds everything the scanner could recognize in one document.
// Every field is a candidate only: the scanner never decides whether an
// absence is fatal, the validator does.
type Candidates struct {
	AccountRaw       Field[string]
	CompanyHint      Field[string]
	StatementDate    Field[model.Date]
	PeriodStart      Field[model.Date]
	PeriodEnd        Field[model.Date]
	BeginningBalance Field[model.Amount]
	EndingBalance    Field[model.Amount]
	TotalFees        Field[model.Amount]
	ImportantNotes   string
	Deposits         []Transaction
	Withdrawals      []Transaction
}

// Transaction is one candidate deposit or withdrawal row. Date and Amount
// carry their own presence flags; Description is already sanitized and may
// be empty for malformed rows.
type Transaction struct {
	Description string
	Date        Field[model.Date]
	Amount      Field[model.Amount]
}

// Labeled-line patterns. Statements from different banks label the same
// fields differently, so each pattern accepts the variants seen in real
// Chase and Valley statements.
var (
	accountLine = regexp.MustCompile(`(?i)account\s*(?:number|no\.?|#)?\s*[:\s]\s*([0-9Xx*][0-9Xx*\- ]{3,})`)
	companyLine = regexp.MustCompile(`(?i)^([A-Za-z0-9&.,' ]+\b(?:LLC|L\.L\.C\.|Inc\.?|Corp\.?|Co\.?|PC|LLP)\b[A-Za-z0-9&.,' ]*)$`)
	stmtDate    = regexp.MustCompile(`(?i)statement\s+date\s*[:\s]\s*(\d{2}/\d{2}/\d{4})`)
	periodRange = regexp.MustCompile(`(?i)(?:statement\s+)?period\s*[:\s]\s*(\d{2}/\d{2}/\d{4})\s*(?:-|–|to|through)\s*(\d{2}/\d{2}/\d{4})`)
	beginBal    = regexp.MustCompile(`(?i)beginning\s+balance\s*[:\s]\s*(-?\$?[\d,]+(?:\.\d{1,2})?)`)
	endBal      = regexp.MustCompile(`(?i)ending\s+balance\s*[:\s]\s*(-?\$?[\d,]+(?:\.\d{1,2})?)`)
	// Anchored to line start so a transaction row mentioning fees cannot
	// supply the statement total.
	feesLine  = regexp.MustCompile(`(?i)^\s*(?:total\s+)?(?:service\s+)?fees?(?:\s+charged)?\s*[:\s]\s*(-?\$?[\d,]+(?:\.\d{1,2})?)`)
	notesLine = regexp.MustCompile(`(?i)important\s+(?:account\s+)?(?:notes?|information)\s*[:\s]\s*(.+)`)

	// Transaction rows: "MM/DD description amount" with an optional year on
	// the date. Trailing-amount anchoring keeps amounts inside descriptions
	// from being picked up.
	txnLine = regexp.MustCompile(`^\s*(\d{2}/\d{2}(?:/\d{4})?)\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`)

	depositHeading    = regexp.MustCompile(`(?i)^\s*(?:deposits?(?:\s+and\s+(?:other\s+)?(?:credits|additions))?|electronic\s+deposits|credits)\s*$`)
	withdrawalHeading = regexp.MustCompile(`(?i)^\s*(?:withdrawals?(?:\s+and\s+(?:other\s+)?(?:debits|subtractions))?|electronic\s+payments|checks?\s+paid|debits)\s*$`)
	totalsLine        = regexp.MustCompile(`(?i)^\s*(?:sub)?total\b`)
)

type section int

const (
	sectionNone section = iota
	sectionDeposits
	sectionWithdrawals
)

// Scan walks the raw statement text once, collecting labeled header fields
// and section-based transaction rows. Dates written as MM/DD inherit the
// statement year when one is known.
func Scan(text string) Candidates {
	var c Candidates
	c.Deposits = []Transaction{}
	c.Withdrawals = []Transaction{}

	current := sectionNone
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	// Header fields first: transaction dates without a year need the
	// statement year before rows are parsed.
	for _, line := range lines {
		scanHeaderLine(&c, line)
	}

	year := 0
	if c.StatementDate.Present {
		year = c.StatementDate.Value.Year()
	} else if c.PeriodEnd.Present {
		year = c.PeriodEnd.Value.Year()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case depositHeading.MatchString(trimmed):
			current = sectionDeposits
			continue
		case withdrawalHeading.MatchString(trimmed):
			current = sectionWithdrawals
			continue
		case totalsLine.MatchString(trimmed):
			current = sectionNone
			continue
		}

		if current == sectionNone {
			continue
		}

		txn, ok := parseTransactionLine(line, year)
		if !ok {
			// Continuation and noise lines inside a section are skipped;
			// only dated rows count as transactions.
			continue
		}

		switch current {
		case sectionDeposits:
			c.Deposits = append(c.Deposits, txn)
		case sectionWithdrawals:
			c.Withdrawals = append(c.Withdrawals, txn)
		}
	}

	return c
}

func scanHeaderLine(c *Candidates, line string) {
	if !c.AccountRaw.Present {
		if m := accountLine.FindStringSubmatch(line); m != nil {
			c.AccountRaw = Present(strings.TrimSpace(m[1]), m[0])
		}
	}
	if !c.CompanyHint.Present {
		if m := companyLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			c.CompanyHint = Present(strings.TrimSpace(m[1]), m[0])
		}
	}
	if !c.StatementDate.Present {
		if m := stmtDate.FindStringSubmatch(line); m != nil {
			c.StatementDate = Date(m[1])
		}
	}
	if !c.PeriodStart.Present {
		if m := periodRange.FindStringSubmatch(line); m != nil {
			c.PeriodStart = Date(m[1])
			c.PeriodEnd = Date(m[2])
		}
	}
	if !c.BeginningBalance.Present {
		if m := beginBal.FindStringSubmatch(line); m != nil {
			c.BeginningBalance = Amount(m[1])
		}
	}
	if !c.EndingBalance.Present {
		if m := endBal.FindStringSubmatch(line); m != nil {
			c.EndingBalance = Amount(m[1])
		}
	}
	if !c.TotalFees.Present {
		if m := feesLine.FindStringSubmatch(line); m != nil {
			c.TotalFees = Amount(m[1])
		}
	}
	if c.ImportantNotes == "" {
		if m := notesLine.FindStringSubmatch(line); m != nil {
			c.ImportantNotes = FreeText(m[1])
		}
	}
}

func parseTransactionLine(line string, statementYear int) (Transaction, bool) {
	m := txnLine.FindStringSubmatch(line)
	if m == nil {
		return Transaction{}, false
	}

	dateToken := m[1]
	if len(dateToken) == 5 && statementYear > 0 {
		dateToken = fmt.Sprintf("%s/%04d", dateToken, statementYear)
	}

	return Transaction{
		Date:        Date(dateToken),
		Description: FreeText(m[2]),
		Amount:      Amount(m[3]),
	}, true
}
