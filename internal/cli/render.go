package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/manateeit/taxtools/internal/model"
	"github.com/manateeit/taxtools/internal/storage"
)

// Result statuses for per-file batch reporting.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Result is the outcome of processing one file.
type Result struct {
	Filename string
	Status   string
	Message  string
}

// RenderResult formats one per-file result line.
func RenderResult(r Result) string {
	switch r.Status {
	case StatusSuccess:
		return fmt.Sprintf("%s %s", SuccessStyle.Render("✓"), r.Filename)
	case StatusSkipped:
		return fmt.Sprintf("%s %s %s", WarningStyle.Render("-"), r.Filename, SubtleStyle.Render(r.Message))
	default:
		return fmt.Sprintf("%s %s %s", ErrorStyle.Render("✗"), r.Filename, ErrorStyle.Render(r.Message))
	}
}

// RenderSummary formats the closing batch summary box.
func RenderSummary(results []Result) string {
	var succeeded, failed, skipped int
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			succeeded++
		case StatusSkipped:
			skipped++
		default:
			failed++
		}
	}

	lines := []string{
		fmt.Sprintf("Processed: %d", len(results)),
		SuccessStyle.Render(fmt.Sprintf("Succeeded: %d", succeeded)),
		ErrorStyle.Render(fmt.Sprintf("Failed:    %d", failed)),
	}
	if skipped > 0 {
		lines = append(lines, WarningStyle.Render(fmt.Sprintf("Skipped:   %d", skipped)))
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

// RenderAccounts formats the registry as a table.
func RenderAccounts(accounts []model.AccountReference) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "COMPANY\tBANK\tACCOUNT NUMBER\tDIGITS")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", a.CompanyName, a.BankName, a.CanonicalID, a.DigitLength)
	}
	_ = w.Flush()
	return b.String()
}

// RenderStatements formats stored statements as a table, newest first.
func RenderStatements(statements []storage.StoredStatement) string {
	if len(statements) == 0 {
		return SubtleStyle.Render("No statements stored.") + "\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tFILENAME\tCANONICAL\tCOMPANY\tSTATEMENT DATE\tDEPOSITS\tWITHDRAWALS")
	for _, s := range statements {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\n",
			s.ID, s.Filename, s.CanonicalName, s.CompanyName,
			s.StatementDate, s.DepositCount, s.WithdrawalCount)
	}
	_ = w.Flush()
	return b.String()
}
