package services

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/obsbank/obs_backend/internal/core/domain"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
)

// statementService renders plain-text account statements and transaction
// receipts. It never mutates accounts or ledger entries.
type statementService struct{}

// NewStatementService creates a new StatementService.
func NewStatementService() portssvc.StatementRenderer {
	return &statementService{}
}

var _ portssvc.StatementRenderer = (*statementService)(nil)

const statementTimeLayout = "2006-01-02 15:04:05"

// RenderStatement writes a printable statement for the account: a header with
// the account details, then one line per ledger entry, newest data as given.
func (s *statementService) RenderStatement(_ context.Context, account domain.Account, entries []domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "ACCOUNT STATEMENT\n")
	fmt.Fprintf(&buf, "Account Number: %s\n", account.AccountNumber)
	fmt.Fprintf(&buf, "Account Type:   %s\n", account.AccountType)
	fmt.Fprintf(&buf, "Holder:         %s\n", account.OwnerUsername)
	fmt.Fprintf(&buf, "Balance:        %s\n\n", account.Balance.StringFixed(2))

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TXN ID\tDATE\tTYPE\tSTATUS\tAMOUNT\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.DisplayID(),
			e.Timestamp.Format(statementTimeLayout),
			e.Type,
			e.Status,
			e.Amount.StringFixed(2),
			e.Description)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to render statement: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderReceipt writes a printable receipt for one ledger entry.
func (s *statementService) RenderReceipt(_ context.Context, entry domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "TRANSACTION RECEIPT\n")
	fmt.Fprintf(&buf, "Transaction ID: %s\n", entry.DisplayID())
	fmt.Fprintf(&buf, "Account:        %s\n", entry.AccountNumber)
	if entry.TargetAccountNumber != "" {
		fmt.Fprintf(&buf, "Counterparty:   %s\n", entry.TargetAccountNumber)
	}
	fmt.Fprintf(&buf, "Type:           %s\n", entry.Type)
	fmt.Fprintf(&buf, "Status:         %s\n", entry.Status)
	fmt.Fprintf(&buf, "Amount:         %s\n", entry.Amount.StringFixed(2))
	fmt.Fprintf(&buf, "Date:           %s\n", entry.Timestamp.Format(statementTimeLayout))
	fmt.Fprintf(&buf, "Description:    %s\n", entry.Description)

	return buf.Bytes(), nil
}
