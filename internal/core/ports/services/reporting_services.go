package services

import "context"

// ReportingSvcFacade builds Excel exports of ledger data.
type ReportingSvcFacade interface {
	// BuildAccountStatement renders the account's balances and transaction
	// history as an .xlsx workbook.
	BuildAccountStatement(ctx context.Context, accountID string) ([]byte, error)
}
