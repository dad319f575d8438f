package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	portssvc "github.com/caravel-trade/caravel-backend/internal/core/ports/services"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
)

// statementPageSize caps each transaction listing page while building a statement.
const statementPageSize = 200

// reportingService builds Excel exports of ledger data.
type reportingService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	accountRepo portsrepo.AccountRepositoryFacade,
	balanceRepo portsrepo.BalanceRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// BuildAccountStatement renders the account's balances and full transaction
// history as an .xlsx workbook with one sheet per concern.
func (s *reportingService) BuildAccountStatement(ctx context.Context, accountID string) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.validateAccountForStatement(ctx, accountID)
	if err != nil {
		return nil, err
	}

	balances, err := s.balanceRepo.ListBalancesByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances for statement: %w", err)
	}

	transactions, err := s.collectTransactions(ctx, accountID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeBalancesSheet(f, account, balances); err != nil {
		return nil, err
	}
	if err := writeTransactionsSheet(f, transactions); err != nil {
		return nil, err
	}
	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to finalize workbook: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	logger.Info("Built account statement", "account_id", accountID, "transactions", len(transactions))
	return buf.Bytes(), nil
}

func (s *reportingService) validateAccountForStatement(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// collectTransactions pages through the account's full history.
func (s *reportingService) collectTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	filter := portsrepo.ListTransactionsFilter{AccountID: &accountID}

	var all []domain.Transaction
	var nextToken *string
	for {
		page, token, err := s.txnRepo.ListTransactions(ctx, filter, statementPageSize, nextToken)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions for statement: %w", err)
		}
		all = append(all, page...)
		if token == nil {
			return all, nil
		}
		nextToken = token
	}
}

func writeBalancesSheet(f *excelize.File, account *domain.Account, balances []domain.Balance) error {
	const sheet = "Balances"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create balances sheet: %w", err)
	}
	f.SetActiveSheet(index)

	f.SetCellValue(sheet, "A1", "Account")
	f.SetCellValue(sheet, "B1", account.Name)

	headers := []string{"Currency", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, header)
	}
	for i, b := range balances {
		row := i + 4
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), b.CurrencyCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), b.Amount.String())
	}
	return nil
}

func writeTransactionsSheet(f *excelize.File, transactions []domain.Transaction) error {
	const sheet = "Transactions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create transactions sheet: %w", err)
	}

	headers := []string{"Date", "Type", "Amount", "Currency", "Commission", "Converted Amount", "Converted Currency", "Description"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, txn := range transactions {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), txn.CreatedAt.Format("2006-01-02 15:04"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(txn.Type))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), txn.Amount.String())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), txn.CurrencyCode)
		if txn.Commission.IsPositive() {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), txn.Commission.String())
		}
		if txn.ConvertedAmount.IsPositive() {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), txn.ConvertedAmount.String())
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), txn.ConvertedCurrencyCode)
		}
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), txn.Description)
	}
	return nil
}
