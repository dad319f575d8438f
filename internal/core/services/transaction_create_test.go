package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/core/ports/gateways"
	portssvc "github.com/caravel-trade/caravel-backend/internal/core/ports/services"
	"github.com/caravel-trade/caravel-backend/internal/core/services"
	"github.com/caravel-trade/caravel-backend/internal/dto"
)

type TransactionCreateTestSuite struct {
	suite.Suite

	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockBalanceRepo  *MockBalanceRepository
	mockCategoryRepo *MockCategoryRepository
	mockBranchRepo   *MockBranchRepository
	mockGateway      *MockVehicleCostGateway
	service          portssvc.TransactionSvcFacade

	userID   string
	accountA domain.Account
	accountB domain.Account
}

func (s *TransactionCreateTestSuite) SetupTest() {
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockBalanceRepo = new(MockBalanceRepository)
	s.mockCategoryRepo = new(MockCategoryRepository)
	s.mockBranchRepo = new(MockBranchRepository)
	s.mockGateway = new(MockVehicleCostGateway)
	s.service = services.NewTransactionService(
		s.mockTxnRepo, s.mockAccountRepo, s.mockBalanceRepo,
		s.mockCategoryRepo, s.mockBranchRepo, s.mockGateway,
	)

	s.userID = uuid.NewString()
	s.accountA = domain.Account{AccountID: uuid.NewString(), Name: "Cash Desk A", IsActive: true}
	s.accountB = domain.Account{AccountID: uuid.NewString(), Name: "Bank B", IsActive: true}
}

// expectAccount wires up the repeated account and balance lookups validation
// performs for an existing account.
func (s *TransactionCreateTestSuite) expectAccount(account domain.Account, currencies ...string) {
	acc := account
	s.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(&acc, nil)
	for _, currency := range currencies {
		s.mockBalanceRepo.On("GetBalance", mock.Anything, account.AccountID, currency).Return(decimal.Zero, nil)
	}
}

func (s *TransactionCreateTestSuite) expectCommit() {
	s.mockTxnRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
}

func (s *TransactionCreateTestSuite) TestInternalTransferDebitsGrossCreditsNet() {
	ctx := context.Background()
	s.expectAccount(s.accountB, "EUR")
	s.expectAccount(s.accountA, "EUR")
	s.expectCommit()

	commission := decimal.NewFromInt(5)
	req := dto.CreateTransactionRequest{
		Type:          domain.InternalTransfer,
		FromAccountID: &s.accountB.AccountID,
		ToAccountID:   &s.accountA.AccountID,
		Amount:        decimal.NewFromInt(50),
		CurrencyCode:  "EUR",
		Commission:    &commission,
	}

	s.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(adjustments []domain.BalanceAdjustment) bool {
			return len(adjustments) == 2 &&
				adjustments[0].AccountID == s.accountB.AccountID &&
				adjustments[0].Amount.Equal(decimal.NewFromInt(-50)) &&
				adjustments[1].AccountID == s.accountA.AccountID &&
				adjustments[1].Amount.Equal(decimal.NewFromInt(45))
		})).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(txn)
	s.NotEmpty(txn.TransactionID)
	s.Equal(domain.InternalTransfer, txn.Type)
	s.Equal(s.userID, txn.ExecutorUserID)
	s.True(txn.Commission.Equal(commission))
	s.mockTxnRepo.AssertExpectations(s.T())
	s.mockGateway.AssertNotCalled(s.T(), "UpdateVehicleCost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionCreateTestSuite) TestInternalTransferSameAccountRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:          domain.InternalTransfer,
		FromAccountID: &s.accountA.AccountID,
		ToAccountID:   &s.accountA.AccountID,
		Amount:        decimal.NewFromInt(10),
		CurrencyCode:  "EUR",
	}

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrSameAccounts)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionCreateTestSuite) TestInternalTransferCommissionBounds() {
	ctx := context.Background()
	s.expectAccount(s.accountB, "EUR")
	s.expectAccount(s.accountA, "EUR")

	for _, commission := range []decimal.Decimal{decimal.NewFromInt(-1), decimal.NewFromInt(50), decimal.NewFromInt(60)} {
		c := commission
		req := dto.CreateTransactionRequest{
			Type:          domain.InternalTransfer,
			FromAccountID: &s.accountB.AccountID,
			ToAccountID:   &s.accountA.AccountID,
			Amount:        decimal.NewFromInt(50),
			CurrencyCode:  "EUR",
			Commission:    &c,
		}

		_, err := s.service.CreateTransaction(ctx, req, s.userID)

		s.Require().Error(err, "commission %s", c)
		s.ErrorIs(err, apperrors.ErrInvalidCommission)
	}
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionCreateTestSuite) TestNonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:         domain.ExternalIncome,
		ToAccountID:  &s.accountA.AccountID,
		Amount:       decimal.Zero,
		CurrencyCode: "EUR",
	}

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionCreateTestSuite) TestExternalIncomeCreditsDestination() {
	ctx := context.Background()
	s.expectAccount(s.accountA, "USD")
	s.expectCommit()

	req := dto.CreateTransactionRequest{
		Type:         domain.ExternalIncome,
		ToAccountID:  &s.accountA.AccountID,
		Amount:       decimal.NewFromInt(200),
		CurrencyCode: "USD",
	}

	s.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(adjustments []domain.BalanceAdjustment) bool {
			return len(adjustments) == 1 &&
				adjustments[0].AccountID == s.accountA.AccountID &&
				adjustments[0].CurrencyCode == "USD" &&
				adjustments[0].Amount.Equal(decimal.NewFromInt(200))
		})).Return(nil).Once()

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionCreateTestSuite) TestClientPaymentRequiresClient() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:          domain.ClientPayment,
		FromAccountID: &s.accountA.AccountID,
		Amount:        decimal.NewFromInt(100),
		CurrencyCode:  "EUR",
	}

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrClientIDRequired)
}

func (s *TransactionCreateTestSuite) TestClientPaymentDropsDestinationAccount() {
	ctx := context.Background()
	s.expectAccount(s.accountA, "EUR")
	s.expectCommit()

	clientID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Type:          domain.ClientPayment,
		FromAccountID: &s.accountA.AccountID,
		ToAccountID:   &s.accountB.AccountID,
		ClientID:      &clientID,
		Amount:        decimal.NewFromInt(100),
		CurrencyCode:  "EUR",
	}

	s.mockTxnRepo.On("SaveTransaction", mock.Anything,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.ToAccountID == nil && txn.ClientID != nil && *txn.ClientID == clientID
		}),
		mock.MatchedBy(func(adjustments []domain.BalanceAdjustment) bool {
			return len(adjustments) == 1 && adjustments[0].Amount.Equal(decimal.NewFromInt(-100))
		})).Return(nil).Once()

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionCreateTestSuite) TestCurrencyConversionSameCurrencyRejected() {
	ctx := context.Background()
	converted := decimal.NewFromInt(110)
	req := dto.CreateTransactionRequest{
		Type:                  domain.CurrencyConversion,
		FromAccountID:         &s.accountA.AccountID,
		Amount:                decimal.NewFromInt(100),
		CurrencyCode:          "EUR",
		ConvertedCurrencyCode: "EUR",
		ConvertedAmount:       &converted,
	}

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrSameCurrencies)
}

func (s *TransactionCreateTestSuite) TestCurrencyConversionDerivesRate() {
	ctx := context.Background()
	s.expectAccount(s.accountA, "EUR", "USD")
	s.expectCommit()

	converted := decimal.NewFromInt(110)
	req := dto.CreateTransactionRequest{
		Type:                  domain.CurrencyConversion,
		FromAccountID:         &s.accountA.AccountID,
		Amount:                decimal.NewFromInt(100),
		CurrencyCode:          "EUR",
		ConvertedCurrencyCode: "USD",
		ConvertedAmount:       &converted,
	}

	s.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(adjustments []domain.BalanceAdjustment) bool {
			return len(adjustments) == 2 &&
				adjustments[0].CurrencyCode == "EUR" &&
				adjustments[0].Amount.Equal(decimal.NewFromInt(-100)) &&
				adjustments[1].CurrencyCode == "USD" &&
				adjustments[1].Amount.Equal(decimal.NewFromInt(110)) &&
				adjustments[0].AccountID == s.accountA.AccountID &&
				adjustments[1].AccountID == s.accountA.AccountID
		})).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().NoError(err)
	s.True(txn.ExchangeRate.Equal(decimal.NewFromFloat(1.1)), "rate should be derived from convertedAmount")
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionCreateTestSuite) TestCurrencyConversionRequiresRateOrAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:                  domain.CurrencyConversion,
		FromAccountID:         &s.accountA.AccountID,
		Amount:                decimal.NewFromInt(100),
		CurrencyCode:          "EUR",
		ConvertedCurrencyCode: "USD",
	}

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionCreateTestSuite) TestVehicleExpensePushesCostToGateway() {
	ctx := context.Background()
	s.expectAccount(s.accountA, "HUF")
	s.expectCommit()

	vehicleID := uuid.NewString()
	converted := decimal.NewFromInt(1400)
	req := dto.CreateTransactionRequest{
		Type:                  domain.VehicleExpense,
		FromAccountID:         &s.accountA.AccountID,
		VehicleID:             &vehicleID,
		Amount:                decimal.NewFromInt(540000),
		CurrencyCode:          "HUF",
		ConvertedCurrencyCode: "EUR",
		ConvertedAmount:       &converted,
	}

	s.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(adjustments []domain.BalanceAdjustment) bool {
			return len(adjustments) == 1 &&
				adjustments[0].CurrencyCode == "HUF" &&
				adjustments[0].Amount.Equal(decimal.NewFromInt(-540000))
		})).Return(nil).Once()
	s.mockGateway.On("UpdateVehicleCost", mock.Anything, vehicleID,
		mock.MatchedBy(func(amount decimal.Decimal) bool { return amount.Equal(converted) }),
		gateways.OperationAdd).Return(nil).Once()

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
	s.mockGateway.AssertExpectations(s.T())
}

func (s *TransactionCreateTestSuite) TestVehicleExpenseGatewayFailureAborts() {
	ctx := context.Background()
	s.expectAccount(s.accountA, "HUF")
	s.expectCommit()

	vehicleID := uuid.NewString()
	rate := decimal.NewFromFloat(0.0026)
	req := dto.CreateTransactionRequest{
		Type:                  domain.VehicleExpense,
		FromAccountID:         &s.accountA.AccountID,
		VehicleID:             &vehicleID,
		Amount:                decimal.NewFromInt(540000),
		CurrencyCode:          "HUF",
		ConvertedCurrencyCode: "EUR",
		ExchangeRate:          &rate,
	}

	s.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockGateway.On("UpdateVehicleCost", mock.Anything, vehicleID, mock.Anything, gateways.OperationAdd).
		Return(errors.New("connection refused")).Once()

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrVehicleCostUpdateFailed)
	s.mockGateway.AssertExpectations(s.T())
}

func (s *TransactionCreateTestSuite) TestUnsupportedTypeRejected() {
	ctx := context.Background()
	for _, txnType := range []domain.TransactionType{domain.Deposit, domain.Withdrawal, domain.Purchase, "LOAN"} {
		req := dto.CreateTransactionRequest{
			Type:         txnType,
			ToAccountID:  &s.accountA.AccountID,
			Amount:       decimal.NewFromInt(10),
			CurrencyCode: "EUR",
		}

		_, err := s.service.CreateTransaction(ctx, req, s.userID)

		s.Require().Error(err, "type %s", txnType)
		s.ErrorIs(err, apperrors.ErrUnsupportedTransactionType)
	}
}

func (s *TransactionCreateTestSuite) TestMissingAccountMapsToAccountNotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()
	s.mockAccountRepo.On("FindAccountByID", mock.Anything, missingID).Return(nil, apperrors.ErrNotFound)

	req := dto.CreateTransactionRequest{
		Type:         domain.ExternalIncome,
		ToAccountID:  &missingID,
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "EUR",
	}

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (s *TransactionCreateTestSuite) TestDisabledCurrencyRejected() {
	ctx := context.Background()
	acc := s.accountA
	s.mockAccountRepo.On("FindAccountByID", mock.Anything, acc.AccountID).Return(&acc, nil)
	s.mockBalanceRepo.On("GetBalance", mock.Anything, acc.AccountID, "JPY").
		Return(decimal.Zero, apperrors.ErrCurrencyNotSupported)

	req := dto.CreateTransactionRequest{
		Type:         domain.ExternalIncome,
		ToAccountID:  &acc.AccountID,
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "JPY",
	}

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrCurrencyNotSupported)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionCreateTestSuite) TestBranchPermissionDenied() {
	ctx := context.Background()
	branchID := uuid.NewString()
	restricted := domain.Account{AccountID: uuid.NewString(), Name: "Branch Desk", BranchID: &branchID, IsActive: true}
	s.expectAccount(restricted, "EUR")
	s.mockBranchRepo.On("HasOperatePermission", mock.Anything, s.userID, branchID).Return(false, nil).Once()

	req := dto.CreateTransactionRequest{
		Type:         domain.ExternalIncome,
		ToAccountID:  &restricted.AccountID,
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "EUR",
	}

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAccessDenied)
	s.mockBranchRepo.AssertExpectations(s.T())
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionCreateTestSuite) TestUnknownCategoryRejected() {
	ctx := context.Background()
	s.expectAccount(s.accountA, "EUR")
	categoryID := uuid.NewString()
	s.mockCategoryRepo.On("FindCategoryByID", mock.Anything, categoryID).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateTransactionRequest{
		Type:         domain.ExternalIncome,
		ToAccountID:  &s.accountA.AccountID,
		CategoryID:   &categoryID,
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "EUR",
	}

	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrCategoryNotFound)
}

func TestTransactionCreateSuite(t *testing.T) {
	suite.Run(t, new(TransactionCreateTestSuite))
}
