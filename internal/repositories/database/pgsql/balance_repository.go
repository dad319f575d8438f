package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	"github.com/caravel-trade/caravel-backend/internal/models"
	"github.com/caravel-trade/caravel-backend/internal/utils/mapping"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for account balance data.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{db: pool}}
}

// Ensure PgxBalanceRepository implements portsrepo.BalanceRepositoryFacade
var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

// GetBalance returns the amount held on (account, currency). A missing row
// means the currency is not enabled on the account.
func (r *PgxBalanceRepository) GetBalance(ctx context.Context, accountID, currencyCode string) (decimal.Decimal, error) {
	query := `SELECT amount FROM account_balances WHERE account_id = $1 AND currency_code = $2;`

	var amount decimal.Decimal
	err := r.db.QueryRow(ctx, query, accountID, currencyCode).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: currency %s is not enabled on account %s", apperrors.ErrCurrencyNotSupported, currencyCode, accountID)
		}
		return decimal.Zero, fmt.Errorf("failed to get balance for account %s (%s): %w", accountID, currencyCode, err)
	}
	return amount, nil
}

// ListBalancesByAccountID returns every balance row of the account.
func (r *PgxBalanceRepository) ListBalancesByAccountID(ctx context.Context, accountID string) ([]domain.Balance, error) {
	query := `
		SELECT account_id, currency_code, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM account_balances
		WHERE account_id = $1
		ORDER BY currency_code;
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for account %s: %w", accountID, err)
	}
	defer rows.Close()

	balances := []domain.Balance{}
	for rows.Next() {
		var m models.AccountBalance
		err := rows.Scan(
			&m.AccountID,
			&m.CurrencyCode,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance row for account %s: %w", accountID, err)
		}
		balances = append(balances, mapping.ToDomainBalance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows for account %s: %w", accountID, err)
	}
	return balances, nil
}

// EnableCurrency creates a zeroed balance row, making the currency supported
// on the account.
func (r *PgxBalanceRepository) EnableCurrency(ctx context.Context, accountID, currencyCode, userID string) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO account_balances (account_id, currency_code, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query, accountID, currencyCode, decimal.Zero, now, userID, now, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // Unique violation: currency already enabled
				return fmt.Errorf("%w: currency %s already enabled on account %s", apperrors.ErrDuplicate, currencyCode, accountID)
			case "23503": // FK violation: account does not exist
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
			}
		}
		return fmt.Errorf("failed to enable currency %s on account %s: %w", currencyCode, accountID, err)
	}
	return nil
}
