package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	"github.com/caravel-trade/caravel-backend/internal/models"
	"github.com/caravel-trade/caravel-backend/internal/utils/mapping"
	"github.com/caravel-trade/caravel-backend/internal/utils/pagination"
)

const transactionColumns = `transaction_id, type, from_account_id, to_account_id, amount, currency_code,
		commission, exchange_rate, converted_amount, converted_currency_code,
		client_id, vehicle_id, category_id, counterparty_id, description, executor_user_id,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{db: pool},
		pool:           pool,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// WithTransaction runs fn against a repository bound to a single database
// transaction. fn returning an error rolls everything back.
func (r *PgxTransactionRepository) WithTransaction(ctx context.Context, fn func(txRepo portsrepo.TransactionRepositoryFacade) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op after a successful commit

	txRepo := &PgxTransactionRepository{
		BaseRepository: BaseRepository{db: tx},
		pool:           r.pool,
	}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// applyBalanceAdjustments adds each adjustment amount onto its balance row.
// A missing (account, currency) row means the currency was never enabled on
// the account and fails the whole unit of work.
func (r *PgxTransactionRepository) applyBalanceAdjustments(ctx context.Context, adjustments []domain.BalanceAdjustment, now time.Time) error {
	query := `
		UPDATE account_balances
		SET amount = amount + $3, last_updated_at = $4
		WHERE account_id = $1 AND currency_code = $2;
	`
	for _, adj := range adjustments {
		if adj.Amount.IsZero() {
			continue
		}
		tag, err := r.db.Exec(ctx, query, adj.AccountID, adj.CurrencyCode, adj.Amount, now)
		if err != nil {
			return fmt.Errorf("failed to adjust balance for account %s (%s): %w", adj.AccountID, adj.CurrencyCode, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: currency %s is not enabled on account %s", apperrors.ErrCurrencyNotSupported, adj.CurrencyCode, adj.AccountID)
		}
	}
	return nil
}

// SaveTransaction inserts the transaction row and applies its balance effect.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, adjustments []domain.BalanceAdjustment) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.db.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Type,
		modelTxn.FromAccountID,
		modelTxn.ToAccountID,
		modelTxn.Amount,
		modelTxn.CurrencyCode,
		modelTxn.Commission,
		modelTxn.ExchangeRate,
		modelTxn.ConvertedAmount,
		modelTxn.ConvertedCurrencyCode,
		modelTxn.ClientID,
		modelTxn.VehicleID,
		modelTxn.CategoryID,
		modelTxn.CounterpartyID,
		modelTxn.Description,
		modelTxn.ExecutorUserID,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
	}

	return r.applyBalanceAdjustments(ctx, adjustments, modelTxn.CreatedAt)
}

// UpdateTransaction rewrites the transaction's mutable columns and applies the
// combined revert/apply adjustments.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, adjustments []domain.BalanceAdjustment) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET amount = $2, commission = $3, exchange_rate = $4, converted_amount = $5,
		    category_id = $6, counterparty_id = $7, description = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE transaction_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Amount,
		modelTxn.Commission,
		modelTxn.ExchangeRate,
		modelTxn.ConvertedAmount,
		modelTxn.CategoryID,
		modelTxn.CounterpartyID,
		modelTxn.Description,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", modelTxn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, modelTxn.TransactionID)
	}

	return r.applyBalanceAdjustments(ctx, adjustments, modelTxn.LastUpdatedAt)
}

// DeleteTransactions removes the given rows and applies the (typically
// aggregated) revert adjustments.
func (r *PgxTransactionRepository) DeleteTransactions(ctx context.Context, transactionIDs []string, adjustments []domain.BalanceAdjustment) error {
	if len(transactionIDs) == 0 {
		return nil
	}

	query := `DELETE FROM transactions WHERE transaction_id = ANY($1);`
	tag, err := r.db.Exec(ctx, query, transactionIDs)
	if err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	if int(tag.RowsAffected()) != len(transactionIDs) {
		return fmt.Errorf("%w: expected to delete %d transactions, deleted %d", apperrors.ErrConflict, len(transactionIDs), tag.RowsAffected())
	}

	return r.applyBalanceAdjustments(ctx, adjustments, time.Now().UTC())
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	modelTxn, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// FindTransactionsByVehicleID retrieves every transaction tied to a vehicle.
func (r *PgxTransactionRepository) FindTransactionsByVehicleID(ctx context.Context, vehicleID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE vehicle_id = $1
		ORDER BY created_at, transaction_id;
	`
	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for vehicle %s: %w", vehicleID, err)
	}
	defer rows.Close()

	results, err := scanTransactionRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions for vehicle %s: %w", vehicleID, err)
	}
	return mapping.ToDomainTransactionSlice(results), nil
}

// ListTransactions retrieves a filtered, token-paginated list of transactions,
// newest first. The cursor is (created_at, transaction_id) of the last item of
// the previous page.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether a next page exists.
	fetchLimit := limit + 1

	conditions := []string{}
	args := []interface{}{}
	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.AccountID != nil {
		addCondition("(from_account_id = $%[1]d OR to_account_id = $%[1]d)", *filter.AccountID)
	}
	if filter.VehicleID != nil {
		addCondition("vehicle_id = $%d", *filter.VehicleID)
	}
	if filter.ClientID != nil {
		addCondition("client_id = $%d", *filter.ClientID)
	}
	if filter.Type != nil {
		addCondition("type = $%d", string(*filter.Type))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := decodeListCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastCreatedAt, lastID)
		conditions = append(conditions, fmt.Sprintf("(created_at, transaction_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	args = append(args, fetchLimit)
	query += " ORDER BY created_at DESC, transaction_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	results, err := scanTransactionRows(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan transaction rows: %w", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		results = results[:limit]
		last := results[limit-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.TransactionID)
		nextTokenVal = &token
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

func decodeListCursor(token string) (time.Time, string, error) {
	fields, err := pagination.DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, "", err
	}
	if len(fields) != 2 {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (field count)")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields[0])
	if err != nil {
		return time.Time{}, "", err
	}
	return createdAt, fields[1], nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Type,
		&m.FromAccountID,
		&m.ToAccountID,
		&m.Amount,
		&m.CurrencyCode,
		&m.Commission,
		&m.ExchangeRate,
		&m.ConvertedAmount,
		&m.ConvertedCurrencyCode,
		&m.ClientID,
		&m.VehicleID,
		&m.CategoryID,
		&m.CounterpartyID,
		&m.Description,
		&m.ExecutorUserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanTransactionRows(rows pgx.Rows) ([]models.Transaction, error) {
	results := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
