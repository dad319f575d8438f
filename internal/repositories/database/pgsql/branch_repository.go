package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	"github.com/caravel-trade/caravel-backend/internal/models"
	"github.com/caravel-trade/caravel-backend/internal/utils/mapping"
)

type PgxBranchRepository struct {
	BaseRepository
}

// newPgxBranchRepository creates a new repository for branch data.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{BaseRepository: BaseRepository{db: pool}}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

// FindBranchByID retrieves a branch by its ID.
func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `
		SELECT branch_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM branches
		WHERE branch_id = $1;
	`
	var m models.Branch
	err := r.db.QueryRow(ctx, query, branchID).Scan(
		&m.BranchID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchID)
		}
		return nil, fmt.Errorf("failed to find branch by ID %s: %w", branchID, err)
	}

	d := mapping.ToDomainBranch(m)
	return &d, nil
}

// HasOperatePermission reports whether the user may mutate accounts belonging
// to the branch.
func (r *PgxBranchRepository) HasOperatePermission(ctx context.Context, userID, branchID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_branch_permissions
			WHERE user_id = $1 AND branch_id = $2 AND can_operate = TRUE
		);
	`
	var allowed bool
	if err := r.db.QueryRow(ctx, query, userID, branchID).Scan(&allowed); err != nil {
		return false, fmt.Errorf("failed to check branch permission for user %s on branch %s: %w", userID, branchID, err)
	}
	return allowed, nil
}
