package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"theaifactory-backend/internal/domain"
)

type roleRepo struct {
	db *pgxpool.Pool
}

func NewRoleRepository(db *pgxpool.Pool) domain.RoleRepository {
	return &roleRepo{db: db}
}

// GetByUserID fetches the single user_roles row for a user. Errors
// (including no rows) propagate; the caller decides the fallback policy.
func (r *roleRepo) GetByUserID(ctx context.Context, userID string) (domain.Role, error) {
	query := `SELECT role FROM user_roles WHERE user_id = $1`
	var role string
	err := r.db.QueryRow(ctx, query, userID).Scan(&role)
	if err != nil {
		return "", err
	}
	return domain.Role(role), nil
}
