package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RoleRequestRepository defines persistence access for role upgrade requests.
type RoleRequestRepository interface {
	Create(ctx context.Context, req *domain.RoleUpgradeRequest) error
	GetByID(ctx context.Context, id string) (*domain.RoleUpgradeRequest, error)
	ListByStatus(ctx context.Context, status domain.RoleRequestStatus, limit, offset int) ([]domain.RoleUpgradeRequest, error)
	// Resolve flips a PENDING request to a terminal status. Returns
	// pgx.ErrNoRows when the request is absent or already resolved.
	Resolve(ctx context.Context, id string, status domain.RoleRequestStatus, resolvedByID string) error
}

type roleRequestRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRequestRepository returns a Postgres-backed implementation.
func NewRoleRequestRepository(pool *pgxpool.Pool) RoleRequestRepository {
	return &roleRequestRepository{pool: pool}
}

const roleRequestColumns = `id, requester_id, requester_name, requester_email, current_role,
               requested_role, reason, status, resolved_by_id, created_at, resolved_at`

func (r *roleRequestRepository) Create(ctx context.Context, req *domain.RoleUpgradeRequest) error {
	const query = `
        INSERT INTO role_upgrade_requests (requester_id, requester_name, requester_email, current_role, requested_role, reason, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		req.RequesterID,
		req.RequesterName,
		req.RequesterEmail,
		req.CurrentRole,
		req.RequestedRole,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt)
}

func (r *roleRequestRepository) GetByID(ctx context.Context, id string) (*domain.RoleUpgradeRequest, error) {
	query := `SELECT ` + roleRequestColumns + ` FROM role_upgrade_requests WHERE id=$1`
	var req domain.RoleUpgradeRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.RequesterID,
		&req.RequesterName,
		&req.RequesterEmail,
		&req.CurrentRole,
		&req.RequestedRole,
		&req.Reason,
		&req.Status,
		&req.ResolvedByID,
		&req.CreatedAt,
		&req.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *roleRequestRepository) ListByStatus(ctx context.Context, status domain.RoleRequestStatus, limit, offset int) ([]domain.RoleUpgradeRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + roleRequestColumns + `
        FROM role_upgrade_requests WHERE status=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoleUpgradeRequest
	for rows.Next() {
		var req domain.RoleUpgradeRequest
		if err := rows.Scan(
			&req.ID,
			&req.RequesterID,
			&req.RequesterName,
			&req.RequesterEmail,
			&req.CurrentRole,
			&req.RequestedRole,
			&req.Reason,
			&req.Status,
			&req.ResolvedByID,
			&req.CreatedAt,
			&req.ResolvedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

func (r *roleRequestRepository) Resolve(ctx context.Context, id string, status domain.RoleRequestStatus, resolvedByID string) error {
	const query = `
        UPDATE role_upgrade_requests SET status=$1, resolved_by_id=$2, resolved_at=NOW()
        WHERE id=$3 AND status=$4`
	cmd, err := r.pool.Exec(ctx, query, status, resolvedByID, id, domain.RoleRequestPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
