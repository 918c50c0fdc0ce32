package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id string) (*Team, error)
	List(ctx context.Context, filter Filter) ([]*Team, int, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, t *Team) error {
	const query = `
		INSERT INTO public.teams (organization_id, name, capacity, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, t.OrganizationID, t.Name, t.Capacity, t.IsActive).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create team failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Team, error) {
	const query = `
		SELECT id, organization_id, name, capacity, is_active, created_at
		FROM public.teams
		WHERE id = $1
	`
	var t Team
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.OrganizationID, &t.Name, &t.Capacity, &t.IsActive, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get team failed: %w", err)
	}
	return &t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Team, int, error) {
	var args []interface{}
	queryBase := `
		SELECT id, organization_id, name, capacity, is_active, created_at, count(*) OVER() AS total_count
		FROM public.teams
		WHERE 1=1
	`
	paramIndex := 1

	if filter.OrganizationID != "" {
		queryBase += fmt.Sprintf(" AND organization_id = $%d", paramIndex)
		args = append(args, filter.OrganizationID)
		paramIndex++
	}
	if filter.IsActive != nil {
		queryBase += fmt.Sprintf(" AND is_active = $%d", paramIndex)
		args = append(args, *filter.IsActive)
		paramIndex++
	}

	queryBase += " ORDER BY created_at DESC"

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBase += fmt.Sprintf(" LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.pool.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list teams failed: %w", err)
	}
	defer rows.Close()

	var result []*Team
	var total int

	for rows.Next() {
		var t Team
		if err := rows.Scan(
			&t.ID, &t.OrganizationID, &t.Name, &t.Capacity, &t.IsActive, &t.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan team failed: %w", err)
		}
		result = append(result, &t)
	}

	return result, total, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, t *Team) error {
	const query = `
		UPDATE public.teams
		SET name = $1, capacity = $2, is_active = $3
		WHERE id = $4
	`
	ct, err := r.pool.Exec(ctx, query, t.Name, t.Capacity, t.IsActive, t.ID)
	if err != nil {
		return fmt.Errorf("update team failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.teams WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete team failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
