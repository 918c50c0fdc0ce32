package servicetype

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, st *ServiceType) error
	GetByID(ctx context.Context, id string) (*ServiceType, error)
	List(ctx context.Context, filter Filter) ([]*ServiceType, int, error)
	Update(ctx context.Context, st *ServiceType) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, st *ServiceType) error {
	const query = `
		INSERT INTO public.service_types (organization_id, name, base_duration_minutes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, st.OrganizationID, st.Name, st.BaseDurationMinutes).
		Scan(&st.ID, &st.CreatedAt)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateName
		}
		return fmt.Errorf("create service type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ServiceType, error) {
	const query = `
		SELECT id, organization_id, name, base_duration_minutes, created_at
		FROM public.service_types
		WHERE id = $1
	`
	var st ServiceType
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&st.ID, &st.OrganizationID, &st.Name, &st.BaseDurationMinutes, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service type failed: %w", err)
	}
	return &st, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*ServiceType, int, error) {
	var args []interface{}
	queryBase := `
		SELECT id, organization_id, name, base_duration_minutes, created_at, count(*) OVER() AS total_count
		FROM public.service_types
		WHERE 1=1
	`
	paramIndex := 1

	if filter.OrganizationID != "" {
		queryBase += fmt.Sprintf(" AND organization_id = $%d", paramIndex)
		args = append(args, filter.OrganizationID)
		paramIndex++
	}

	queryBase += " ORDER BY name ASC"

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
		return nil, 0, fmt.Errorf("list service types failed: %w", err)
	}
	defer rows.Close()

	var result []*ServiceType
	var total int

	for rows.Next() {
		var st ServiceType
		if err := rows.Scan(
			&st.ID, &st.OrganizationID, &st.Name, &st.BaseDurationMinutes, &st.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan service type failed: %w", err)
		}
		result = append(result, &st)
	}

	return result, total, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, st *ServiceType) error {
	const query = `
		UPDATE public.service_types
		SET name = $1, base_duration_minutes = $2
		WHERE id = $3
	`
	ct, err := r.pool.Exec(ctx, query, st.Name, st.BaseDurationMinutes, st.ID)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateName
		}
		return fmt.Errorf("update service type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.service_types WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete service type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
