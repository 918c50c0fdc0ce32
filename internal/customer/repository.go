package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, filter Filter) ([]*Customer, int, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Customer) error {
	const query = `
		INSERT INTO public.customers (organization_id, name, email, phone, address_line, city, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		c.OrganizationID, c.Name, c.Email, c.Phone, c.AddressLine, c.City, c.PostalCode,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create customer failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	const query = `
		SELECT id, organization_id, name, email, phone, address_line, city, postal_code, created_at
		FROM public.customers
		WHERE id = $1
	`
	var c Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.OrganizationID, &c.Name, &c.Email, &c.Phone,
		&c.AddressLine, &c.City, &c.PostalCode, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Customer, int, error) {
	var args []interface{}
	queryBase := `
		SELECT id, organization_id, name, email, phone, address_line, city, postal_code, created_at,
		       count(*) OVER() AS total_count
		FROM public.customers
		WHERE 1=1
	`
	paramIndex := 1

	if filter.OrganizationID != "" {
		queryBase += fmt.Sprintf(" AND organization_id = $%d", paramIndex)
		args = append(args, filter.OrganizationID)
		paramIndex++
	}
	if filter.City != "" {
		queryBase += fmt.Sprintf(" AND city = $%d", paramIndex)
		args = append(args, filter.City)
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
		return nil, 0, fmt.Errorf("list customers failed: %w", err)
	}
	defer rows.Close()

	var result []*Customer
	var total int

	for rows.Next() {
		var c Customer
		if err := rows.Scan(
			&c.ID, &c.OrganizationID, &c.Name, &c.Email, &c.Phone,
			&c.AddressLine, &c.City, &c.PostalCode, &c.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan customer failed: %w", err)
		}
		result = append(result, &c)
	}

	return result, total, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, c *Customer) error {
	const query = `
		UPDATE public.customers
		SET name = $1, email = $2, phone = $3, address_line = $4, city = $5, postal_code = $6
		WHERE id = $7
	`
	ct, err := r.pool.Exec(ctx, query,
		c.Name, c.Email, c.Phone, c.AddressLine, c.City, c.PostalCode, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update customer failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.customers WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete customer failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
