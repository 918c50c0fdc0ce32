package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tidyops/dispatch-backend/internal/config"
)

type Repository interface {
	// Create inserts the booking inside a transaction. The storage layer is
	// the authority on slot conflicts: a violation of either booking-slot
	// constraint is returned as ErrSlotUnavailable, with no partial write.
	Create(ctx context.Context, b *Booking) error

	// FindOverlapping returns the active bookings for the team whose
	// half-open intervals intersect [start, end). Advisory only; it cannot
	// guarantee the slot stays free. excludeID skips a booking during
	// reschedule checks.
	FindOverlapping(ctx context.Context, orgID, teamID string, start, end time.Time, excludeID string) ([]*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool

	// guard selects how conflicts are enforced on insert. With native
	// exclusion (and advisory-only, where the constraints simply are not
	// installed) the insert goes straight through; serialized takes a
	// per-team row lock and re-checks overlap inside the transaction for
	// engines without exclusion constraints.
	guard string
}

func NewPgxRepository(pool *pgxpool.Pool, guard string) Repository {
	return &pgxRepository{pool: pool, guard: guard}
}

var activeStatusStrings = []string{
	string(StatusPending), string(StatusConfirmed), string(StatusInProgress),
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	if r.guard == config.GuardSerialized {
		return r.createSerialized(ctx, b)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return r.insert(ctx, tx, b)
	})
}

// createSerialized serializes booking creation per team: it locks the team
// row, re-runs the overlap check inside the transaction, then inserts. This
// closes the check-then-act race on engines that cannot enforce the range
// exclusion constraint themselves.
func (r *pgxRepository) createSerialized(ctx context.Context, b *Booking) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var teamID string
		err := tx.QueryRow(ctx,
			"SELECT id FROM public.teams WHERE id = $1 FOR UPDATE", b.TeamID,
		).Scan(&teamID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("lock team row failed: %w", err)
		}

		taken, err := r.slotTaken(ctx, tx, b.OrganizationID, b.TeamID, b.StartsAt, b.EndsAt())
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotUnavailable
		}

		return r.insert(ctx, tx, b)
	})
}

func (r *pgxRepository) insert(ctx context.Context, tx pgx.Tx, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"organization_id", "team_id", "customer_id", "service_type_id",
			"starts_at", "duration_minutes", "ends_at", "status", "notes",
		).
		Values(
			b.OrganizationID, b.TeamID, b.CustomerID, b.ServiceTypeID,
			b.StartsAt, b.DurationMinutes, b.EndsAt(), b.Status, b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		switch {
		case isForeignKeyViolation(err, "bookings_team_id_fkey"):
			return ErrTeamNotFound
		case isForeignKeyViolation(err, "bookings_customer_id_fkey"):
			return ErrCustomerNotFound
		case isForeignKeyViolation(err, "bookings_service_type_id_fkey"):
			return ErrServiceNotFound
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

// slotTaken is the in-transaction variant of the overlap check used by the
// serialized guard.
func (r *pgxRepository) slotTaken(ctx context.Context, tx pgx.Tx, orgID, teamID string, start, end time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"organization_id": orgID}).
		Where(squirrel.Eq{"team_id": teamID}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		Where(squirrel.Lt{"starts_at": end}).
		Where(squirrel.Gt{"ends_at": start})

	sql, args, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("build slot taken query failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("slot taken check failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) FindOverlapping(ctx context.Context, orgID, teamID string, start, end time.Time, excludeID string) ([]*Booking, error) {
	// Half-open semantics: existing.starts_at < end AND existing.ends_at > start.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.organization_id", "b.team_id", "t.name",
		"b.customer_id", "c.name", "b.service_type_id", "st.name",
		"b.starts_at", "b.duration_minutes", "b.status", "b.notes",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.teams t ON b.team_id = t.id").
		Join("public.customers c ON b.customer_id = c.id").
		Join("public.service_types st ON b.service_type_id = st.id").
		Where(squirrel.Eq{"b.organization_id": orgID}).
		Where(squirrel.Eq{"b.team_id": teamID}).
		Where(squirrel.Eq{"b.status": activeStatusStrings}).
		Where(squirrel.Lt{"b.starts_at": end}).
		Where(squirrel.Gt{"b.ends_at": start}).
		OrderBy("b.starts_at ASC")

	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"b.id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find overlapping query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find overlapping bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.OrganizationID, &b.TeamID, &b.TeamName,
			&b.CustomerID, &b.CustomerName, &b.ServiceTypeID, &b.ServiceTypeName,
			&b.StartsAt, &b.DurationMinutes, &b.Status, &b.Notes,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.organization_id", "b.team_id", "t.name",
		"b.customer_id", "c.name", "b.service_type_id", "st.name",
		"b.starts_at", "b.duration_minutes", "b.status", "b.notes",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.teams t ON b.team_id = t.id").
		Join("public.customers c ON b.customer_id = c.id").
		Join("public.service_types st ON b.service_type_id = st.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.OrganizationID, &b.TeamID, &b.TeamName,
		&b.CustomerID, &b.CustomerName, &b.ServiceTypeID, &b.ServiceTypeName,
		&b.StartsAt, &b.DurationMinutes, &b.Status, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.organization_id", "b.team_id", "t.name",
		"b.customer_id", "c.name", "b.service_type_id", "st.name",
		"b.starts_at", "b.duration_minutes", "b.status", "b.notes",
		"b.created_at", "b.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.bookings b").
		Join("public.teams t ON b.team_id = t.id").
		Join("public.customers c ON b.customer_id = c.id").
		Join("public.service_types st ON b.service_type_id = st.id")

	if filter.OrganizationID != "" {
		query = query.Where(squirrel.Eq{"b.organization_id": filter.OrganizationID})
	}
	if filter.TeamID != "" {
		query = query.Where(squirrel.Eq{"b.team_id": filter.TeamID})
	}
	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"b.customer_id": filter.CustomerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.StartsFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.starts_at": filter.StartsFrom})
	}
	if filter.StartsUntil != nil {
		query = query.Where(squirrel.LtOrEq{"b.starts_at": filter.StartsUntil})
	}

	orderBy := "b.starts_at"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.OrganizationID, &b.TeamID, &b.TeamName,
			&b.CustomerID, &b.CustomerName, &b.ServiceTypeID, &b.ServiceTypeName,
			&b.StartsAt, &b.DurationMinutes, &b.Status, &b.Notes,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		// Moving a booking back into an active status re-evaluates the slot
		// constraints; a violation means the slot has been taken meanwhile.
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
