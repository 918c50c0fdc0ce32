package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestTranslateConstraint(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil error",
			err:  nil,
			want: nil,
		},
		{
			name: "unique violation on the slot key",
			err:  pgError(pgerrcode.UniqueViolation, slotUniqueConstraint),
			want: ErrSlotUnavailable,
		},
		{
			name: "exclusion violation on the overlap constraint",
			err:  pgError(pgerrcode.ExclusionViolation, slotExclusionConstraint),
			want: ErrSlotUnavailable,
		},
		{
			name: "unique violation on an unrelated constraint",
			err:  pgError(pgerrcode.UniqueViolation, "users_email_key"),
			want: pgError(pgerrcode.UniqueViolation, "users_email_key"),
		},
		{
			name: "foreign key violation passes through",
			err:  pgError(pgerrcode.ForeignKeyViolation, "bookings_team_id_fkey"),
			want: pgError(pgerrcode.ForeignKeyViolation, "bookings_team_id_fkey"),
		},
		{
			name: "mismatched code and constraint passes through",
			err:  pgError(pgerrcode.UniqueViolation, slotExclusionConstraint),
			want: pgError(pgerrcode.UniqueViolation, slotExclusionConstraint),
		},
		{
			name: "plain error passes through",
			err:  errors.New("connection reset"),
			want: errors.New("connection reset"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateConstraint(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tc.want.Error(), got.Error())
		})
	}
}

func TestTranslateConstraintWrapped(t *testing.T) {
	// The violation may arrive wrapped by the repository layer.
	wrapped := fmt.Errorf("insert booking: %w", pgError(pgerrcode.ExclusionViolation, slotExclusionConstraint))
	assert.Equal(t, ErrSlotUnavailable, translateConstraint(wrapped))
}

func TestTranslateConstraintIdempotent(t *testing.T) {
	err := pgError(pgerrcode.UniqueViolation, slotUniqueConstraint)

	once := translateConstraint(err)
	twice := translateConstraint(once)

	assert.Equal(t, ErrSlotUnavailable, once)
	assert.Equal(t, once, twice)
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(pgError(pgerrcode.ForeignKeyViolation, "bookings_team_id_fkey"), "bookings_team_id_fkey"))
	assert.False(t, isForeignKeyViolation(pgError(pgerrcode.ForeignKeyViolation, "bookings_customer_id_fkey"), "bookings_team_id_fkey"))
	assert.False(t, isForeignKeyViolation(pgError(pgerrcode.UniqueViolation, "bookings_team_id_fkey"), "bookings_team_id_fkey"))
	assert.False(t, isForeignKeyViolation(errors.New("boom"), "bookings_team_id_fkey"))
}
