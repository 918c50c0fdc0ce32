package booking

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Names of the two constraints that guard booking slots. They must match the
// schema migration exactly: the translator identifies conflicts by constraint
// name so that unrelated integrity errors (e.g. a foreign key to a missing
// customer) are never reinterpreted as a slot conflict.
const (
	slotUniqueConstraint    = "bookings_team_slot_active_key"
	slotExclusionConstraint = "bookings_team_no_overlap_excl"
)

// translateConstraint maps a storage-level integrity error onto the domain.
//
// A unique or exclusion violation against one of the two booking-slot
// constraints becomes ErrSlotUnavailable; the caller cannot tell an exact
// duplicate from an overlap, and does not need to. Every other error is
// returned unchanged. Translating the same error twice yields the same
// result.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == slotUniqueConstraint {
			return ErrSlotUnavailable
		}
	case pgerrcode.ExclusionViolation:
		if pgErr.ConstraintName == slotExclusionConstraint {
			return ErrSlotUnavailable
		}
	}

	return err
}

// isForeignKeyViolation reports whether err is a foreign key violation on the
// given constraint. The repository uses it to map references to missing
// rows (team, customer, service type) onto not-found errors instead of 500s.
func isForeignKeyViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == constraint
}
