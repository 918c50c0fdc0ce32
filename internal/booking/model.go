package booking

import (
	"net/http"
	"time"

	"github.com/tidyops/dispatch-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotUnavailable  = apperror.New(http.StatusConflict, "slot unavailable")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "duration must be a positive number of minutes")
	ErrInvalidStart     = apperror.New(http.StatusBadRequest, "start time must be a valid instant")
	ErrTeamNotFound     = apperror.New(http.StatusNotFound, "team not found")
	ErrCustomerNotFound = apperror.New(http.StatusNotFound, "customer not found")
	ErrServiceNotFound  = apperror.New(http.StatusNotFound, "service type not found")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrBadTransition    = apperror.New(http.StatusBadRequest, "invalid status transition")
	ErrTeamInactive     = apperror.New(http.StatusBadRequest, "team is not active")
	ErrInvalidInput     = apperror.New(http.StatusBadRequest, "invalid input parameters")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ActiveStatuses are the lifecycle states that still reserve the team's time.
// Only these participate in conflict checking; completed and cancelled
// bookings never block a slot.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed, StatusInProgress}

// IsActive reports whether the status reserves the team's time.
func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

// IsValid reports whether s is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is a scheduled cleaning visit reserving one team's time for the
// half-open interval [StartsAt, StartsAt + DurationMinutes).
type Booking struct {
	ID              string
	OrganizationID  string
	TeamID          string
	TeamName        string
	CustomerID      string
	CustomerName    string
	ServiceTypeID   string
	ServiceTypeName string
	StartsAt        time.Time
	DurationMinutes int
	Status          Status
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EndsAt returns the exclusive end instant of the booking's interval.
func (b *Booking) EndsAt() time.Time {
	return b.StartsAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Filter defines parameters for listing bookings.
type Filter struct {
	OrganizationID string
	TeamID         string
	CustomerID     string
	Status         string
	StartsFrom     *time.Time
	StartsUntil    *time.Time
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}
