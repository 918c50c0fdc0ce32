package booking

import (
	"context"
	"errors"
	"time"

	"github.com/tidyops/dispatch-backend/internal/organization"
	"github.com/tidyops/dispatch-backend/internal/team"
)

type CreateRequest struct {
	OrganizationID  string
	TeamID          string
	CustomerID      string
	ServiceTypeID   string
	StartsAt        time.Time
	DurationMinutes int
	Notes           string
}

// AvailabilityRequest asks whether a team is free for a candidate slot.
type AvailabilityRequest struct {
	OrganizationID  string
	TeamID          string
	StartsAt        time.Time
	DurationMinutes int
}

// Availability is the advisory answer. It reports the conflicting bookings
// for richer client feedback, but a free answer can be stale by the time the
// caller writes: only the insert is authoritative.
type Availability struct {
	Available bool
	Conflicts []*Booking
}

type Service interface {
	// Create validates the request, runs the advisory pre-check for fast
	// feedback, then attempts the insert. Under concurrent requests for the
	// same slot exactly one caller succeeds; the rest get ErrSlotUnavailable.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// CheckAvailability is the read-only pre-check exposed for UX. It never
	// guarantees the slot stays free.
	CheckAvailability(ctx context.Context, req AvailabilityRequest) (*Availability, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status, actorID string, isSysAdmin bool) (*Booking, error)
}

type service struct {
	repo        Repository
	teamService team.Service
	orgService  organization.Service
}

func NewService(repo Repository, teamService team.Service, orgService organization.Service) Service {
	return &service{
		repo:        repo,
		teamService: teamService,
		orgService:  orgService,
	}
}

// validateSlot rejects malformed input before any database interaction.
func validateSlot(orgID, teamID string, startsAt time.Time, durationMinutes int) error {
	if orgID == "" || teamID == "" {
		return ErrInvalidInput
	}
	if durationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if startsAt.IsZero() {
		return ErrInvalidStart
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := validateSlot(req.OrganizationID, req.TeamID, req.StartsAt, req.DurationMinutes); err != nil {
		return nil, err
	}
	if req.CustomerID == "" || req.ServiceTypeID == "" {
		return nil, ErrInvalidInput
	}

	t, err := s.teamService.GetByID(ctx, req.TeamID)
	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	// Teams from other tenants are invisible, not forbidden.
	if t.OrganizationID != req.OrganizationID {
		return nil, ErrTeamNotFound
	}
	if !t.IsActive {
		return nil, ErrTeamInactive
	}

	start := req.StartsAt.UTC()
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// Advisory pre-check: catches most conflicts without paying for a failed
	// insert. Two racing requests can both pass it, which is why the insert
	// below remains the authority.
	conflicts, err := s.repo.FindOverlapping(ctx, req.OrganizationID, req.TeamID, start, end, "")
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrSlotUnavailable
	}

	b := &Booking{
		OrganizationID:  req.OrganizationID,
		TeamID:          req.TeamID,
		CustomerID:      req.CustomerID,
		ServiceTypeID:   req.ServiceTypeID,
		StartsAt:        start,
		DurationMinutes: req.DurationMinutes,
		Status:          StatusPending,
		Notes:           req.Notes,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) CheckAvailability(ctx context.Context, req AvailabilityRequest) (*Availability, error) {
	if err := validateSlot(req.OrganizationID, req.TeamID, req.StartsAt, req.DurationMinutes); err != nil {
		return nil, err
	}

	start := req.StartsAt.UTC()
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	conflicts, err := s.repo.FindOverlapping(ctx, req.OrganizationID, req.TeamID, start, end, "")
	if err != nil {
		return nil, err
	}

	return &Availability{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

// transitions maps each status to the states it may move to. Terminal states
// have no entries; recreating a cancelled visit means a new booking with a
// new id.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func canTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status, actorID string, isSysAdmin bool) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isSysAdmin {
		member, err := s.orgService.IsMember(ctx, b.OrganizationID, actorID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrPermissionDenied
		}
	}

	if !canTransition(b.Status, status) {
		return nil, ErrBadTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	b.Status = status
	return b, nil
}
