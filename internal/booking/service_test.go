package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidyops/dispatch-backend/internal/organization"
	"github.com/tidyops/dispatch-backend/internal/team"
)

const (
	testOrgID      = "8c6b54d4-54f5-4e45-9d0c-111111111111"
	testTeamID     = "8c6b54d4-54f5-4e45-9d0c-222222222222"
	testCustomerID = "8c6b54d4-54f5-4e45-9d0c-333333333333"
	testServiceID  = "8c6b54d4-54f5-4e45-9d0c-444444444444"
	testUserID     = "8c6b54d4-54f5-4e45-9d0c-555555555555"
)

// memRepo is an in-memory Repository whose Create enforces the slot
// constraints atomically under a single lock, the way the database does.
type memRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: make(map[string]*Booking)}
}

func (r *memRepo) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	end := b.EndsAt()
	for _, existing := range r.bookings {
		if existing.OrganizationID != b.OrganizationID || existing.TeamID != b.TeamID {
			continue
		}
		if OverlapsBooking(existing, b.StartsAt, end) {
			return ErrSlotUnavailable
		}
	}

	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt

	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *memRepo) FindOverlapping(_ context.Context, orgID, teamID string, start, end time.Time, excludeID string) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Booking
	for _, b := range r.bookings {
		if b.OrganizationID != orgID || b.TeamID != teamID || b.ID == excludeID {
			continue
		}
		if OverlapsBooking(b, start, end) {
			cp := *b
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Booking
	for _, b := range r.bookings {
		cp := *b
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// stubTeamService serves a fixed set of teams.
type stubTeamService struct {
	teams map[string]*team.Team
}

func (s *stubTeamService) GetByID(_ context.Context, id string) (*team.Team, error) {
	t, ok := s.teams[id]
	if !ok {
		return nil, team.ErrNotFound
	}
	return t, nil
}

func (s *stubTeamService) Create(context.Context, team.CreateRequest) (*team.Team, error) {
	panic("not used")
}

func (s *stubTeamService) List(context.Context, team.Filter) ([]*team.Team, int, error) {
	panic("not used")
}

func (s *stubTeamService) Update(context.Context, string, team.UpdateRequest) (*team.Team, error) {
	panic("not used")
}

func (s *stubTeamService) Delete(context.Context, string) error {
	panic("not used")
}

// stubOrgService answers membership checks from a fixed set.
type stubOrgService struct {
	organization.Service

	members map[string]bool // orgID + "/" + userID
}

func (s *stubOrgService) IsMember(_ context.Context, orgID, userID string) (bool, error) {
	return s.members[orgID+"/"+userID], nil
}

func newTestService(repo Repository) Service {
	teams := &stubTeamService{teams: map[string]*team.Team{
		testTeamID: {ID: testTeamID, OrganizationID: testOrgID, Name: "Crew A", Capacity: 2, IsActive: true},
	}}
	orgs := &stubOrgService{members: map[string]bool{
		testOrgID + "/" + testUserID: true,
	}}
	return NewService(repo, teams, orgs)
}

func validCreateRequest(start time.Time, minutes int) CreateRequest {
	return CreateRequest{
		OrganizationID:  testOrgID,
		TeamID:          testTeamID,
		CustomerID:      testCustomerID,
		ServiceTypeID:   testServiceID,
		StartsAt:        start,
		DurationMinutes: minutes,
	}
}

func TestCreateValidation(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	t.Run("zero duration", func(t *testing.T) {
		req := validCreateRequest(at(10, 0), 0)
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("negative duration", func(t *testing.T) {
		req := validCreateRequest(at(10, 0), -30)
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("zero start time", func(t *testing.T) {
		req := validCreateRequest(time.Time{}, 60)
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidStart)
	})

	t.Run("missing team", func(t *testing.T) {
		req := validCreateRequest(at(10, 0), 60)
		req.TeamID = ""
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing customer", func(t *testing.T) {
		req := validCreateRequest(at(10, 0), 60)
		req.CustomerID = ""
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown team", func(t *testing.T) {
		req := validCreateRequest(at(10, 0), 60)
		req.TeamID = "8c6b54d4-54f5-4e45-9d0c-999999999999"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})

	// Validation failures must not reach storage.
	assert.Empty(t, repo.bookings)
}

func TestCreateCrossTenantTeamIsInvisible(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	req := validCreateRequest(at(10, 0), 60)
	req.OrganizationID = "8c6b54d4-54f5-4e45-9d0c-888888888888"

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestCreateInactiveTeam(t *testing.T) {
	repo := newMemRepo()
	teams := &stubTeamService{teams: map[string]*team.Team{
		testTeamID: {ID: testTeamID, OrganizationID: testOrgID, Name: "Crew A", IsActive: false},
	}}
	svc := NewService(repo, teams, &stubOrgService{})

	_, err := svc.Create(context.Background(), validCreateRequest(at(10, 0), 60))
	assert.ErrorIs(t, err, ErrTeamInactive)
}

func TestCreateAndConflicts(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, validCreateRequest(at(10, 0), 60))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, first.Status)
	assert.Equal(t, at(11, 0), first.EndsAt())

	t.Run("identical slot rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, validCreateRequest(at(10, 0), 60))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("overlapping slot rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, validCreateRequest(at(10, 30), 60))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("containing slot rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, validCreateRequest(at(9, 0), 240))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("touching slot accepted", func(t *testing.T) {
		b, err := svc.Create(ctx, validCreateRequest(at(11, 0), 60))
		require.NoError(t, err)
		assert.Equal(t, at(11, 0), b.StartsAt)
	})

	t.Run("repeated rejection stays stable", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := svc.Create(ctx, validCreateRequest(at(10, 0), 60))
			assert.ErrorIs(t, err, ErrSlotUnavailable)
		}
	})
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, validCreateRequest(at(10, 0), 60))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, StatusCancelled, testUserID, false)
	require.NoError(t, err)

	// The same slot can be booked again; the new visit gets a new identity.
	second, err := svc.Create(ctx, validCreateRequest(at(10, 0), 60))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestConcurrentCreateSameSlot(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	const attempts = 5

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), validCreateRequest(at(10, 0), 60))
		}(i)
	}
	wg.Wait()

	var created, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrSlotUnavailable):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, created, "exactly one concurrent request must win the slot")
	assert.Equal(t, attempts-1, rejected)
	assert.Len(t, repo.bookings, 1)
}

func TestCheckAvailability(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateRequest(at(10, 0), 60))
	require.NoError(t, err)

	t.Run("occupied slot", func(t *testing.T) {
		avail, err := svc.CheckAvailability(ctx, AvailabilityRequest{
			OrganizationID:  testOrgID,
			TeamID:          testTeamID,
			StartsAt:        at(10, 30),
			DurationMinutes: 60,
		})
		require.NoError(t, err)
		assert.False(t, avail.Available)
		assert.Len(t, avail.Conflicts, 1)
	})

	t.Run("free slot", func(t *testing.T) {
		avail, err := svc.CheckAvailability(ctx, AvailabilityRequest{
			OrganizationID:  testOrgID,
			TeamID:          testTeamID,
			StartsAt:        at(11, 0),
			DurationMinutes: 60,
		})
		require.NoError(t, err)
		assert.True(t, avail.Available)
		assert.Empty(t, avail.Conflicts)
	})

	t.Run("invalid duration", func(t *testing.T) {
		_, err := svc.CheckAvailability(ctx, AvailabilityRequest{
			OrganizationID:  testOrgID,
			TeamID:          testTeamID,
			StartsAt:        at(11, 0),
			DurationMinutes: 0,
		})
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})
}

func TestUpdateStatusTransitions(t *testing.T) {
	ctx := context.Background()

	newBooking := func(t *testing.T, svc Service) *Booking {
		t.Helper()
		b, err := svc.Create(ctx, validCreateRequest(at(10, 0), 60))
		require.NoError(t, err)
		return b
	}

	t.Run("full lifecycle", func(t *testing.T) {
		svc := newTestService(newMemRepo())
		b := newBooking(t, svc)

		for _, next := range []Status{StatusConfirmed, StatusInProgress, StatusCompleted} {
			updated, err := svc.UpdateStatus(ctx, b.ID, next, testUserID, false)
			require.NoError(t, err)
			assert.Equal(t, next, updated.Status)
		}
	})

	t.Run("pending cannot complete", func(t *testing.T) {
		svc := newTestService(newMemRepo())
		b := newBooking(t, svc)

		_, err := svc.UpdateStatus(ctx, b.ID, StatusCompleted, testUserID, false)
		assert.ErrorIs(t, err, ErrBadTransition)
	})

	t.Run("terminal states are final", func(t *testing.T) {
		svc := newTestService(newMemRepo())
		b := newBooking(t, svc)

		_, err := svc.UpdateStatus(ctx, b.ID, StatusCancelled, testUserID, false)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, b.ID, StatusPending, testUserID, false)
		assert.ErrorIs(t, err, ErrBadTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := newTestService(newMemRepo())
		b := newBooking(t, svc)

		_, err := svc.UpdateStatus(ctx, b.ID, Status("archived"), testUserID, false)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("non-member denied", func(t *testing.T) {
		svc := newTestService(newMemRepo())
		b := newBooking(t, svc)

		_, err := svc.UpdateStatus(ctx, b.ID, StatusConfirmed, "8c6b54d4-54f5-4e45-9d0c-777777777777", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("system admin bypasses membership", func(t *testing.T) {
		svc := newTestService(newMemRepo())
		b := newBooking(t, svc)

		updated, err := svc.UpdateStatus(ctx, b.ID, StatusConfirmed, "8c6b54d4-54f5-4e45-9d0c-777777777777", true)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc := newTestService(newMemRepo())
		_, err := svc.UpdateStatus(ctx, "booking-404", StatusConfirmed, testUserID, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
