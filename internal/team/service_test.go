package team

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidyops/dispatch-backend/internal/organization"
)

const testOrgID = "11111111-1111-4111-8111-111111111111"

type memRepo struct {
	seq   int
	teams map[string]*Team
}

func newMemRepo() *memRepo {
	return &memRepo{teams: make(map[string]*Team)}
}

func (r *memRepo) Create(_ context.Context, t *Team) error {
	r.seq++
	t.ID = fmt.Sprintf("team-%d", r.seq)
	stored := *t
	r.teams[t.ID] = &stored
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*Team, int, error) {
	var result []*Team
	for _, t := range r.teams {
		cp := *t
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (r *memRepo) Update(_ context.Context, t *Team) error {
	if _, ok := r.teams[t.ID]; !ok {
		return ErrNotFound
	}
	stored := *t
	r.teams[t.ID] = &stored
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.teams[id]; !ok {
		return ErrNotFound
	}
	delete(r.teams, id)
	return nil
}

// stubOrgService recognizes a single organization.
type stubOrgService struct {
	organization.Service
}

func (s *stubOrgService) GetByID(_ context.Context, id string) (*organization.Organization, error) {
	if id != testOrgID {
		return nil, organization.ErrOrgNotFound
	}
	return &organization.Organization{ID: id, Name: "Tidy Ops", IsActive: true}, nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, &stubOrgService{}), repo
}

func TestCreateTeam(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("success trims name", func(t *testing.T) {
		created, err := svc.Create(ctx, CreateRequest{
			OrganizationID: testOrgID,
			Name:           "  Crew A  ",
			Capacity:       3,
		})
		require.NoError(t, err)
		assert.Equal(t, "Crew A", created.Name)
		assert.True(t, created.IsActive)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{OrganizationID: testOrgID, Name: "   ", Capacity: 2})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("non positive capacity", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{OrganizationID: testOrgID, Name: "Crew B", Capacity: 0})
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	})

	t.Run("unknown organization", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{
			OrganizationID: "22222222-2222-4222-8222-222222222222",
			Name:           "Crew C",
			Capacity:       2,
		})
		assert.ErrorIs(t, err, ErrInvalidOrganization)
	})
}

func TestUpdateTeam(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{OrganizationID: testOrgID, Name: "Crew A", Capacity: 2})
	require.NoError(t, err)

	t.Run("deactivate", func(t *testing.T) {
		inactive := false
		updated, err := svc.Update(ctx, created.ID, UpdateRequest{IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		blank := " "
		_, err := svc.Update(ctx, created.ID, UpdateRequest{Name: &blank})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("missing team", func(t *testing.T) {
		name := "Renamed"
		_, err := svc.Update(ctx, "team-404", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteTeam(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{OrganizationID: testOrgID, Name: "Crew A", Capacity: 2})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, repo.teams)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}
