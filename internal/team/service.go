package team

import (
	"context"
	"strings"

	"github.com/tidyops/dispatch-backend/internal/organization"
)

type CreateRequest struct {
	OrganizationID string
	Name           string
	Capacity       int
}

type UpdateRequest struct {
	Name     *string
	Capacity *int
	IsActive *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Team, error)
	GetByID(ctx context.Context, id string) (*Team, error)
	List(ctx context.Context, filter Filter) ([]*Team, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Team, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	orgService organization.Service
}

func NewService(repo Repository, orgService organization.Service) Service {
	return &service{
		repo:       repo,
		orgService: orgService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Team, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.OrganizationID == "" {
		return nil, ErrInvalidOrganization
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	// Organization must exist and be active.
	if _, err := s.orgService.GetByID(ctx, req.OrganizationID); err != nil {
		return nil, ErrInvalidOrganization
	}

	t := &Team{
		OrganizationID: req.OrganizationID,
		Name:           strings.TrimSpace(req.Name),
		Capacity:       req.Capacity,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Team, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Team, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Team, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		t.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
