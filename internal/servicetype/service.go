package servicetype

import (
	"context"
	"strings"

	"github.com/tidyops/dispatch-backend/internal/organization"
)

type CreateRequest struct {
	OrganizationID      string
	Name                string
	BaseDurationMinutes int
}

type UpdateRequest struct {
	Name                *string
	BaseDurationMinutes *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ServiceType, error)
	GetByID(ctx context.Context, id string) (*ServiceType, error)
	List(ctx context.Context, filter Filter) ([]*ServiceType, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*ServiceType, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	orgService organization.Service
}

func NewService(repo Repository, orgService organization.Service) Service {
	return &service{repo: repo, orgService: orgService}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*ServiceType, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.BaseDurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.OrganizationID == "" {
		return nil, ErrInvalidOrganization
	}

	if _, err := s.orgService.GetByID(ctx, req.OrganizationID); err != nil {
		return nil, ErrInvalidOrganization
	}

	st := &ServiceType{
		OrganizationID:      req.OrganizationID,
		Name:                strings.TrimSpace(req.Name),
		BaseDurationMinutes: req.BaseDurationMinutes,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ServiceType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*ServiceType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*ServiceType, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		st.Name = strings.TrimSpace(*req.Name)
	}
	if req.BaseDurationMinutes != nil {
		if *req.BaseDurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		st.BaseDurationMinutes = *req.BaseDurationMinutes
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
