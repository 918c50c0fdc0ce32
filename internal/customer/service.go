package customer

import (
	"context"
	"strings"

	"github.com/tidyops/dispatch-backend/internal/organization"
)

type CreateRequest struct {
	OrganizationID string
	Name           string
	Email          *string
	Phone          *string
	AddressLine    string
	City           string
	PostalCode     string
}

type UpdateRequest struct {
	Name        *string
	Email       *string
	Phone       *string
	AddressLine *string
	City        *string
	PostalCode  *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, filter Filter) ([]*Customer, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Customer, error)
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

func (s *service) Create(ctx context.Context, req CreateRequest) (*Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(req.AddressLine) == "" || strings.TrimSpace(req.City) == "" {
		return nil, ErrEmptyAddress
	}
	if req.OrganizationID == "" {
		return nil, ErrInvalidOrganization
	}

	if _, err := s.orgService.GetByID(ctx, req.OrganizationID); err != nil {
		return nil, ErrInvalidOrganization
	}

	c := &Customer{
		OrganizationID: req.OrganizationID,
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		Phone:          req.Phone,
		AddressLine:    strings.TrimSpace(req.AddressLine),
		City:           strings.TrimSpace(req.City),
		PostalCode:     strings.TrimSpace(req.PostalCode),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Customer, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.AddressLine != nil {
		if strings.TrimSpace(*req.AddressLine) == "" {
			return nil, ErrEmptyAddress
		}
		c.AddressLine = strings.TrimSpace(*req.AddressLine)
	}
	if req.City != nil {
		if strings.TrimSpace(*req.City) == "" {
			return nil, ErrEmptyAddress
		}
		c.City = strings.TrimSpace(*req.City)
	}
	if req.PostalCode != nil {
		c.PostalCode = strings.TrimSpace(*req.PostalCode)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
