package organization

import (
	"context"
	"errors"
	"strings"

	"github.com/tidyops/dispatch-backend/internal/user"
)

// UpdateOrganizationRequest defines the fields that can be updated.
type UpdateOrganizationRequest struct {
	Name     *string
	IsActive *bool
}

// Service defines business logic for organizations and their memberships.
type Service interface {
	Create(ctx context.Context, name string) (*Organization, error)
	GetByID(ctx context.Context, id string) (*Organization, error)
	List(ctx context.Context, filter OrganizationFilter) ([]*Organization, int, error)
	Update(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error)
	Delete(ctx context.Context, id string) error

	GetMember(ctx context.Context, orgID string, userID string) (*Member, error)
	AddMember(ctx context.Context, orgID string, userID string, role string) error
	RemoveMember(ctx context.Context, orgID string, userID string) error
	UpdateMemberRole(ctx context.Context, orgID string, userID string, role string) error
	ListMembers(ctx context.Context, orgID string, filter MemberFilter) ([]*Member, int, error)

	// IsMember reports whether the user belongs to the organization in any role.
	IsMember(ctx context.Context, orgID string, userID string) (bool, error)
	// IsManagerOrAbove reports whether the user is an owner or admin.
	IsManagerOrAbove(ctx context.Context, orgID string, userID string) (bool, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

// NewService creates a new organization service.
func NewService(repo Repository, userService user.Service) Service {
	return &service{repo: repo, userService: userService}
}

func (s *service) Create(ctx context.Context, name string) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	org := &Organization{
		Name:     name,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Organization, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter OrganizationFilter) ([]*Organization, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error) {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)
		if newName == "" {
			return nil, ErrNameRequired
		}
		org.Name = newName
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetMember(ctx context.Context, orgID string, userID string) (*Member, error) {
	return s.repo.GetMember(ctx, orgID, userID)
}

func (s *service) AddMember(ctx context.Context, orgID string, userID string, role string) error {
	if !validRole(role) {
		return ErrInvalidRole
	}

	// Organization and user must both exist.
	if _, err := s.repo.GetByID(ctx, orgID); err != nil {
		return err
	}
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return err
	}

	return s.repo.AddMember(ctx, orgID, userID, role)
}

func (s *service) RemoveMember(ctx context.Context, orgID string, userID string) error {
	return s.repo.RemoveMember(ctx, orgID, userID)
}

func (s *service) UpdateMemberRole(ctx context.Context, orgID string, userID string, role string) error {
	if !validRole(role) {
		return ErrInvalidRole
	}
	return s.repo.UpdateMemberRole(ctx, orgID, userID, role)
}

func (s *service) ListMembers(ctx context.Context, orgID string, filter MemberFilter) ([]*Member, int, error) {
	return s.repo.ListMembers(ctx, orgID, filter)
}

func (s *service) IsMember(ctx context.Context, orgID string, userID string) (bool, error) {
	_, err := s.repo.GetMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) IsManagerOrAbove(ctx context.Context, orgID string, userID string) (bool, error) {
	m, err := s.repo.GetMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Role == RoleOwner || m.Role == RoleAdmin, nil
}

func validRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}
