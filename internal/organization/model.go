package organization

import (
	"errors"
	"time"
)

var (
	ErrOrgNotFound       = errors.New("organization not found")
	ErrNameRequired      = errors.New("organization name is required")
	ErrInvalidRole       = errors.New("invalid role")
	ErrUserAlreadyMember = errors.New("user is already a member of this organization")
	ErrMemberNotFound    = errors.New("member not found")
)

// Organization is a tenant: a cleaning business operating crews and bookings.
type Organization struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// Roles matching the database check constraint.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Member is a staff account with a role inside an organization.
type Member struct {
	UserID      string
	Email       string
	DisplayName *string
	Role        string
}

// OrganizationFilter defines filter options for listing organizations.
type OrganizationFilter struct {
	Page     int
	PageSize int
}

// MemberFilter defines filter options for listing members.
type MemberFilter struct {
	Page     int
	PageSize int
}
