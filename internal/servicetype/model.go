package servicetype

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("service type not found")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrDuplicateName       = errors.New("service type name already exists in this organization")
	ErrInvalidDuration     = errors.New("base duration must be positive")
	ErrInvalidOrganization = errors.New("invalid organization_id")
)

// ServiceType is a catalog entry: the kind of cleaning a booking delivers
// (standard, deep, move-out) with its default visit length.
type ServiceType struct {
	ID                  string
	OrganizationID      string
	Name                string
	BaseDurationMinutes int
	CreatedAt           time.Time
}

// Filter defines parameters for listing service types.
type Filter struct {
	OrganizationID string
	Page           int
	PageSize       int
}
