package team

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("team not found")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrInvalidCapacity     = errors.New("capacity must be positive")
	ErrInvalidOrganization = errors.New("invalid organization_id")
)

// Team is a cleaning crew whose time is reserved by bookings.
type Team struct {
	ID             string
	OrganizationID string
	Name           string
	Capacity       int
	IsActive       bool
	CreatedAt      time.Time
}

// Filter defines parameters for listing teams.
type Filter struct {
	OrganizationID string
	IsActive       *bool
	Page           int
	PageSize       int
}
