package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("customer not found")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrEmptyAddress        = errors.New("address cannot be empty")
	ErrInvalidOrganization = errors.New("invalid organization_id")
)

// Customer is a client of a cleaning business, holding the service address
// that visits are dispatched to.
type Customer struct {
	ID             string
	OrganizationID string
	Name           string
	Email          *string
	Phone          *string
	AddressLine    string
	City           string
	PostalCode     string
	CreatedAt      time.Time
}

// Filter defines parameters for listing customers.
type Filter struct {
	OrganizationID string
	City           string
	Page           int
	PageSize       int
}
