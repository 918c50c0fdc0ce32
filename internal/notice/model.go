package notice

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("notice not found")
	ErrTitleRequired  = errors.New("title is required")
	ErrBodyRequired   = errors.New("body is required")
	ErrInvalidWindow  = errors.New("visible_until must be after visible_from")
	ErrOrgNotFound    = errors.New("organization not found")
	ErrAuthorRequired = errors.New("author is required")
)

// Notice is a dispatch bulletin shown to an organization's staff:
// schedule changes, closures, supply reminders.
type Notice struct {
	ID             string
	OrganizationID string
	Title          string
	Body           string
	VisibleFrom    time.Time
	VisibleUntil   time.Time
	CreatedBy      string
	CreatedAt      time.Time
}

// Filter defines parameters for listing notices.
type Filter struct {
	OrganizationID string
	Keyword        string
	// ActiveAt limits results to notices visible at the given instant.
	ActiveAt *time.Time
	Page     int
	PageSize int
}
