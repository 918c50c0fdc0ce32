package http

import (
	"time"

	"github.com/tidyops/dispatch-backend/internal/booking"
	"github.com/tidyops/dispatch-backend/internal/pkg/request"
)

type CreateBookingBody struct {
	OrganizationID  string    `json:"organization_id" binding:"required,uuid"`
	TeamID          string    `json:"team_id" binding:"required,uuid"`
	CustomerID      string    `json:"customer_id" binding:"required,uuid"`
	ServiceTypeID   string    `json:"service_type_id" binding:"required,uuid"`
	StartsAt        time.Time `json:"starts_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	Notes           string    `json:"notes"`
}

// Validate performs business-level validation ahead of the service call so
// obviously bad requests never reach it.
func (b *CreateBookingBody) Validate() error {
	if b.DurationMinutes <= 0 {
		return booking.ErrInvalidDuration
	}
	if b.StartsAt.IsZero() {
		return booking.ErrInvalidStart
	}
	return nil
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed in_progress completed cancelled"`
}

// AvailabilityQuery defines query parameters for the availability pre-check.
type AvailabilityQuery struct {
	OrganizationID  string    `form:"organization_id" binding:"required,uuid"`
	TeamID          string    `form:"team_id" binding:"required,uuid"`
	StartsAt        time.Time `form:"starts_at" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	DurationMinutes int       `form:"duration_minutes" binding:"required,min=1"`
}

// ListBookingsQuery defines query parameters for listing bookings.
type ListBookingsQuery struct {
	request.ListParams
	OrganizationID string     `form:"organization_id" binding:"required,uuid"`
	TeamID         string     `form:"team_id" binding:"omitempty,uuid"`
	CustomerID     string     `form:"customer_id" binding:"omitempty,uuid"`
	Status         string     `form:"status" binding:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	StartsFrom     *time.Time `form:"starts_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartsUntil    *time.Time `form:"starts_until" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy         string     `form:"sort_by" binding:"omitempty,oneof=starts_at created_at status"`
	SortOrder      string     `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	OrganizationID  string    `json:"organization_id"`
	TeamID          string    `json:"team_id"`
	TeamName        string    `json:"team_name,omitempty"`
	CustomerID      string    `json:"customer_id"`
	CustomerName    string    `json:"customer_name,omitempty"`
	ServiceTypeID   string    `json:"service_type_id"`
	ServiceTypeName string    `json:"service_type_name,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		OrganizationID:  b.OrganizationID,
		TeamID:          b.TeamID,
		TeamName:        b.TeamName,
		CustomerID:      b.CustomerID,
		CustomerName:    b.CustomerName,
		ServiceTypeID:   b.ServiceTypeID,
		ServiceTypeName: b.ServiceTypeName,
		StartsAt:        b.StartsAt,
		EndsAt:          b.EndsAt(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

type AvailabilityResponse struct {
	Available bool              `json:"available"`
	Conflicts []BookingResponse `json:"conflicts"`
}

func NewAvailabilityResponse(a *booking.Availability) AvailabilityResponse {
	conflicts := make([]BookingResponse, len(a.Conflicts))
	for i, b := range a.Conflicts {
		conflicts[i] = NewBookingResponse(b)
	}
	return AvailabilityResponse{
		Available: a.Available,
		Conflicts: conflicts,
	}
}
