package http

import (
	"time"

	"github.com/tidyops/dispatch-backend/internal/pkg/request"
	"github.com/tidyops/dispatch-backend/internal/team"
)

type TeamResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Capacity       int       `json:"capacity"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewResponse(t *team.Team) TeamResponse {
	return TeamResponse{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		Name:           t.Name,
		Capacity:       t.Capacity,
		IsActive:       t.IsActive,
		CreatedAt:      t.CreatedAt,
	}
}

type CreateBody struct {
	OrganizationID string `json:"organization_id" binding:"required,uuid"`
	Name           string `json:"name" binding:"required"`
	Capacity       int    `json:"capacity" binding:"omitempty,min=1"`
}

type UpdateBody struct {
	Name     *string `json:"name" binding:"omitempty"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

type ListQuery struct {
	request.ListParams
	OrganizationID string `form:"organization_id" binding:"required,uuid"`
	IsActive       *bool  `form:"is_active"`
}
