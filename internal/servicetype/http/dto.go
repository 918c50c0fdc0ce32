package http

import (
	"time"

	"github.com/tidyops/dispatch-backend/internal/pkg/request"
	"github.com/tidyops/dispatch-backend/internal/servicetype"
)

type ServiceTypeResponse struct {
	ID                  string    `json:"id"`
	OrganizationID      string    `json:"organization_id"`
	Name                string    `json:"name"`
	BaseDurationMinutes int       `json:"base_duration_minutes"`
	CreatedAt           time.Time `json:"created_at"`
}

func NewResponse(st *servicetype.ServiceType) ServiceTypeResponse {
	return ServiceTypeResponse{
		ID:                  st.ID,
		OrganizationID:      st.OrganizationID,
		Name:                st.Name,
		BaseDurationMinutes: st.BaseDurationMinutes,
		CreatedAt:           st.CreatedAt,
	}
}

type CreateBody struct {
	OrganizationID      string `json:"organization_id" binding:"required,uuid"`
	Name                string `json:"name" binding:"required"`
	BaseDurationMinutes int    `json:"base_duration_minutes" binding:"required,min=1"`
}

type UpdateBody struct {
	Name                *string `json:"name"`
	BaseDurationMinutes *int    `json:"base_duration_minutes" binding:"omitempty,min=1"`
}

type ListQuery struct {
	request.ListParams
	OrganizationID string `form:"organization_id" binding:"required,uuid"`
}
