package http

import (
	"time"

	"github.com/tidyops/dispatch-backend/internal/customer"
	"github.com/tidyops/dispatch-backend/internal/pkg/request"
)

type CustomerResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	AddressLine    string    `json:"address_line"`
	City           string    `json:"city"`
	PostalCode     string    `json:"postal_code"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewResponse(cu *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             cu.ID,
		OrganizationID: cu.OrganizationID,
		Name:           cu.Name,
		Email:          cu.Email,
		Phone:          cu.Phone,
		AddressLine:    cu.AddressLine,
		City:           cu.City,
		PostalCode:     cu.PostalCode,
		CreatedAt:      cu.CreatedAt,
	}
}

type CreateBody struct {
	OrganizationID string  `json:"organization_id" binding:"required,uuid"`
	Name           string  `json:"name" binding:"required"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone"`
	AddressLine    string  `json:"address_line" binding:"required"`
	City           string  `json:"city" binding:"required"`
	PostalCode     string  `json:"postal_code"`
}

type UpdateBody struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	AddressLine *string `json:"address_line"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postal_code"`
}

type ListQuery struct {
	request.ListParams
	OrganizationID string `form:"organization_id" binding:"required,uuid"`
	City           string `form:"city"`
}
