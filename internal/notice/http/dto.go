package http

import (
	"time"

	"github.com/tidyops/dispatch-backend/internal/notice"
	"github.com/tidyops/dispatch-backend/internal/pkg/request"
)

type NoticeResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	VisibleFrom    time.Time `json:"visible_from"`
	VisibleUntil   time.Time `json:"visible_until"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewResponse(n *notice.Notice) NoticeResponse {
	return NoticeResponse{
		ID:             n.ID,
		OrganizationID: n.OrganizationID,
		Title:          n.Title,
		Body:           n.Body,
		VisibleFrom:    n.VisibleFrom,
		VisibleUntil:   n.VisibleUntil,
		CreatedBy:      n.CreatedBy,
		CreatedAt:      n.CreatedAt,
	}
}

type CreateBody struct {
	OrganizationID string     `json:"organization_id" binding:"required,uuid"`
	Title          string     `json:"title" binding:"required"`
	Body           string     `json:"body" binding:"required"`
	VisibleFrom    *time.Time `json:"visible_from"`
	VisibleUntil   time.Time  `json:"visible_until" binding:"required"`
}

type UpdateBody struct {
	Title        *string    `json:"title"`
	Body         *string    `json:"body"`
	VisibleFrom  *time.Time `json:"visible_from"`
	VisibleUntil *time.Time `json:"visible_until"`
}

type ListQuery struct {
	request.ListParams
	OrganizationID string `form:"organization_id" binding:"required,uuid"`
	Keyword        string `form:"keyword"`
	ActiveOnly     bool   `form:"active_only"`
}
