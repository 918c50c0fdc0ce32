package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tidyops/dispatch-backend/internal/auth"
	"github.com/tidyops/dispatch-backend/internal/customer"
	"github.com/tidyops/dispatch-backend/internal/organization"
	"github.com/tidyops/dispatch-backend/internal/pkg/request"
	"github.com/tidyops/dispatch-backend/internal/pkg/response"
)

type Handler struct {
	service    customer.Service
	orgService organization.Service
}

func NewHandler(service customer.Service, orgService organization.Service) *Handler {
	return &Handler{
		service:    service,
		orgService: orgService,
	}
}

// checkMembership checks if the user belongs to the organization. Any role
// can manage customer records; dispatchers do this all day.
func (h *Handler) checkMembership(c *gin.Context, orgID string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}

	ok, err := h.orgService.IsMember(c.Request.Context(), orgID, userID)
	if err != nil {
		return false
	}
	return ok
}

func (h *Handler) List(c *gin.Context) {
	var req ListQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if !h.checkMembership(c, req.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return
	}

	customers, total, err := h.service.List(c.Request.Context(), customer.Filter{
		OrganizationID: req.OrganizationID,
		City:           req.City,
		Page:           req.Page,
		PageSize:       req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CustomerResponse, len(customers))
	for i, cu := range customers {
		items[i] = NewResponse(cu)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	cu, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	if !h.checkMembership(c, cu.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return
	}

	c.JSON(http.StatusOK, NewResponse(cu))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !h.checkMembership(c, body.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return
	}

	cu, err := h.service.Create(c.Request.Context(), customer.CreateRequest{
		OrganizationID: body.OrganizationID,
		Name:           body.Name,
		Email:          body.Email,
		Phone:          body.Phone,
		AddressLine:    body.AddressLine,
		City:           body.City,
		PostalCode:     body.PostalCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrEmptyName),
			errors.Is(err, customer.ErrEmptyAddress),
			errors.Is(err, customer.ErrInvalidOrganization):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewResponse(cu))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	if !h.checkMembership(c, existing.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return
	}

	var body UpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cu, err := h.service.Update(c.Request.Context(), uri.ID, customer.UpdateRequest{
		Name:        body.Name,
		Email:       body.Email,
		Phone:       body.Phone,
		AddressLine: body.AddressLine,
		City:        body.City,
		PostalCode:  body.PostalCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrEmptyName), errors.Is(err, customer.ErrEmptyAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, customer.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewResponse(cu))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	if !h.checkMembership(c, existing.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}
