package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tidyops/dispatch-backend/internal/auth"
	"github.com/tidyops/dispatch-backend/internal/booking"
	"github.com/tidyops/dispatch-backend/internal/organization"
	"github.com/tidyops/dispatch-backend/internal/pkg/request"
	"github.com/tidyops/dispatch-backend/internal/pkg/response"
	"github.com/tidyops/dispatch-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
	orgService  organization.Service
}

func NewHandler(service booking.Service, userService user.Service, orgService organization.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
		orgService:  orgService,
	}
}

// checkIsSysAdmin reports whether the current user is a system admin.
func (h *Handler) checkIsSysAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

// checkOrgAccess reports whether the current user may act inside the
// organization: any membership role, or system admin.
func (h *Handler) checkOrgAccess(c *gin.Context, orgID string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}
	if h.checkIsSysAdmin(c, userID) {
		return true
	}
	ok, err := h.orgService.IsMember(c.Request.Context(), orgID, userID)
	if err != nil {
		return false
	}
	return ok
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkOrgAccess(c, body.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return
	}

	req := booking.CreateRequest{
		OrganizationID:  body.OrganizationID,
		TeamID:          body.TeamID,
		CustomerID:      body.CustomerID,
		ServiceTypeID:   body.ServiceTypeID,
		StartsAt:        body.StartsAt,
		DurationMinutes: body.DurationMinutes,
		Notes:           body.Notes,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	var query AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if !h.checkOrgAccess(c, query.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return
	}

	avail, err := h.service.CheckAvailability(c.Request.Context(), booking.AvailabilityRequest{
		OrganizationID:  query.OrganizationID,
		TeamID:          query.TeamID,
		StartsAt:        query.StartsAt,
		DurationMinutes: query.DurationMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(avail))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkOrgAccess(c, b.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var query ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if !h.checkOrgAccess(c, query.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return
	}

	filter := booking.Filter{
		OrganizationID: query.OrganizationID,
		TeamID:         query.TeamID,
		CustomerID:     query.CustomerID,
		Status:         query.Status,
		StartsFrom:     query.StartsFrom,
		StartsUntil:    query.StartsUntil,
		Page:           query.Page,
		PageSize:       query.PageSize,
		SortBy:         query.SortBy,
		SortOrder:      strings.ToUpper(query.SortOrder),
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	b, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, booking.Status(body.Status), userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
