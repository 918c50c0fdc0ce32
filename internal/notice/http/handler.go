package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tidyops/dispatch-backend/internal/auth"
	"github.com/tidyops/dispatch-backend/internal/notice"
	"github.com/tidyops/dispatch-backend/internal/organization"
	"github.com/tidyops/dispatch-backend/internal/pkg/request"
	"github.com/tidyops/dispatch-backend/internal/pkg/response"
)

type Handler struct {
	service    notice.Service
	orgService organization.Service
}

func NewHandler(service notice.Service, orgService organization.Service) *Handler {
	return &Handler{
		service:    service,
		orgService: orgService,
	}
}

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

// checkPermission checks if the user is an admin or owner of the organization.
func (h *Handler) checkPermission(c *gin.Context, orgID string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}

	ok, err := h.orgService.IsManagerOrAbove(c.Request.Context(), orgID, userID)
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

	filter := notice.Filter{
		OrganizationID: req.OrganizationID,
		Keyword:        req.Keyword,
		Page:           req.Page,
		PageSize:       req.PageSize,
	}
	if req.ActiveOnly {
		now := time.Now().UTC()
		filter.ActiveAt = &now
	}

	notices, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]NoticeResponse, len(notices))
	for i, n := range notices {
		items[i] = NewResponse(n)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	n, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	if !h.checkMembership(c, n.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return
	}

	c.JSON(http.StatusOK, NewResponse(n))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !h.checkPermission(c, body.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only organization admins can post notices"})
		return
	}

	req := notice.CreateRequest{
		OrganizationID: body.OrganizationID,
		Title:          body.Title,
		Body:           body.Body,
		VisibleUntil:   body.VisibleUntil,
		CreatedBy:      auth.GetUserID(c),
	}
	if body.VisibleFrom != nil {
		req.VisibleFrom = *body.VisibleFrom
	}

	n, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrTitleRequired),
			errors.Is(err, notice.ErrBodyRequired),
			errors.Is(err, notice.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, notice.ErrOrgNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewResponse(n))
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
		case errors.Is(err, notice.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	if !h.checkPermission(c, existing.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: permission denied"})
		return
	}

	var body UpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	n, err := h.service.Update(c.Request.Context(), uri.ID, notice.UpdateRequest{
		Title:        body.Title,
		Body:         body.Body,
		VisibleFrom:  body.VisibleFrom,
		VisibleUntil: body.VisibleUntil,
	})
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrTitleRequired),
			errors.Is(err, notice.ErrBodyRequired),
			errors.Is(err, notice.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, notice.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewResponse(n))
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
		case errors.Is(err, notice.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	if !h.checkPermission(c, existing.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: permission denied"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notice deleted"})
}
