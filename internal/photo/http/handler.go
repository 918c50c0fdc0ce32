package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tidyops/dispatch-backend/internal/auth"
	"github.com/tidyops/dispatch-backend/internal/booking"
	"github.com/tidyops/dispatch-backend/internal/organization"
	"github.com/tidyops/dispatch-backend/internal/photo"
	"github.com/tidyops/dispatch-backend/internal/pkg/request"
	"github.com/tidyops/dispatch-backend/internal/pkg/response"
)

// maxPhotoSizeBytes limits uploads to 10 MiB per photo.
const maxPhotoSizeBytes = 10 << 20

type Handler struct {
	service        photo.Service
	bookingService booking.Service
	orgService     organization.Service
}

func NewHandler(service photo.Service, bookingService booking.Service, orgService organization.Service) *Handler {
	return &Handler{
		service:        service,
		bookingService: bookingService,
		orgService:     orgService,
	}
}

// resolveBookingOrg looks up the booking and checks the caller belongs to
// its organization. Returns false if it already wrote a response.
func (h *Handler) resolveBookingOrg(c *gin.Context, bookingID string) bool {
	b, err := h.bookingService.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return false
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return false
	}

	ok, err := h.orgService.IsMember(c.Request.Context(), b.OrganizationID, userID)
	if err != nil || !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this organization"})
		return false
	}
	return true
}

// Upload attaches a photo to a booking.
func (h *Handler) Upload(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.resolveBookingOrg(c, uri.ID) {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}

	p, err := h.service.Upload(c.Request.Context(), photo.UploadInput{
		FileHeader:   fileHeader,
		BookingID:    uri.ID,
		UploaderID:   auth.GetUserID(c),
		MaxSizeBytes: maxPhotoSizeBytes,
	})
	if err != nil {
		switch {
		case errors.Is(err, photo.ErrNotAnImage), errors.Is(err, photo.ErrTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, photo.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewResponse(p))
}

// ListByBooking returns the photos attached to a booking.
func (h *Handler) ListByBooking(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.resolveBookingOrg(c, uri.ID) {
		return
	}

	photos, err := h.service.ListByBooking(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = NewResponse(p)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ServePhoto streams the photo content by ID.
func (h *Handler) ServePhoto(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo ID is required"})
		return
	}

	stream, p, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, photo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}
	defer stream.Close()

	c.Header("Content-Type", p.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started; nothing useful to send.
		return
	}
}

// ServeThumbnail streams the thumbnail image by photo ID.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo ID is required"})
		return
	}

	stream, p, err := h.service.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, photo.ErrNotFound), errors.Is(err, photo.ErrNoThumbnail):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}
	defer stream.Close()

	// Thumbnails are always JPEG.
	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}

// Delete removes a photo and its stored content.
func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	p, err := h.service.Get(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, photo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	if !h.resolveBookingOrg(c, p.BookingID) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "photo deleted"})
}
