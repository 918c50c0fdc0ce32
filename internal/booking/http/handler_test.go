package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidyops/dispatch-backend/internal/booking"
	"github.com/tidyops/dispatch-backend/internal/organization"
	"github.com/tidyops/dispatch-backend/internal/pkg/response"
	"github.com/tidyops/dispatch-backend/internal/user"
)

const (
	orgID      = "11111111-1111-4111-8111-111111111111"
	teamID     = "22222222-2222-4222-8222-222222222222"
	customerID = "33333333-3333-4333-8333-333333333333"
	serviceID  = "44444444-4444-4444-8444-444444444444"
	memberID   = "55555555-5555-4555-8555-555555555555"
)

type stubBookingService struct {
	createFn       func(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error)
	availabilityFn func(ctx context.Context, req booking.AvailabilityRequest) (*booking.Availability, error)
	getFn          func(ctx context.Context, id string) (*booking.Booking, error)
	updateStatusFn func(ctx context.Context, id string, status booking.Status, actorID string, isSysAdmin bool) (*booking.Booking, error)
}

func (s *stubBookingService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	return s.createFn(ctx, req)
}

func (s *stubBookingService) CheckAvailability(ctx context.Context, req booking.AvailabilityRequest) (*booking.Availability, error) {
	return s.availabilityFn(ctx, req)
}

func (s *stubBookingService) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookingService) List(context.Context, booking.Filter) ([]*booking.Booking, int, error) {
	return nil, 0, nil
}

func (s *stubBookingService) UpdateStatus(ctx context.Context, id string, status booking.Status, actorID string, isSysAdmin bool) (*booking.Booking, error) {
	return s.updateStatusFn(ctx, id, status, actorID, isSysAdmin)
}

type stubUserService struct {
	user.Service
}

func (s *stubUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	return &user.User{ID: id, IsActive: true}, nil
}

type stubOrgService struct {
	organization.Service
}

func (s *stubOrgService) IsMember(_ context.Context, org, userID string) (bool, error) {
	return org == orgID && userID == memberID, nil
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandler(svc, &stubUserService{}, &stubOrgService{})
	fakeAuth := func(c *gin.Context) {
		c.Set("userID", memberID)
		c.Next()
	}
	RegisterRoutes(r.Group("/v1"), h, fakeAuth)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking() *booking.Booking {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &booking.Booking{
		ID:              "66666666-6666-4666-8666-666666666666",
		OrganizationID:  orgID,
		TeamID:          teamID,
		CustomerID:      customerID,
		ServiceTypeID:   serviceID,
		StartsAt:        start,
		DurationMinutes: 60,
		Status:          booking.StatusPending,
	}
}

func validBody() CreateBookingBody {
	return CreateBookingBody{
		OrganizationID:  orgID,
		TeamID:          teamID,
		CustomerID:      customerID,
		ServiceTypeID:   serviceID,
		StartsAt:        time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	}
}

func TestCreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubBookingService{
			createFn: func(_ context.Context, req booking.CreateRequest) (*booking.Booking, error) {
				b := sampleBooking()
				b.StartsAt = req.StartsAt
				return b, nil
			},
		}

		w := doJSON(t, newTestRouter(svc), "POST", "/v1/bookings", validBody())
		require.Equal(t, http.StatusCreated, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, resp.StartsAt.Add(time.Hour), resp.EndsAt)
	})

	t.Run("slot conflict maps to 409 with stable message", func(t *testing.T) {
		svc := &stubBookingService{
			createFn: func(context.Context, booking.CreateRequest) (*booking.Booking, error) {
				return nil, booking.ErrSlotUnavailable
			},
		}

		w := doJSON(t, newTestRouter(svc), "POST", "/v1/bookings", validBody())
		require.Equal(t, http.StatusConflict, w.Code)

		var resp response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "slot unavailable", resp.Error)
	})

	t.Run("invalid duration rejected before the service", func(t *testing.T) {
		svc := &stubBookingService{
			createFn: func(context.Context, booking.CreateRequest) (*booking.Booking, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}

		body := validBody()
		body.DurationMinutes = -15

		w := doJSON(t, newTestRouter(svc), "POST", "/v1/bookings", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &stubBookingService{}
		req := httptest.NewRequest("POST", "/v1/bookings", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("foreign organization forbidden", func(t *testing.T) {
		svc := &stubBookingService{
			createFn: func(context.Context, booking.CreateRequest) (*booking.Booking, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}

		body := validBody()
		body.OrganizationID = "99999999-9999-4999-8999-999999999999"

		w := doJSON(t, newTestRouter(svc), "POST", "/v1/bookings", body)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("team not found maps to 404", func(t *testing.T) {
		svc := &stubBookingService{
			createFn: func(context.Context, booking.CreateRequest) (*booking.Booking, error) {
				return nil, booking.ErrTeamNotFound
			},
		}

		w := doJSON(t, newTestRouter(svc), "POST", "/v1/bookings", validBody())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	t.Run("conflicts reported", func(t *testing.T) {
		svc := &stubBookingService{
			availabilityFn: func(context.Context, booking.AvailabilityRequest) (*booking.Availability, error) {
				return &booking.Availability{
					Available: false,
					Conflicts: []*booking.Booking{sampleBooking()},
				}, nil
			},
		}

		path := "/v1/bookings/availability?organization_id=" + orgID +
			"&team_id=" + teamID +
			"&starts_at=2026-03-01T10:30:00Z&duration_minutes=60"

		w := doJSON(t, newTestRouter(svc), "GET", path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp AvailabilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Available)
		assert.Len(t, resp.Conflicts, 1)
	})

	t.Run("missing parameters", func(t *testing.T) {
		svc := &stubBookingService{}
		w := doJSON(t, newTestRouter(svc), "GET", "/v1/bookings/availability?team_id="+teamID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		svc := &stubBookingService{
			updateStatusFn: func(_ context.Context, id string, status booking.Status, actorID string, isSysAdmin bool) (*booking.Booking, error) {
				assert.Equal(t, memberID, actorID)
				assert.False(t, isSysAdmin)
				b := sampleBooking()
				b.Status = status
				return b, nil
			},
		}

		b := sampleBooking()
		w := doJSON(t, newTestRouter(svc), "PATCH", "/v1/bookings/"+b.ID+"/status", UpdateStatusBody{Status: "confirmed"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("unknown status rejected by binding", func(t *testing.T) {
		svc := &stubBookingService{}
		b := sampleBooking()
		w := doJSON(t, newTestRouter(svc), "PATCH", "/v1/bookings/"+b.ID+"/status", UpdateStatusBody{Status: "archived"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad transition maps to 400", func(t *testing.T) {
		svc := &stubBookingService{
			updateStatusFn: func(context.Context, string, booking.Status, string, bool) (*booking.Booking, error) {
				return nil, booking.ErrBadTransition
			},
		}

		b := sampleBooking()
		w := doJSON(t, newTestRouter(svc), "PATCH", "/v1/bookings/"+b.ID+"/status", UpdateStatusBody{Status: "completed"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBooking(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubBookingService{
			getFn: func(_ context.Context, id string) (*booking.Booking, error) {
				b := sampleBooking()
				b.ID = id
				return b, nil
			},
		}

		b := sampleBooking()
		w := doJSON(t, newTestRouter(svc), "GET", "/v1/bookings/"+b.ID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		svc := &stubBookingService{
			getFn: func(context.Context, string) (*booking.Booking, error) {
				return nil, booking.ErrNotFound
			},
		}

		b := sampleBooking()
		w := doJSON(t, newTestRouter(svc), "GET", "/v1/bookings/"+b.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
