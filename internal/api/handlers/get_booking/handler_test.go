package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/blueclipse/myhustle-booking/internal/api/middleware"
	"github.com/blueclipse/myhustle-booking/internal/service/bookings"
	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
	"github.com/blueclipse/myhustle-booking/pkg/logger"
)

type serviceStub struct {
	err error
}

func (s *serviceStub) GetByID(_ context.Context, id string, _ string) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: "PENDING"}, nil
}

func get(h *Handler, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/b-1", nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": "b-1"})
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	rec := get(NewHandler(&serviceStub{}, logger.NewNop()), "cust-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"b-1"`)

	assert.Equal(t, http.StatusUnauthorized, get(NewHandler(&serviceStub{}, logger.NewNop()), "").Code)
	assert.Equal(t, http.StatusNotFound,
		get(NewHandler(&serviceStub{err: bookings.ErrBookingNotFound}, logger.NewNop()), "cust-1").Code)
	assert.Equal(t, http.StatusForbidden,
		get(NewHandler(&serviceStub{err: bookings.ErrAccessDenied}, logger.NewNop()), "cust-1").Code)
	assert.Equal(t, http.StatusInternalServerError,
		get(NewHandler(&serviceStub{err: bookings.ErrInternal}, logger.NewNop()), "cust-1").Code)
}
