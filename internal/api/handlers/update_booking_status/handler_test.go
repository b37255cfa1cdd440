package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blueclipse/myhustle-booking/internal/api/middleware"
	"github.com/blueclipse/myhustle-booking/internal/service/bookings"
	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
	"github.com/blueclipse/myhustle-booking/pkg/logger"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func patch(h *Handler, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/b-1/status", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "b-1"})
	req = req.WithContext(middleware.WithUserID(req.Context(), "owner-1"))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &serviceMock{}
	svc.On("UpdateStatus", mock.Anything, "b-1", mock.MatchedBy(func(r *models.UpdateStatusRequest) bool {
		return r.UserID == "owner-1" && r.Status == "ACCEPTED" && r.ResponseMessage != nil && *r.ResponseMessage == "see you"
	})).Return(&models.BookingResponse{ID: "b-1", Status: "ACCEPTED"}, nil)

	rec := patch(NewHandler(svc, logger.NewNop()), `{"status":"accepted","responseMessage":" see you "}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ACCEPTED"`)
	svc.AssertExpectations(t)
}

func TestHandle_BlankMessageDropped(t *testing.T) {
	svc := &serviceMock{}
	svc.On("UpdateStatus", mock.Anything, "b-1", mock.MatchedBy(func(r *models.UpdateStatusRequest) bool {
		return r.ResponseMessage == nil
	})).Return(&models.BookingResponse{ID: "b-1", Status: "CANCELLED"}, nil)

	rec := patch(NewHandler(svc, logger.NewNop()), `{"status":"CANCELLED","responseMessage":"  "}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{bookings.ErrBookingNotFound, http.StatusNotFound},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{bookings.ErrInvalidStatus, http.StatusBadRequest},
		{bookings.ErrInvalidInput, http.StatusBadRequest},
		{bookings.ErrInvalidTransition, http.StatusConflict},
		{bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("UpdateStatus", mock.Anything, "b-1", mock.Anything).Return(nil, tt.err)

			rec := patch(NewHandler(svc, logger.NewNop()), `{"status":"COMPLETED"}`)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
