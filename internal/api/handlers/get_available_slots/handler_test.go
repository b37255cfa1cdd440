package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/blueclipse/myhustle-booking/internal/usecase/get_available_slots"
	"github.com/blueclipse/myhustle-booking/pkg/availability"
	"github.com/blueclipse/myhustle-booking/pkg/logger"
)

type useCaseStub struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = mux.SetURLVars(req, map[string]string{"shopId": "shop-1", "serviceId": "svc-1"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &useCaseStub{resp: &getAvailableSlots.Response{
		Date:        time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		ShopID:      "shop-1",
		ServiceID:   "svc-1",
		SlotMinutes: 60,
		Slots: []availability.TimeSlot{
			{Time: "9:00 AM", Time24: "09:00", IsAvailable: true},
			{Time: "10:00 AM", Time24: "10:00", IsAvailable: false},
		},
	}}

	rec := serve(NewHandler(uc, logger.NewNop()), "/x?date=2026-03-12")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-03-12", uc.got.Date)
	assert.Equal(t, "svc-1", uc.got.ServiceID)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-03-12", body.Date)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "9:00 AM", body.Slots[0].Time)
	assert.False(t, body.Slots[1].IsAvailable)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "missing date", target: "/x", status: http.StatusBadRequest},
		{name: "bad date", target: "/x?date=12-03-2026", err: getAvailableSlots.ErrInvalidDate, status: http.StatusBadRequest},
		{name: "shop", target: "/x?date=2026-03-12", err: getAvailableSlots.ErrShopNotFound, status: http.StatusNotFound},
		{name: "service", target: "/x?date=2026-03-12", err: getAvailableSlots.ErrServiceNotFound, status: http.StatusNotFound},
		{name: "not bookable", target: "/x?date=2026-03-12", err: getAvailableSlots.ErrServiceNotBookable, status: http.StatusBadRequest},
		{name: "internal", target: "/x?date=2026-03-12", err: getAvailableSlots.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&useCaseStub{err: tt.err}, logger.NewNop()), tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
