package check_date_range

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/blueclipse/myhustle-booking/internal/api/handlers"
	checkDateRange "github.com/blueclipse/myhustle-booking/internal/usecase/check_date_range"
)

const (
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidInput       = "start and end are required, end must not be before start"
	msgServiceNotFound    = "service not found"
	msgMultiDayNotAllowed = "this service does not allow multi-day booking"
	msgRangeTooLong       = "date range is too long"
)

// DateRangeResponse HTTP response model
type DateRangeResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Days      int    `json:"days"`
	Blocked   bool   `json:"blocked"`
	Available bool   `json:"available"`
}

type Handler struct {
	useCase CheckDateRangeUseCase
	logger  Logger
}

func NewHandler(useCase CheckDateRangeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/services/{serviceId}/date-range
// Query params: start, end (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	req := &checkDateRange.Request{
		ShopID:    vars["shopId"],
		ServiceID: vars["serviceId"],
		Start:     query.Get("start"),
		End:       query.Get("end"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkDateRange.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, checkDateRange.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkDateRange.ErrMultiDayNotAllowed):
			handlers.RespondBadRequest(w, msgMultiDayNotAllowed)

		case errors.Is(err, checkDateRange.ErrRangeTooLong):
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, checkDateRange.ErrServiceNotFound):
			h.logger.Warn("GET /shops/{id}/services/{id}/date-range - Service not found: shop_id=%s, service_id=%s",
				req.ShopID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /shops/{id}/services/{id}/date-range - Failed: shop_id=%s, service_id=%s, error=%v",
				req.ShopID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &DateRangeResponse{
		Start:     result.Start,
		End:       result.End,
		Days:      result.Days,
		Blocked:   result.Blocked,
		Available: !result.Blocked,
	})
}
