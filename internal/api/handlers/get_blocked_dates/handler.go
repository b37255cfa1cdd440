package get_blocked_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/blueclipse/myhustle-booking/internal/api/handlers"
	getBlockedDates "github.com/blueclipse/myhustle-booking/internal/usecase/get_blocked_dates"
)

const (
	msgInvalidDate     = "invalid date format, expected YYYY-MM-DD"
	msgInvalidInput    = "from and to are required, to must not be before from"
	msgRangeTooLong    = "date range is too long"
	msgServiceNotFound = "service not found"
)

type Handler struct {
	useCase GetBlockedDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetBlockedDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/services/{serviceId}/blocked-dates
// Query params: from, to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	req := &getBlockedDates.Request{
		ShopID:    vars["shopId"],
		ServiceID: vars["serviceId"],
		From:      query.Get("from"),
		To:        query.Get("to"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getBlockedDates.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getBlockedDates.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getBlockedDates.ErrRangeTooLong):
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getBlockedDates.ErrServiceNotFound):
			h.logger.Warn("GET /shops/{id}/services/{id}/blocked-dates - Service not found: shop_id=%s, service_id=%s",
				req.ShopID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /shops/{id}/services/{id}/blocked-dates - Failed: shop_id=%s, service_id=%s, error=%v",
				req.ShopID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
