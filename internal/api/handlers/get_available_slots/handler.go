package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/blueclipse/myhustle-booking/internal/api/handlers"
	getAvailableSlots "github.com/blueclipse/myhustle-booking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate        = "date is required"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidInput       = "invalid request parameters"
	msgShopNotFound       = "shop not found"
	msgServiceNotFound    = "service not found"
	msgServiceNotBookable = "service is not available for booking"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/services/{serviceId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shopID, serviceID := vars["shopId"], vars["serviceId"]

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /shops/{id}/services/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ShopID:    shopID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/services/{id}/available-slots - Shop not found: shop_id=%s", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /shops/{id}/services/{id}/available-slots - Service not found: shop_id=%s, service_id=%s",
				shopID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotBookable):
			handlers.RespondBadRequest(w, msgServiceNotBookable)

		default:
			h.logger.Error("GET /shops/{id}/services/{id}/available-slots - Failed to get slots: shop_id=%s, service_id=%s, error=%v",
				shopID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/services/{id}/available-slots - Slots retrieved: shop_id=%s, service_id=%s, slots_count=%d",
		shopID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
