package get_owner_bookings

import (
	"net/http"

	"github.com/blueclipse/myhustle-booking/internal/api/handlers"
	"github.com/blueclipse/myhustle-booking/internal/api/middleware"
)

const msgMissingUserID = "missing user ID"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/me/bookings
// Бронирования всех магазинов текущего пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /owners/me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListForOwner(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /owners/me/bookings - Failed to get bookings: owner_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/me/bookings - Bookings retrieved successfully: owner_id=%s, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
