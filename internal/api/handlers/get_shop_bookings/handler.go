package get_shop_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/blueclipse/myhustle-booking/internal/api/handlers"
	"github.com/blueclipse/myhustle-booking/internal/api/middleware"
	"github.com/blueclipse/myhustle-booking/internal/service/bookings"
	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
	"github.com/blueclipse/myhustle-booking/pkg/ptr"
)

// scopeToday возвращает принятые бронирования на сегодня
const scopeToday = "today"

const (
	msgMissingUserID = "missing user ID"
	msgInvalidParams = "invalid query parameters"
	msgInvalidStatus = "invalid status filter"
	msgInvalidEmail  = "invalid email filter"
	msgShopNotFound  = "shop not found"
	msgForbidden     = "access denied"
)

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

// Handle GET /api/v1/shops/{shopId}/bookings
// Query params: status, email (опционально), scope=today (опционально, без фильтров)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /shops/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	scope := query.Get("scope")
	status := query.Get("status")
	email := query.Get("email")

	var (
		result *models.BookingListResponse
		err    error
	)

	switch scope {
	case "":
		req := &models.ListShopBookingsRequest{UserID: userID, ShopID: shopID}
		if status != "" {
			req.Status = ptr.Ptr(status)
		}
		if email != "" {
			req.CustomerEmail = ptr.Ptr(email)
		}
		result, err = h.service.ListForShop(r.Context(), req)

	case scopeToday:
		if status != "" || email != "" {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		result, err = h.service.TodaysAccepted(r.Context(), shopID, userID)

	default:
		h.logger.Warn("GET /shops/{id}/bookings - Unknown scope: %s", scope)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/bookings - Access denied: shop_id=%s, user_id=%s", shopID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidEmail)

		default:
			h.logger.Error("GET /shops/{id}/bookings - Failed to get bookings: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/bookings - Bookings retrieved successfully: shop_id=%s, count=%d",
		shopID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
