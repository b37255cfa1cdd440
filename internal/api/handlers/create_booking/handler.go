package create_booking

import (
	"errors"
	"net/http"

	"github.com/blueclipse/myhustle-booking/internal/api/handlers"
	"github.com/blueclipse/myhustle-booking/internal/api/middleware"
	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
	createBooking "github.com/blueclipse/myhustle-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgInvalidInput       = "invalid booking data"
	msgInvalidDate        = "invalid booking date"
	msgShopNotFound       = "shop not found"
	msgServiceNotFound    = "service not found"
	msgNotBookable        = "service is not available for booking"
	msgMultiDay           = "this service does not allow multi-day booking"
	msgDateTooFar         = "booking date is too far in the future"
	msgRangeTooLong       = "booking period is too long"
	msgInvalidTimeSlot    = "invalid time slot"
	msgTooLateToBook      = "too late to book this slot"
	msgSlotNotAvailable   = "this time slot is no longer available"
	msgDateBlocked        = "selected dates are not available"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: customer_id=%s, shop_id=%s, date=%s, time=%s",
				userID, req.ShopID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrDateBlocked):
			h.logger.Warn("POST /bookings - Date blocked: customer_id=%s, shop_id=%s, date=%s",
				userID, req.ShopID, req.Date)
			handlers.RespondConflict(w, msgDateBlocked)

		case errors.Is(err, createBooking.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceNotBookable):
			handlers.RespondBadRequest(w, msgNotBookable)

		case errors.Is(err, createBooking.ErrMultiDayNotAllowed):
			handlers.RespondBadRequest(w, msgMultiDay)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrRangeTooLong):
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%s, shop_id=%s, error=%v",
				userID, req.ShopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, customer_id=%s, shop_id=%s",
		result.Booking.ID, userID, req.ShopID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
