package get_owner_bookings

import (
	"context"

	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
)

type BookingService interface {
	ListForOwner(ctx context.Context, userID string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
