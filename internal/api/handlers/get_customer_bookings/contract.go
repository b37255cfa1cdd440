package get_customer_bookings

import (
	"context"

	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
)

type BookingService interface {
	ListForCustomer(ctx context.Context, req *models.ListCustomerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
