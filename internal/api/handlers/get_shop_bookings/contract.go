package get_shop_bookings

import (
	"context"

	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
)

type BookingService interface {
	ListForShop(ctx context.Context, req *models.ListShopBookingsRequest) (*models.BookingListResponse, error)
	TodaysAccepted(ctx context.Context, shopID, userID string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
