package get_shop_analytics

import (
	"context"

	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
)

type BookingService interface {
	Analytics(ctx context.Context, shopID, userID string) (*models.AnalyticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
