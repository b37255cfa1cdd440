package check_date_range

import (
	"context"

	"github.com/blueclipse/myhustle-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListConfirmed(ctx context.Context, shopID, serviceID string, from, to *string) ([]*domain.Booking, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetService(ctx context.Context, shopID, serviceID string) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
