package create_booking

import (
	"context"

	"github.com/blueclipse/myhustle-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListConfirmed(ctx context.Context, shopID, serviceID string, from, to *string) ([]*domain.Booking, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
	GetService(ctx context.Context, shopID, serviceID string) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookingMetrics метрики создания бронирований
type BookingMetrics interface {
	IncBookingCreated()
	IncBookingConflict(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
