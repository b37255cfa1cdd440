package get_available_slots

import (
	"context"

	"github.com/blueclipse/myhustle-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListConfirmed получает активные бронирования услуги, пересекающиеся с периодом
	ListConfirmed(ctx context.Context, shopID, serviceID string, from, to *string) ([]*domain.Booking, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
	GetService(ctx context.Context, shopID, serviceID string) (*domain.Service, error)
}

// SlotsObserver метрика количества сгенерированных слотов
type SlotsObserver interface {
	ObserveGeneratedSlots(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
