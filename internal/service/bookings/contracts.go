package bookings

import (
	"context"

	"github.com/blueclipse/myhustle-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByShop(ctx context.Context, shopID string, status *domain.BookingStatus, customerEmail *string) ([]*domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListAcceptedOnDate(ctx context.Context, shopID, date string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, expected, status domain.BookingStatus, responseMessage *string) error
	Delete(ctx context.Context, id string) error
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
