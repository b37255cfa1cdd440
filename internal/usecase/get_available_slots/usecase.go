package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	"github.com/blueclipse/myhustle-booking/internal/integrations/catalogservice"
	"github.com/blueclipse/myhustle-booking/pkg/availability"
)

// UseCase use case для получения слотов услуги на день
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	engine        *availability.Engine
	metrics       SlotsObserver
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	engine *availability.Engine,
	metrics SlotsObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		engine:        engine,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%s, service=%s, date=%s", req.ShopID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date, err := uc.engine.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD", ErrInvalidDate)
	}

	// 2. Получаем магазин (часы работы)
	shop, err := uc.catalogClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop id=%s not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get shop id=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	// 3. Получаем услугу (длительность слота)
	service, err := uc.catalogClient.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.CanBeBooked() || !shop.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%s is not bookable", req.ServiceID)
		return nil, ErrServiceNotBookable
	}

	// 4. Получаем активные бронирования на дату
	dateString := uc.engine.DateString(date)
	bookings, err := uc.bookingRepo.ListConfirmed(ctx, req.ShopID, req.ServiceID, &dateString, &dateString)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	confirmed := domain.ToAvailability(bookings)

	// 5. Генерируем слоты и решение по дню
	duration := service.Duration()
	slots := uc.engine.GenerateTimeSlots(date, confirmed, shop.Hours(), duration)
	blocked := uc.engine.IsDateBlocked(date, confirmed) ||
		service.IsBeyondAdvanceWindow(date, uc.engine.Today())

	if uc.metrics != nil {
		uc.metrics.ObserveGeneratedSlots(len(slots))
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for shop=%s, service=%s, date=%s, blocked=%t",
		len(slots), req.ShopID, req.ServiceID, dateString, blocked)

	return &Response{
		Date:        date,
		ShopID:      req.ShopID,
		ServiceID:   req.ServiceID,
		SlotMinutes: duration.Minutes(),
		DateBlocked: blocked,
		Slots:       slots,
	}, nil
}
