package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	bookingRepo "github.com/blueclipse/myhustle-booking/internal/infra/storage/booking"
	"github.com/blueclipse/myhustle-booking/internal/integrations/catalogservice"
	"github.com/blueclipse/myhustle-booking/pkg/availability"
	"github.com/blueclipse/myhustle-booking/pkg/types"
)

// Причины конфликтов для метрики
const (
	conflictDateBlocked = "date_blocked"
	conflictSlotTaken   = "slot_taken"
	conflictUniqueIndex = "unique_index"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	engine        *availability.Engine
	maxDays       int
	metrics       BookingMetrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, maxDays <= 0 означает domain.DefaultMaxCalendarDays
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	engine *availability.Engine,
	maxDays int,
	metrics BookingMetrics,
	logger Logger,
) *UseCase {
	if maxDays <= 0 {
		maxDays = domain.DefaultMaxCalendarDays
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		engine:        engine,
		maxDays:       maxDays,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, shop=%s, service=%s, date=%s, time=%s",
		req.CustomerID, req.ShopID, req.ServiceID, req.Date, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	start, err := uc.engine.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date: expected YYYY-MM-DD", ErrInvalidDate)
	}
	end := start
	multiDay := isMultiDay(req)
	if multiDay {
		end, err = uc.engine.ParseDate(*req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: endDate: expected YYYY-MM-DD", ErrInvalidDate)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: endDate is before date", ErrInvalidDate)
		}
		if days := uc.engine.DaysInRange(start, end); days > uc.maxDays {
			uc.logger.Warn("CreateBooking: range of %d days exceeds limit %d", days, uc.maxDays)
			return nil, fmt.Errorf("%w: at most %d days", ErrRangeTooLong, uc.maxDays)
		}
	}

	// 2. Получаем магазин
	shop, err := uc.catalogClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrShopNotFound) {
			uc.logger.Warn("CreateBooking: shop id=%s not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateBooking: failed to get shop id=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	// 3. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.CanBeBooked() || !shop.Active {
		uc.logger.Warn("CreateBooking: service id=%s is not bookable", req.ServiceID)
		return nil, ErrServiceNotBookable
	}

	if multiDay && !service.AllowsMultiDayBooking {
		uc.logger.Warn("CreateBooking: service id=%s does not allow multi-day booking", req.ServiceID)
		return nil, ErrMultiDayNotAllowed
	}

	// 4. Горизонт бронирования
	if service.IsBeyondAdvanceWindow(end, uc.engine.Today()) {
		uc.logger.Warn("CreateBooking: %s is beyond %d advance days", uc.engine.DateString(end), service.AdvanceBookingDays())
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, service.AdvanceBookingDays())
	}

	startString, endString := uc.engine.DateString(start), uc.engine.DateString(end)

	var result *domain.Booking

	// 5. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Активные бронирования периода с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.ListConfirmed(txCtx, req.ShopID, req.ServiceID, &startString, &endString)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		confirmed := domain.ToAvailability(bookings)

		booking := &domain.Booking{
			CustomerID:    req.CustomerID,
			ShopID:        req.ShopID,
			ServiceID:     req.ServiceID,
			ShopOwnerID:   shop.OwnerID,
			ServiceName:   service.Name,
			ShopName:      shop.Name,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			RequestedDate: startString,
			Status:        domain.StatusPending,
			Notes:         req.Notes,
		}

		if multiDay {
			// 5.2a. Многодневное: ни один день периода не должен быть заблокирован
			if uc.engine.IsRangeBlockedByBookings(start, end, confirmed) {
				uc.logger.Warn("CreateBooking: range %s..%s is blocked", startString, endString)
				uc.conflict(conflictDateBlocked)
				return ErrDateBlocked
			}
			booking.RequestedEndDate = &endString
		} else {
			// 5.2b. Однодневное: день доступен, время совпадает со свободным слотом
			if uc.engine.IsDateBlocked(start, confirmed) {
				uc.logger.Warn("CreateBooking: date %s is blocked", startString)
				uc.conflict(conflictDateBlocked)
				return ErrDateBlocked
			}

			if err := uc.checkSlot(start, req.Time, confirmed, shop, service); err != nil {
				return err
			}
			booking.RequestedTime = req.Time
		}

		// 5.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s %s taken concurrently", startString, req.Time)
				uc.conflict(conflictUniqueIndex)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated()
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{Booking: result}, nil
}

// checkSlot проверяет, что requestedTime является свободным слотом дня
func (uc *UseCase) checkSlot(
	date time.Time,
	requestedTime string,
	confirmed []availability.Booking,
	shop *domain.Shop,
	service *domain.Service,
) error {
	slots := uc.engine.GenerateTimeSlots(date, confirmed, shop.Hours(), service.Duration())

	for _, slot := range slots {
		if slot.Time24 != requestedTime {
			continue
		}

		if !slot.IsAvailable {
			uc.logger.Warn("CreateBooking: slot %s is already booked", requestedTime)
			uc.conflict(conflictSlotTaken)
			return ErrSlotNotAvailable
		}

		// Сегодняшний слот, который уже начался, бронировать нельзя
		now := uc.engine.Now()
		if uc.engine.DateString(now) == uc.engine.DateString(date) &&
			!types.TimeString(requestedTime).IsAfter(types.NewTimeString(now)) {
			uc.logger.Warn("CreateBooking: slot %s has already started", requestedTime)
			return ErrTooLateToBook
		}

		return nil
	}

	uc.logger.Warn("CreateBooking: %s is not a slot of %s", requestedTime, uc.engine.DateString(date))
	return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, requestedTime)
}

func (uc *UseCase) conflict(reason string) {
	if uc.metrics != nil {
		uc.metrics.IncBookingConflict(reason)
	}
}
