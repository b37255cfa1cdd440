package get_blocked_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	"github.com/blueclipse/myhustle-booking/internal/integrations/catalogservice"
	"github.com/blueclipse/myhustle-booking/pkg/availability"
)

// UseCase use case календаря: какие дни периода нельзя выбрать
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	engine        *availability.Engine
	maxDays       int
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// maxDays <= 0 означает domain.DefaultMaxCalendarDays
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	engine *availability.Engine,
	maxDays int,
	logger Logger,
) *UseCase {
	if maxDays <= 0 {
		maxDays = domain.DefaultMaxCalendarDays
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		engine:        engine,
		maxDays:       maxDays,
		logger:        logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBlockedDates: shop=%s, service=%s, from=%s, to=%s", req.ShopID, req.ServiceID, req.From, req.To)

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBlockedDates: validation failed: %v", err)
		return nil, err
	}

	from, err := uc.engine.ParseDate(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: from: expected YYYY-MM-DD", ErrInvalidDate)
	}
	to, err := uc.engine.ParseDate(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: to: expected YYYY-MM-DD", ErrInvalidDate)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	days := uc.engine.DaysInRange(from, to)
	if days > uc.maxDays {
		uc.logger.Warn("GetBlockedDates: range of %d days exceeds limit %d", days, uc.maxDays)
		return nil, fmt.Errorf("%w: at most %d days", ErrRangeTooLong, uc.maxDays)
	}

	// 2. Услуга (горизонт бронирования)
	service, err := uc.catalogClient.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("GetBlockedDates: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetBlockedDates: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Бронирования периода
	fromString, toString := uc.engine.DateString(from), uc.engine.DateString(to)
	bookings, err := uc.bookingRepo.ListConfirmed(ctx, req.ShopID, req.ServiceID, &fromString, &toString)
	if err != nil {
		uc.logger.Error("GetBlockedDates: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	confirmed := domain.ToAvailability(bookings)

	// 4. Решение по каждому дню
	today := uc.engine.Today()
	result := make([]Day, 0, days)
	blockedCount := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := Day{Date: uc.engine.DateString(d)}
		switch {
		case uc.engine.IsDateBlocked(d, confirmed):
			day.Blocked = true
			day.Reason = ReasonBooked
			if d.Before(today) {
				day.Reason = ReasonPast
			}
		case service.IsBeyondAdvanceWindow(d, today):
			day.Blocked = true
			day.Reason = ReasonAdvanceLimit
		}
		if day.Blocked {
			blockedCount++
		}
		result = append(result, day)
	}

	uc.logger.Info("GetBlockedDates: %d of %d days blocked for shop=%s, service=%s",
		blockedCount, days, req.ShopID, req.ServiceID)

	return &Response{
		ShopID:    req.ShopID,
		ServiceID: req.ServiceID,
		Days:      result,
	}, nil
}
