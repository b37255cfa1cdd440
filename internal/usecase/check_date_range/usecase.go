package check_date_range

import (
	"context"
	"errors"
	"fmt"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	"github.com/blueclipse/myhustle-booking/internal/integrations/catalogservice"
	"github.com/blueclipse/myhustle-booking/pkg/availability"
)

// UseCase use case проверки периода для многодневного бронирования
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
	uc.logger.Info("CheckDateRange: shop=%s, service=%s, start=%s, end=%s", req.ShopID, req.ServiceID, req.Start, req.End)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckDateRange: validation failed: %v", err)
		return nil, err
	}

	start, err := uc.engine.ParseDate(req.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: expected YYYY-MM-DD", ErrInvalidDate)
	}
	end, err := uc.engine.ParseDate(req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: end: expected YYYY-MM-DD", ErrInvalidDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end is before start", ErrInvalidInput)
	}

	days := uc.engine.DaysInRange(start, end)
	if days > uc.maxDays {
		uc.logger.Warn("CheckDateRange: range of %d days exceeds limit %d", days, uc.maxDays)
		return nil, fmt.Errorf("%w: at most %d days", ErrRangeTooLong, uc.maxDays)
	}

	service, err := uc.catalogClient.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("CheckDateRange: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckDateRange: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if days > 1 && !service.AllowsMultiDayBooking {
		uc.logger.Warn("CheckDateRange: service id=%s does not allow multi-day booking", req.ServiceID)
		return nil, ErrMultiDayNotAllowed
	}

	startString, endString := uc.engine.DateString(start), uc.engine.DateString(end)
	bookings, err := uc.bookingRepo.ListConfirmed(ctx, req.ShopID, req.ServiceID, &startString, &endString)
	if err != nil {
		uc.logger.Error("CheckDateRange: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocked := uc.engine.IsRangeBlockedByBookings(start, end, domain.ToAvailability(bookings)) ||
		service.IsBeyondAdvanceWindow(end, uc.engine.Today())

	uc.logger.Info("CheckDateRange: range %s..%s blocked=%t", startString, endString, blocked)

	return &Response{
		Start:   startString,
		End:     endString,
		Days:    days,
		Blocked: blocked,
	}, nil
}
