package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	bookingRepo "github.com/blueclipse/myhustle-booking/internal/infra/storage/booking"
	"github.com/blueclipse/myhustle-booking/internal/integrations/catalogservice"
	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
	"github.com/blueclipse/myhustle-booking/pkg/availability"
	"github.com/blueclipse/myhustle-booking/pkg/ptr"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	engine        *availability.Engine
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
// engine задает опорную таймзону для "сегодня" и недельной статистики
func NewService(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	engine *availability.Engine,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		engine:        engine,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту, создавшему бронирование, и владельцу магазина
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != userID && booking.ShopOwnerID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// ListForShop получает бронирования магазина, сначала новые
// Доступно только владельцу магазина
func (s *Service) ListForShop(ctx context.Context, req *models.ListShopBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForShop: fetching bookings for shop=%s, user=%s", req.ShopID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.ShopID, req.UserID); err != nil {
		return nil, err
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("ListForShop: invalid status=%s for shop=%s", ptr.Value(req.Status), req.ShopID)
		return nil, err
	}

	email, err := parseEmail(req.CustomerEmail)
	if err != nil {
		s.logger.Warn("ListForShop: invalid email filter for shop=%s", req.ShopID)
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByShop(ctx, req.ShopID, status, email)
	if err != nil {
		s.logger.Error("ListForShop: repository error for shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: ListForShop - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForShop: successfully fetched %d bookings for shop=%s", len(bookings), req.ShopID)
	return models.FromDomainBookingList(bookings), nil
}

// ListForOwner получает бронирования всех магазинов владельца, сначала новые
func (s *Service) ListForOwner(ctx context.Context, userID string) (*models.BookingListResponse, error) {
	s.logger.Info("ListForOwner: fetching bookings for owner=%s", userID)

	bookings, err := s.bookingRepo.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("ListForOwner: repository error for owner=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForOwner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForOwner: successfully fetched %d bookings for owner=%s", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// ListForCustomer получает бронирования клиента
// Клиент видит только свои бронирования; status=PENDING дает ожидающие ответа
func (s *Service) ListForCustomer(ctx context.Context, req *models.ListCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForCustomer: fetching bookings for customer=%s, user=%s", req.CustomerID, req.UserID)

	if req.CustomerID != req.UserID {
		s.logger.Warn("ListForCustomer: access denied for user=%s to customer=%s", req.UserID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("ListForCustomer: invalid status=%s for customer=%s", ptr.Value(req.Status), req.CustomerID)
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByCustomer(ctx, req.CustomerID, status)
	if err != nil {
		s.logger.Error("ListForCustomer: repository error for customer=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: ListForCustomer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForCustomer: successfully fetched %d bookings for customer=%s", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// TodaysAccepted получает принятые бронирования магазина на сегодня по времени начала
// Доступно только владельцу магазина
func (s *Service) TodaysAccepted(ctx context.Context, shopID, userID string) (*models.BookingListResponse, error) {
	today := s.engine.DateString(s.engine.Today())
	s.logger.Info("TodaysAccepted: fetching bookings for shop=%s, date=%s", shopID, today)

	if err := s.checkOwnerAccess(ctx, shopID, userID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListAcceptedOnDate(ctx, shopID, today)
	if err != nil {
		s.logger.Error("TodaysAccepted: repository error for shop=%s: %v", shopID, err)
		return nil, fmt.Errorf("%w: TodaysAccepted - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Analytics считает сводку по бронированиям магазина и разбивку текущей недели
// Доступно только владельцу магазина
func (s *Service) Analytics(ctx context.Context, shopID, userID string) (*models.AnalyticsResponse, error) {
	s.logger.Info("Analytics: shop=%s, user=%s", shopID, userID)

	if err := s.checkOwnerAccess(ctx, shopID, userID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByShop(ctx, shopID, nil, nil)
	if err != nil {
		s.logger.Error("Analytics: repository error for shop=%s: %v", shopID, err)
		return nil, fmt.Errorf("%w: Analytics - repository error: %v", ErrInternal, err)
	}

	today := s.engine.Today()
	totals := domain.CalculateAnalytics(bookings, today, s.engine.Location())
	weekly := domain.CalculateWeekly(bookings, today, s.engine.Location())

	return models.FromDomainAnalytics(totals, weekly), nil
}

// UpdateStatus меняет статус бронирования
// Владелец магазина выполняет любой допустимый переход,
// клиент может только отменить своё бронирование
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s", bookingID, req.Status, req.UserID)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if req.ResponseMessage != nil && utf8.RuneCountInString(*req.ResponseMessage) > domain.MaxResponseMessageLength {
		return nil, fmt.Errorf("%w: response message must be at most %d characters", ErrInvalidInput, domain.MaxResponseMessageLength)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}

	switch {
	case booking.ShopOwnerID == req.UserID:
		// владелец
	case booking.CustomerID == req.UserID:
		if newStatus != domain.StatusCancelled || req.ResponseMessage != nil {
			s.logger.Warn("UpdateStatus: customer=%s may only cancel booking id=%s", req.UserID, bookingID)
			return nil, ErrAccessDenied
		}
	default:
		s.logger.Warn("UpdateStatus: access denied for user=%s to booking id=%s", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%s", booking.Status, newStatus, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	// Запись проходит только если статус не изменился с момента чтения
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, newStatus, req.ResponseMessage); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("UpdateStatus: booking id=%s changed concurrently: %v", bookingID, err)
			return nil, fmt.Errorf("%w: %s -> %s: %v", ErrInvalidTransition, booking.Status, newStatus, err)
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = newStatus
	if req.ResponseMessage != nil {
		booking.ResponseMessage = req.ResponseMessage
	}

	s.logger.Info("UpdateStatus: booking id=%s is now %s", bookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}

// Delete удаляет бронирование, доступно только владельцу магазина
func (s *Service) Delete(ctx context.Context, bookingID, userID string) error {
	s.logger.Info("Delete: deleting booking id=%s by user=%s", bookingID, userID)

	booking, err := s.getBooking(ctx, "Delete", bookingID)
	if err != nil {
		return err
	}

	if booking.ShopOwnerID != userID {
		s.logger.Warn("Delete: access denied for user=%s to booking id=%s", userID, bookingID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%s deleted", bookingID)
	return nil
}

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkOwnerAccess проверяет, что userID владелец магазина
func (s *Service) checkOwnerAccess(ctx context.Context, shopID, userID string) error {
	shop, err := s.catalogClient.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrShopNotFound) {
			s.logger.Warn("checkOwnerAccess: shop id=%s not found", shopID)
			return ErrShopNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get shop id=%s: %v", shopID, err)
		return fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	if shop.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%s is not owner of shop=%s", userID, shopID)
		return ErrAccessDenied
	}

	return nil
}

// parseEmail нормализует фильтр по email клиента, пустой фильтр означает nil
func parseEmail(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	email := strings.TrimSpace(*raw)
	if email == "" {
		return nil, nil
	}
	if len(email) > domain.MaxEmailLength || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email filter", ErrInvalidInput)
	}
	return &email, nil
}

func parseStatus(raw *string) (*domain.BookingStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status, err := domain.ParseBookingStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *raw)
	}
	return &status, nil
}
