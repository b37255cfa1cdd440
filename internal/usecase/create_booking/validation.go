package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	"github.com/blueclipse/myhustle-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerID) == "" {
		return fmt.Errorf("%w: customerId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ShopID) == "" {
		return fmt.Errorf("%w: shopId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Для однодневного бронирования время обязательно
	if !isMultiDay(req) {
		if _, err := types.NewTimeStringFromString(req.Time); err != nil {
			return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
		}
	}

	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name must be at most %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	return nil
}

// isMultiDay возвращает true, если запрос охватывает больше одного дня
func isMultiDay(req *Request) bool {
	return req.EndDate != nil && *req.EndDate != "" && *req.EndDate != req.Date
}
