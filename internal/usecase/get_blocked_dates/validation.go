package get_blocked_dates

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ShopID) == "" {
		return fmt.Errorf("%w: shopId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.From == "" || req.To == "" {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	return nil
}
