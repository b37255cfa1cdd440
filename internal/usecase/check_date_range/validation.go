package check_date_range

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

	if req.Start == "" || req.End == "" {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	return nil
}
