package create_booking

import (
	"strings"

	createBooking "github.com/blueclipse/myhustle-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// ID клиента берется из заголовка X-User-ID
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	ShopID        string  `json:"shopId"`
	ServiceID     string  `json:"serviceId"`
	Date          string  `json:"date"`              // "2025-10-15"
	EndDate       *string `json:"endDate,omitempty"` // только многодневные
	Time          string  `json:"time,omitempty"`    // "10:00"
	Notes         string  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID string) *createBooking.Request {
	return &createBooking.Request{
		CustomerID:    customerID,
		CustomerName:  strings.TrimSpace(r.CustomerName),
		CustomerEmail: strings.TrimSpace(r.CustomerEmail),
		ShopID:        r.ShopID,
		ServiceID:     r.ServiceID,
		Date:          r.Date,
		EndDate:       r.EndDate,
		Time:          r.Time,
		Notes:         r.Notes,
	}
}
