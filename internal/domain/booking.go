package domain

import (
	"time"

	"github.com/blueclipse/myhustle-booking/pkg/availability"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusAccepted  BookingStatus = "ACCEPTED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// allowedTransitions lists the statuses a booking may move to from its current status
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted: {StatusCompleted, StatusCancelled},
}

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled, StatusCompleted:
		return status, nil
	default:
		return "", ErrUnknownStatus
	}
}

// Booking is a customer's request to reserve a shop service at a date and time
type Booking struct {
	ID          string
	CustomerID  string
	ShopID      string
	ServiceID   string
	ShopOwnerID string

	// Denormalized data for history
	ServiceName   string
	ShopName      string
	CustomerName  string
	CustomerEmail string

	RequestedDate    string  // "2006-01-02"
	RequestedEndDate *string // last day of a multi-day booking, nil for single-day
	RequestedTime    string  // "15:04", empty for multi-day bookings
	Status           BookingStatus
	Notes            string
	ResponseMessage  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking occupies its slot (pending or accepted)
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// IsTerminal returns true if no further status changes are allowed
func (b *Booking) IsTerminal() bool {
	_, ok := allowedTransitions[b.Status]
	return !ok
}

// CanTransitionTo returns true if the booking may move to the given status
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, s := range allowedTransitions[b.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsMultiDay returns true if the booking spans more than its start date
func (b *Booking) IsMultiDay() bool {
	return b.RequestedEndDate != nil && *b.RequestedEndDate != b.RequestedDate
}

// CoveredDates returns every requested date of the booking, inclusive,
// truncated to MaxCoveredDays
func (b *Booking) CoveredDates() []string {
	if !b.IsMultiDay() {
		return []string{b.RequestedDate}
	}

	start, err := time.Parse(DateFormat, b.RequestedDate)
	if err != nil {
		return []string{b.RequestedDate}
	}
	end, err := time.Parse(DateFormat, *b.RequestedEndDate)
	if err != nil || end.Before(start) {
		return []string{b.RequestedDate}
	}

	span := int((end.Unix()-start.Unix())/(24*60*60)) + 1
	if span > MaxCoveredDays {
		span = MaxCoveredDays
	}

	dates := make([]string, 0, span)
	for d := start; len(dates) < span; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateFormat))
	}
	return dates
}

// ToAvailability projects bookings onto the availability engine input.
// A multi-day booking is expanded into one record per covered date.
func ToAvailability(bookings []*Booking) []availability.Booking {
	result := make([]availability.Booking, 0, len(bookings))
	for _, b := range bookings {
		for _, d := range b.CoveredDates() {
			result = append(result, availability.Booking{
				RequestedDate: d,
				RequestedTime: b.RequestedTime,
				Status:        availability.Status(b.Status),
			})
		}
	}
	return result
}

// BookingsFilter filters booking listings
type BookingsFilter struct {
	ShopID        *string
	ServiceID     *string
	OwnerID       *string
	CustomerID    *string
	CustomerEmail *string         // matches case-insensitively
	Statuses      []BookingStatus // empty = any status
	StartDate     *string         // inclusive, "2006-01-02"
	EndDate       *string         // inclusive, "2006-01-02"
}
