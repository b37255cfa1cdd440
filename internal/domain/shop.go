package domain

import (
	"time"

	"github.com/blueclipse/myhustle-booking/pkg/availability"
)

// Shop is a business with daily operating hours
type Shop struct {
	ID          string
	Name        string
	OwnerID     string
	OpenTime24  string // "HH:MM", empty = not configured
	CloseTime24 string // "HH:MM", "24:00" = open until midnight
	Active      bool
}

// Hours returns the shop operating window for the availability engine
func (s *Shop) Hours() availability.Hours {
	if s == nil {
		return availability.Hours{}
	}
	return availability.Hours{
		OpenTime24:  s.OpenTime24,
		CloseTime24: s.CloseTime24,
	}
}

// ServiceAvailability is the availability block configured on a service
type ServiceAvailability struct {
	DaysAvailable      []string
	StartTime          string
	EndTime            string
	TimeSlotDuration   int // minutes
	AdvanceBookingDays int // 0 = unlimited
	CancellationPolicy string
}

// Service is a bookable offering of a shop
type Service struct {
	ID                    string
	ShopID                string
	OwnerID               string
	Name                  string
	EstimatedDuration     int // minutes, 0 = not configured
	IsBookable            bool
	AllowsMultiDayBooking bool
	Active                bool
	Availability          *ServiceAvailability
}

// Duration returns the slot length settings for the availability engine
func (s *Service) Duration() availability.Duration {
	if s == nil {
		return availability.Duration{}
	}
	d := availability.Duration{EstimatedMinutes: s.EstimatedDuration}
	if s.Availability != nil {
		d.SlotMinutes = s.Availability.TimeSlotDuration
	}
	return d
}

// AdvanceBookingDays returns how many days ahead the service can be booked, 0 = unlimited
func (s *Service) AdvanceBookingDays() int {
	if s == nil || s.Availability == nil || s.Availability.AdvanceBookingDays < 0 {
		return 0
	}
	return s.Availability.AdvanceBookingDays
}

// CanBeBooked returns true if customers may book the service
func (s *Service) CanBeBooked() bool {
	return s.IsBookable && s.Active
}

// IsBeyondAdvanceWindow returns true if date is later than today plus the
// service's advance booking days. Both values are midnights of the same zone.
func (s *Service) IsBeyondAdvanceWindow(date, today time.Time) bool {
	days := s.AdvanceBookingDays()
	if days == 0 {
		return false
	}
	return date.After(today.AddDate(0, 0, days))
}
