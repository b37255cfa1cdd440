package catalogservice

import "github.com/blueclipse/myhustle-booking/internal/domain"

// Shop модель магазина из CatalogService
type Shop struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerID     string `json:"ownerId"`
	OpenTime24  string `json:"openTime24"`
	CloseTime24 string `json:"closeTime24"`
	IsActive    bool   `json:"isActive"`
}

// ServiceAvailability блок доступности услуги
type ServiceAvailability struct {
	DaysAvailable      []string `json:"daysAvailable"`
	StartTime          string   `json:"startTime"`
	EndTime            string   `json:"endTime"`
	TimeSlotDuration   int      `json:"timeSlotDuration"`
	AdvanceBookingDays int      `json:"advanceBookingDays"`
	CancellationPolicy string   `json:"cancellationPolicy"`
}

// Service модель услуги из CatalogService
type Service struct {
	ID                    string               `json:"id"`
	ShopID                string               `json:"shopId"`
	OwnerID               string               `json:"ownerId"`
	Name                  string               `json:"name"`
	EstimatedDuration     int                  `json:"estimatedDuration"`
	IsBookable            bool                 `json:"isBookable"`
	AllowsMultiDayBooking bool                 `json:"allowsMultiDayBooking"`
	IsActive              bool                 `json:"isActive"`
	Availability          *ServiceAvailability `json:"availability,omitempty"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует ответ в доменную модель
func (s *Shop) ToDomain() *domain.Shop {
	return &domain.Shop{
		ID:          s.ID,
		Name:        s.Name,
		OwnerID:     s.OwnerID,
		OpenTime24:  s.OpenTime24,
		CloseTime24: s.CloseTime24,
		Active:      s.IsActive,
	}
}

// ToDomain конвертирует ответ в доменную модель
func (s *Service) ToDomain() *domain.Service {
	svc := &domain.Service{
		ID:                    s.ID,
		ShopID:                s.ShopID,
		OwnerID:               s.OwnerID,
		Name:                  s.Name,
		EstimatedDuration:     s.EstimatedDuration,
		IsBookable:            s.IsBookable,
		AllowsMultiDayBooking: s.AllowsMultiDayBooking,
		Active:                s.IsActive,
	}
	if s.Availability != nil {
		svc.Availability = &domain.ServiceAvailability{
			DaysAvailable:      s.Availability.DaysAvailable,
			StartTime:          s.Availability.StartTime,
			EndTime:            s.Availability.EndTime,
			TimeSlotDuration:   s.Availability.TimeSlotDuration,
			AdvanceBookingDays: s.Availability.AdvanceBookingDays,
			CancellationPolicy: s.Availability.CancellationPolicy,
		}
	}
	return svc
}
