package models

import (
	"time"

	"github.com/blueclipse/myhustle-booking/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID          string  `json:"-"`
	Status          string  `json:"status"`
	ResponseMessage *string `json:"responseMessage,omitempty"`
}

// ListShopBookingsRequest запрос бронирований магазина
type ListShopBookingsRequest struct {
	UserID        string  `json:"-"`
	ShopID        string  `json:"shopId"`
	Status        *string `json:"status,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"` // без учёта регистра
}

// ListCustomerBookingsRequest запрос бронирований клиента
type ListCustomerBookingsRequest struct {
	UserID     string  `json:"-"`
	CustomerID string  `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               string  `json:"id"`
	CustomerID       string  `json:"customerId"`
	ShopID           string  `json:"shopId"`
	ServiceID        string  `json:"serviceId"`
	ShopOwnerID      string  `json:"shopOwnerId"`
	RequestedDate    string  `json:"requestedDate"`              // "2025-10-15"
	RequestedEndDate *string `json:"requestedEndDate,omitempty"` // только многодневные
	RequestedTime    string  `json:"requestedTime,omitempty"`    // "10:00"
	Status           string  `json:"status"`

	// Денормализованные данные
	ServiceName   string `json:"serviceName"`
	ShopName      string `json:"shopName"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`

	Notes           string  `json:"notes,omitempty"`
	ResponseMessage *string `json:"responseMessage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// DayCountResponse бронирования на день недели
type DayCountResponse struct {
	Day   string `json:"day"`
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AnalyticsResponse сводка по бронированиям магазина
type AnalyticsResponse struct {
	TotalBookings     int                `json:"totalBookings"`
	PendingBookings   int                `json:"pendingBookings"`
	ConfirmedBookings int                `json:"confirmedBookings"`
	CompletedBookings int                `json:"completedBookings"`
	CancelledBookings int                `json:"cancelledBookings"`
	TodayBookings     int                `json:"todayBookings"`
	Weekly            []DayCountResponse `json:"weekly"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:               b.ID,
		CustomerID:       b.CustomerID,
		ShopID:           b.ShopID,
		ServiceID:        b.ServiceID,
		ShopOwnerID:      b.ShopOwnerID,
		RequestedDate:    b.RequestedDate,
		RequestedEndDate: b.RequestedEndDate,
		RequestedTime:    b.RequestedTime,
		Status:           string(b.Status),
		ServiceName:      b.ServiceName,
		ShopName:         b.ShopName,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		Notes:            b.Notes,
		ResponseMessage:  b.ResponseMessage,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainAnalytics собирает сводку и разбивку по дням недели
func FromDomainAnalytics(a domain.BookingAnalytics, w domain.WeeklyBookings) *AnalyticsResponse {
	resp := &AnalyticsResponse{
		TotalBookings:     a.TotalBookings,
		PendingBookings:   a.PendingBookings,
		ConfirmedBookings: a.ConfirmedBookings,
		CompletedBookings: a.CompletedBookings,
		CancelledBookings: a.CancelledBookings,
		TodayBookings:     a.TodayBookings,
		Weekly:            make([]DayCountResponse, 0, len(w.Days)),
	}
	for _, d := range w.Days {
		resp.Weekly = append(resp.Weekly, DayCountResponse{Day: d.Day, Date: d.Date, Count: d.Count})
	}
	return resp
}
