package get_available_slots

import (
	"github.com/blueclipse/myhustle-booking/internal/domain"
	getAvailableSlots "github.com/blueclipse/myhustle-booking/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	Time        string `json:"time"`   // "9:00 AM"
	Time24      string `json:"time24"` // "09:00"
	IsAvailable bool   `json:"isAvailable"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date        string         `json:"date"`
	ShopID      string         `json:"shopId"`
	ServiceID   string         `json:"serviceId"`
	SlotMinutes int            `json:"slotMinutes"`
	DateBlocked bool           `json:"dateBlocked"`
	Slots       []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{Time: s.Time, Time24: s.Time24, IsAvailable: s.IsAvailable}
	}

	return &AvailableSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		ShopID:      resp.ShopID,
		ServiceID:   resp.ServiceID,
		SlotMinutes: resp.SlotMinutes,
		DateBlocked: resp.DateBlocked,
		Slots:       slots,
	}
}
