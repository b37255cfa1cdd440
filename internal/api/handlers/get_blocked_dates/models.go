package get_blocked_dates

import getBlockedDates "github.com/blueclipse/myhustle-booking/internal/usecase/get_blocked_dates"

// DayResponse решение по одному дню
type DayResponse struct {
	Date    string `json:"date"`
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
}

// BlockedDatesResponse HTTP response model
type BlockedDatesResponse struct {
	ShopID       string        `json:"shopId"`
	ServiceID    string        `json:"serviceId"`
	Days         []DayResponse `json:"days"`
	BlockedDates []string      `json:"blockedDates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBlockedDates.Response) *BlockedDatesResponse {
	out := &BlockedDatesResponse{
		ShopID:       resp.ShopID,
		ServiceID:    resp.ServiceID,
		Days:         make([]DayResponse, len(resp.Days)),
		BlockedDates: make([]string, 0),
	}
	for i, d := range resp.Days {
		out.Days[i] = DayResponse{Date: d.Date, Blocked: d.Blocked, Reason: d.Reason}
		if d.Blocked {
			out.BlockedDates = append(out.BlockedDates, d.Date)
		}
	}
	return out
}
