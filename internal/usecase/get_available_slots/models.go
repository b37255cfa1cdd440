package get_available_slots

import (
	"time"

	"github.com/blueclipse/myhustle-booking/pkg/availability"
)

// Request модель запроса на получение слотов
type Request struct {
	ShopID    string
	ServiceID string
	Date      string // "2006-01-02" в опорной таймзоне
}

// Response модель ответа со слотами на день
type Response struct {
	Date        time.Time
	ShopID      string
	ServiceID   string
	SlotMinutes int                     // длительность слота после применения значений по умолчанию
	DateBlocked bool                    // день нельзя выбрать (прошлое, занят целиком или за горизонтом бронирования)
	Slots       []availability.TimeSlot // все слоты дня, IsAvailable=false для занятых
}
