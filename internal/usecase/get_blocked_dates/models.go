package get_blocked_dates

// Причины блокировки дня
const (
	ReasonPast         = "past"
	ReasonBooked       = "booked"
	ReasonAdvanceLimit = "advance_limit"
)

// Request модель запроса календаря
type Request struct {
	ShopID    string
	ServiceID string
	From      string // "2006-01-02", включительно
	To        string // "2006-01-02", включительно
}

// Response модель ответа: решение по каждому дню периода
type Response struct {
	ShopID    string
	ServiceID string
	Days      []Day
}

// Day решение по одному дню
type Day struct {
	Date    string
	Blocked bool
	Reason  string // пусто, если день доступен
}
