package create_booking

import "github.com/blueclipse/myhustle-booking/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID    string  // ID клиента (X-User-ID)
	CustomerName  string  // Имя клиента (денормализация)
	CustomerEmail string  // Email клиента (денормализация)
	ShopID        string  // ID магазина
	ServiceID     string  // ID услуги
	Date          string  // Дата "2006-01-02"
	EndDate       *string // Последний день многодневного бронирования (опционально)
	Time          string  // Время слота "15:04", не используется для многодневных
	Notes         string  // Заметки клиента
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
