package domain

// Business validation constants
const (
	MaxNotesLength           = 500
	MaxResponseMessageLength = 500
	MaxCustomerNameLength    = 200
	MaxEmailLength           = 254
	DefaultMaxCalendarDays   = 92

	// MaxCoveredDays upper bound on the days a single booking expands to
	MaxCoveredDays = 366
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ConfirmedStatuses статусы, которые занимают слот
// Используется хранилищем для выборки бронирований, передаваемых в availability engine
var ConfirmedStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
}

// AllStatuses все известные статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}
