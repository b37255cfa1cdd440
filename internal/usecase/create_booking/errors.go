package create_booking

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("create_booking: shop not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotBookable возвращается, когда услугу нельзя забронировать
	ErrServiceNotBookable = errors.New("create_booking: service is not bookable")

	// ErrMultiDayNotAllowed возвращается, когда услуга не допускает многодневное бронирование
	ErrMultiDayNotAllowed = errors.New("create_booking: service does not allow multi-day booking")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrRangeTooLong возвращается, когда период длиннее допустимого числа дней
	ErrRangeTooLong = errors.New("create_booking: date range is too long")

	// ErrDateBlocked возвращается, когда дата (или один из дней периода) недоступна
	ErrDateBlocked = errors.New("create_booking: date is not available")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается, когда слот сегодняшнего дня уже начался
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
