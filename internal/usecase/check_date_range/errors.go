package check_date_range

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrMultiDayNotAllowed возвращается, когда услуга не допускает многодневное бронирование
	ErrMultiDayNotAllowed = errors.New("service does not allow multi-day booking")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")

	// ErrRangeTooLong возвращается, когда период длиннее допустимого
	ErrRangeTooLong = errors.New("date range is too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
