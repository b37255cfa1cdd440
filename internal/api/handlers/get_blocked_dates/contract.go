package get_blocked_dates

import (
	"context"

	getBlockedDates "github.com/blueclipse/myhustle-booking/internal/usecase/get_blocked_dates"
)

type GetBlockedDatesUseCase interface {
	Execute(ctx context.Context, req *getBlockedDates.Request) (*getBlockedDates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
