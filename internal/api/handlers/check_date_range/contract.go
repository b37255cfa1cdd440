package check_date_range

import (
	"context"

	checkDateRange "github.com/blueclipse/myhustle-booking/internal/usecase/check_date_range"
)

type CheckDateRangeUseCase interface {
	Execute(ctx context.Context, req *checkDateRange.Request) (*checkDateRange.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
