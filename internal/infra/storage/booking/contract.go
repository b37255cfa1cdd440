package booking

import (
	"github.com/blueclipse/myhustle-booking/pkg/dbmetrics"
)

// DBExecutor переиспользуем интерфейс из dbmetrics: *sql.DB, *dbmetrics.DB, транзакции
type DBExecutor = dbmetrics.DBExecutor
