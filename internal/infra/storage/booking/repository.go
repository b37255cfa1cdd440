package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	"github.com/blueclipse/myhustle-booking/pkg/dbmetrics"
	"github.com/blueclipse/myhustle-booking/pkg/psqlbuilder"
)

const (
	tableBookings = "bookings"

	// pqUniqueViolation код ошибки PostgreSQL unique_violation
	pqUniqueViolation = "23505"
)

var bookingColumns = []string{
	"id",
	"customer_id",
	"shop_id",
	"service_id",
	"shop_owner_id",
	"service_name",
	"shop_name",
	"customer_name",
	"customer_email",
	"requested_date",
	"requested_end_date",
	"requested_time",
	"status",
	"notes",
	"response_message",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// ID генерируется на стороне сервиса (uuid), created_at/updated_at возвращает БД.
//
// Вставка является условной записью: частичный уникальный индекс по
// (shop_id, service_id, requested_date, requested_time) для PENDING/ACCEPTED
// не даст создать второе активное бронирование на тот же слот.
// В этом случае возвращается ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	var endDate interface{}
	if booking.RequestedEndDate != nil {
		endDate = *booking.RequestedEndDate
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"customer_id",
			"shop_id",
			"service_id",
			"shop_owner_id",
			"service_name",
			"shop_name",
			"customer_name",
			"customer_email",
			"requested_date",
			"requested_end_date",
			"requested_time",
			"status",
			"notes",
		).
		Values(
			booking.ID,
			booking.CustomerID,
			booking.ShopID,
			booking.ServiceID,
			booking.ShopOwnerID,
			booking.ServiceName,
			booking.ShopName,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.RequestedDate,
			endDate,
			booking.RequestedTime,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// ListByShop возвращает бронирования магазина, сначала новые
// status опционален
func (r *Repository) ListByShop(
	ctx context.Context,
	shopID string,
	status *domain.BookingStatus,
	customerEmail *string,
) ([]*domain.Booking, error) {
	filter := domain.BookingsFilter{ShopID: &shopID, CustomerEmail: customerEmail}
	if status != nil {
		filter.Statuses = []domain.BookingStatus{*status}
	}
	return r.list(ctx, "ListByShop", filter, "created_at DESC", false)
}

// ListByOwner возвращает бронирования всех магазинов владельца, сначала новые
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Booking, error) {
	filter := domain.BookingsFilter{OwnerID: &ownerID}
	return r.list(ctx, "ListByOwner", filter, "created_at DESC", false)
}

// ListByCustomer возвращает бронирования клиента, сначала новые
// status опционален
func (r *Repository) ListByCustomer(ctx context.Context, customerID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	filter := domain.BookingsFilter{CustomerID: &customerID}
	if status != nil {
		filter.Statuses = []domain.BookingStatus{*status}
	}
	return r.list(ctx, "ListByCustomer", filter, "created_at DESC", false)
}

// ListConfirmed возвращает активные (PENDING, ACCEPTED) бронирования услуги,
// пересекающиеся с периодом [from, to]. Границы опциональны.
//
// Внутри транзакции строки блокируются (FOR UPDATE): usecase создания
// бронирования читает занятость и вставляет запись атомарно.
func (r *Repository) ListConfirmed(ctx context.Context, shopID, serviceID string, from, to *string) ([]*domain.Booking, error) {
	filter := domain.BookingsFilter{
		ShopID:    &shopID,
		ServiceID: &serviceID,
		Statuses:  domain.ConfirmedStatuses,
		StartDate: from,
		EndDate:   to,
	}
	return r.list(ctx, "ListConfirmed", filter, "requested_date ASC, requested_time ASC", dbmetrics.IsInTransaction(ctx))
}

// ListAcceptedOnDate возвращает принятые бронирования магазина на дату, по времени начала
func (r *Repository) ListAcceptedOnDate(ctx context.Context, shopID, date string) ([]*domain.Booking, error) {
	filter := domain.BookingsFilter{
		ShopID:    &shopID,
		Statuses:  []domain.BookingStatus{domain.StatusAccepted},
		StartDate: &date,
		EndDate:   &date,
	}
	return r.list(ctx, "ListAcceptedOnDate", filter, "requested_time ASC", false)
}

// UpdateStatus меняет статус бронирования с expected на status и, если передан, ответ владельца
// Если статус в базе уже не expected, возвращает ErrStatusConflict
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id string,
	expected, status domain.BookingStatus,
	responseMessage *string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()"))

	if responseMessage != nil {
		builder = builder.Set("response_message", *responseMessage)
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expected}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.missingOrConflict(ctx, executor, id)
	}

	return nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// missingOrConflict различает удалённое бронирование и изменённый статус
func (r *Repository) missingOrConflict(ctx context.Context, executor dbmetrics.DBExecutor, id string) error {
	query, args, err := psqlbuilder.Select("status").
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build select query: %v", ErrBuildQuery, err)
	}

	var current string
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: UpdateStatus - check current status: %v", ErrExecQuery, err)
	}

	return fmt.Errorf("%w: current status is %s", ErrStatusConflict, current)
}

// list общий запрос выборки по фильтру
// Период сравнивается с интервалом [requested_date, requested_end_date],
// поэтому многодневные бронирования попадают в любой пересекающийся период.
func (r *Repository) list(ctx context.Context, op string, filter domain.BookingsFilter, orderBy string, forUpdate bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From(tableBookings)

	if filter.ShopID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"shop_id": *filter.ShopID})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"shop_owner_id": *filter.OwnerID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.CustomerEmail != nil {
		selectBuilder = selectBuilder.Where("LOWER(customer_email) = ?", strings.ToLower(*filter.CustomerEmail))
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("COALESCE(requested_end_date, requested_date) >= ?", *filter.StartDate))
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"requested_date": *filter.EndDate})
	}

	selectBuilder = selectBuilder.OrderBy(orderBy)

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var requestedDate time.Time
		var requestedEndDate, createdAt, updatedAt sql.NullTime
		var responseMessage sql.NullString

		err := rows.Scan(
			&booking.ID,
			&booking.CustomerID,
			&booking.ShopID,
			&booking.ServiceID,
			&booking.ShopOwnerID,
			&booking.ServiceName,
			&booking.ShopName,
			&booking.CustomerName,
			&booking.CustomerEmail,
			&requestedDate,
			&requestedEndDate,
			&booking.RequestedTime,
			&booking.Status,
			&booking.Notes,
			&responseMessage,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.RequestedDate = requestedDate.Format(domain.DateFormat)
		if requestedEndDate.Valid {
			end := requestedEndDate.Time.Format(domain.DateFormat)
			booking.RequestedEndDate = &end
		}
		if responseMessage.Valid {
			booking.ResponseMessage = &responseMessage.String
		}
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
