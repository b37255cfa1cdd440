package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	"github.com/blueclipse/myhustle-booking/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func TestCreate(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (id,customer_id,shop_id,service_id")).
		WithArgs(
			sqlmock.AnyArg(), "cust-1", "shop-1", "svc-1", "owner-1",
			"Haircut", "Barber", "Jane", "jane@example.com",
			"2026-03-12", nil, "09:00", domain.StatusPending, "",
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	b, err := repo.Create(context.Background(), &domain.Booking{
		CustomerID:    "cust-1",
		ShopID:        "shop-1",
		ServiceID:     "svc-1",
		ShopOwnerID:   "owner-1",
		ServiceName:   "Haircut",
		ShopName:      "Barber",
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
		RequestedDate: "2026-03-12",
		RequestedTime: "09:00",
		Status:        domain.StatusPending,
	})

	require.NoError(t, err)
	assert.Len(t, b.ID, 36)
	assert.Equal(t, now, b.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SlotTaken(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	_, err := repo.Create(context.Background(), &domain.Booking{
		ShopID:        "shop-1",
		ServiceID:     "svc-1",
		RequestedDate: "2026-03-12",
		RequestedTime: "09:00",
		Status:        domain.StatusPending,
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreate_ExecError(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Booking{RequestedDate: "2026-03-12"})

	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestGetByID(t *testing.T) {
	repo, _, mock := newRepo(t)
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs("b-1").
		WillReturnRows(bookingRows().AddRow(
			"b-1", "cust-1", "shop-1", "svc-1", "owner-1",
			"Haircut", "Barber", "Jane", "jane@example.com",
			time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), nil, "09:00",
			"ACCEPTED", "", "see you", created, created,
		))

	b, err := repo.GetByID(context.Background(), "b-1")

	require.NoError(t, err)
	assert.Equal(t, "2026-03-12", b.RequestedDate)
	assert.Nil(t, b.RequestedEndDate)
	assert.Equal(t, domain.StatusAccepted, b.Status)
	require.NotNil(t, b.ResponseMessage)
	assert.Equal(t, "see you", *b.ResponseMessage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(bookingRows())

	_, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByShop_WithStatus(t *testing.T) {
	repo, _, mock := newRepo(t)
	status := domain.StatusPending

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE shop_id = $1 AND status IN ($2) ORDER BY created_at DESC")).
		WithArgs("shop-1", "PENDING").
		WillReturnRows(bookingRows())

	got, err := repo.ListByShop(context.Background(), "shop-1", &status, nil)

	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByShop_CustomerEmail(t *testing.T) {
	repo, _, mock := newRepo(t)
	email := "Jane@Example.com"

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM bookings WHERE shop_id = $1 AND LOWER(customer_email) = $2 ORDER BY created_at DESC")).
		WithArgs("shop-1", "jane@example.com").
		WillReturnRows(bookingRows())

	_, err := repo.ListByShop(context.Background(), "shop-1", nil, &email)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListConfirmed_MultiDayAndLock(t *testing.T) {
	repo, db, mock := newRepo(t)
	from, to := "2026-03-01", "2026-03-31"
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE shop_id = $1 AND service_id = $2 AND status IN ($3,$4) " +
			"AND COALESCE(requested_end_date, requested_date) >= $5 AND requested_date <= $6 " +
			"ORDER BY requested_date ASC, requested_time ASC FOR UPDATE")).
		WithArgs("shop-1", "svc-1", "PENDING", "ACCEPTED", from, to).
		WillReturnRows(bookingRows().AddRow(
			"b-2", "cust-2", "shop-1", "svc-1", "owner-1",
			"Retreat", "Barber", "Ann", "ann@example.com",
			day(20), day(22), "", "ACCEPTED", "", nil, day(1), day(1),
		))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	got, err := repo.ListConfirmed(ctx, "shop-1", "svc-1", &from, &to)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, got, 1)
	require.NotNil(t, got[0].RequestedEndDate)
	assert.Equal(t, "2026-03-22", *got[0].RequestedEndDate)
	assert.Equal(t, []string{"2026-03-20", "2026-03-21", "2026-03-22"}, got[0].CoveredDates())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAcceptedOnDate(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY requested_time ASC")).
		WithArgs("shop-1", "ACCEPTED", "2026-03-12", "2026-03-12").
		WillReturnRows(bookingRows())

	_, err := repo.ListAcceptedOnDate(context.Background(), "shop-1", "2026-03-12")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, _, mock := newRepo(t)
	msg := "confirmed"

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE bookings SET status = $1, updated_at = NOW(), response_message = $2 WHERE id = $3 AND status = $4")).
		WithArgs(domain.StatusAccepted, msg, "b-1", domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "b-1", domain.StatusPending, domain.StatusAccepted, &msg)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM bookings WHERE id = $1")).
		WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	err := repo.UpdateStatus(context.Background(), "b-1", domain.StatusPending, domain.StatusCancelled, nil)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Второй запрос видит уже изменённый статус и не перезаписывает его
func TestUpdateStatus_ConcurrentChange(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3")).
		WithArgs(domain.StatusCancelled, "b-1", domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3")).
		WithArgs(domain.StatusAccepted, "b-1", domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM bookings WHERE id = $1")).
		WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(string(domain.StatusCancelled)))

	ctx := context.Background()
	require.NoError(t, repo.UpdateStatus(ctx, "b-1", domain.StatusPending, domain.StatusCancelled, nil))
	err := repo.UpdateStatus(ctx, "b-1", domain.StatusPending, domain.StatusAccepted, nil)

	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.Contains(t, err.Error(), "CANCELLED")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "b-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "b-1"), ErrBookingNotFound)
}
