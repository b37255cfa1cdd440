package check_date_range

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	"github.com/blueclipse/myhustle-booking/pkg/availability"
	"github.com/blueclipse/myhustle-booking/pkg/logger"
	"github.com/blueclipse/myhustle-booking/pkg/ptr"
)

type bookingRepoMock struct{ mock.Mock }

func (m *bookingRepoMock) ListConfirmed(ctx context.Context, shopID, serviceID string, from, to *string) ([]*domain.Booking, error) {
	args := m.Called(ctx, shopID, serviceID, from, to)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

type catalogMock struct{ mock.Mock }

func (m *catalogMock) GetService(ctx context.Context, shopID, serviceID string) (*domain.Service, error) {
	args := m.Called(ctx, shopID, serviceID)
	svc, _ := args.Get(0).(*domain.Service)
	return svc, args.Error(1)
}

func newUseCase(repo *bookingRepoMock, catalog *catalogMock) *UseCase {
	now := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
	engine := availability.New(availability.WithClock(func() time.Time { return now }))
	return NewUseCase(repo, catalog, engine, 30, logger.NewNop())
}

func multiDayService() *domain.Service {
	return &domain.Service{AllowsMultiDayBooking: true, IsBookable: true, Active: true}
}

func TestExecute_Free(t *testing.T) {
	repo, catalog := &bookingRepoMock{}, &catalogMock{}
	catalog.On("GetService", mock.Anything, "shop-1", "svc-1").Return(multiDayService(), nil)
	repo.On("ListConfirmed", mock.Anything, "shop-1", "svc-1", mock.Anything, mock.Anything).
		Return([]*domain.Booking{
			{RequestedDate: "2026-03-13", RequestedTime: "10:00", Status: domain.StatusPending},
		}, nil)

	resp, err := newUseCase(repo, catalog).Execute(context.Background(), &Request{
		ShopID: "shop-1", ServiceID: "svc-1", Start: "2026-03-12", End: "2026-03-15",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.Days)
	assert.False(t, resp.Blocked)
}

func TestExecute_BlockedByMultiDayBooking(t *testing.T) {
	repo, catalog := &bookingRepoMock{}, &catalogMock{}
	catalog.On("GetService", mock.Anything, "shop-1", "svc-1").Return(multiDayService(), nil)
	repo.On("ListConfirmed", mock.Anything, "shop-1", "svc-1", mock.Anything, mock.Anything).
		Return([]*domain.Booking{
			{RequestedDate: "2026-03-08", RequestedEndDate: ptr.Ptr("2026-03-12"), Status: domain.StatusAccepted},
		}, nil)

	resp, err := newUseCase(repo, catalog).Execute(context.Background(), &Request{
		ShopID: "shop-1", ServiceID: "svc-1", Start: "2026-03-12", End: "2026-03-14",
	})

	require.NoError(t, err)
	assert.True(t, resp.Blocked)
}

func TestExecute_MultiDayNotAllowed(t *testing.T) {
	catalog := &catalogMock{}
	catalog.On("GetService", mock.Anything, "shop-1", "svc-1").Return(&domain.Service{IsBookable: true, Active: true}, nil)

	_, err := newUseCase(&bookingRepoMock{}, catalog).Execute(context.Background(), &Request{
		ShopID: "shop-1", ServiceID: "svc-1", Start: "2026-03-12", End: "2026-03-13",
	})

	assert.ErrorIs(t, err, ErrMultiDayNotAllowed)
}

func TestExecute_SingleDayWithoutMultiDay(t *testing.T) {
	repo, catalog := &bookingRepoMock{}, &catalogMock{}
	catalog.On("GetService", mock.Anything, "shop-1", "svc-1").Return(&domain.Service{}, nil)
	repo.On("ListConfirmed", mock.Anything, "shop-1", "svc-1", mock.Anything, mock.Anything).Return(nil, nil)

	resp, err := newUseCase(repo, catalog).Execute(context.Background(), &Request{
		ShopID: "shop-1", ServiceID: "svc-1", Start: "2026-03-09", End: "2026-03-09",
	})

	require.NoError(t, err)
	assert.True(t, resp.Blocked, "past day")
}

func TestExecute_Reversed(t *testing.T) {
	_, err := newUseCase(&bookingRepoMock{}, &catalogMock{}).Execute(context.Background(), &Request{
		ShopID: "shop-1", ServiceID: "svc-1", Start: "2026-03-14", End: "2026-03-12",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RangeTooLong(t *testing.T) {
	repo, catalog := &bookingRepoMock{}, &catalogMock{}

	for _, end := range []string{"2026-04-11", "9999-12-31"} {
		_, err := newUseCase(repo, catalog).Execute(context.Background(), &Request{
			ShopID: "shop-1", ServiceID: "svc-1", Start: "2026-03-12", End: end,
		})
		assert.ErrorIs(t, err, ErrRangeTooLong, end)
	}

	catalog.AssertNotCalled(t, "GetService", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ListConfirmed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_RangeAtLimit(t *testing.T) {
	repo, catalog := &bookingRepoMock{}, &catalogMock{}
	catalog.On("GetService", mock.Anything, "shop-1", "svc-1").Return(multiDayService(), nil)
	repo.On("ListConfirmed", mock.Anything, "shop-1", "svc-1", mock.Anything, mock.Anything).Return(nil, nil)

	resp, err := newUseCase(repo, catalog).Execute(context.Background(), &Request{
		ShopID: "shop-1", ServiceID: "svc-1", Start: "2026-03-12", End: "2026-04-10",
	})

	require.NoError(t, err)
	assert.Equal(t, 30, resp.Days)
}
