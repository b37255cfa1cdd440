package bookings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	bookingRepo "github.com/blueclipse/myhustle-booking/internal/infra/storage/booking"
	"github.com/blueclipse/myhustle-booking/internal/integrations/catalogservice"
	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
	"github.com/blueclipse/myhustle-booking/pkg/availability"
	"github.com/blueclipse/myhustle-booking/pkg/logger"
	"github.com/blueclipse/myhustle-booking/pkg/ptr"
)

type repoMock struct{ mock.Mock }

func (m *repoMock) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *repoMock) ListByShop(ctx context.Context, shopID string, status *domain.BookingStatus, customerEmail *string) ([]*domain.Booking, error) {
	args := m.Called(ctx, shopID, status, customerEmail)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *repoMock) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Booking, error) {
	args := m.Called(ctx, ownerID)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *repoMock) ListByCustomer(ctx context.Context, customerID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, customerID, status)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *repoMock) ListAcceptedOnDate(ctx context.Context, shopID, date string) ([]*domain.Booking, error) {
	args := m.Called(ctx, shopID, date)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *repoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) UpdateStatus(ctx context.Context, id string, expected, status domain.BookingStatus, responseMessage *string) error {
	return m.Called(ctx, id, expected, status, responseMessage).Error(0)
}

type catalogMock struct{ mock.Mock }

func (m *catalogMock) GetShop(ctx context.Context, shopID string) (*domain.Shop, error) {
	args := m.Called(ctx, shopID)
	shop, _ := args.Get(0).(*domain.Shop)
	return shop, args.Error(1)
}

var now = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

func newService() (*Service, *repoMock, *catalogMock) {
	repo, catalog := &repoMock{}, &catalogMock{}
	engine := availability.New(availability.WithClock(func() time.Time { return now }))
	catalog.On("GetShop", mock.Anything, "shop-1").Return(&domain.Shop{ID: "shop-1", OwnerID: "owner-1"}, nil).Maybe()
	catalog.On("GetShop", mock.Anything, "missing").Return(nil, catalogservice.ErrShopNotFound).Maybe()
	return NewService(repo, catalog, engine, logger.NewNop()), repo, catalog
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:            "b-1",
		CustomerID:    "cust-1",
		ShopID:        "shop-1",
		ShopOwnerID:   "owner-1",
		RequestedDate: "2026-03-12",
		RequestedTime: "10:00",
		Status:        domain.StatusPending,
	}
}

func TestGetByID_Access(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", mock.Anything, "b-1").Return(pendingBooking(), nil)
	repo.On("GetByID", mock.Anything, "nope").Return(nil, bookingRepo.ErrBookingNotFound)

	resp, err := svc.GetByID(context.Background(), "b-1", "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)

	_, err = svc.GetByID(context.Background(), "b-1", "owner-1")
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "b-1", "stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), "nope", "cust-1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListForShop(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("ListByShop", mock.Anything, "shop-1", mock.MatchedBy(func(s *domain.BookingStatus) bool {
		return s != nil && *s == domain.StatusPending
	}), (*string)(nil)).Return([]*domain.Booking{pendingBooking()}, nil)

	resp, err := svc.ListForShop(context.Background(), &models.ListShopBookingsRequest{
		UserID: "owner-1", ShopID: "shop-1", Status: ptr.Ptr("PENDING"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.ListForShop(context.Background(), &models.ListShopBookingsRequest{UserID: "cust-1", ShopID: "shop-1"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListForShop(context.Background(), &models.ListShopBookingsRequest{UserID: "owner-1", ShopID: "missing"})
	assert.ErrorIs(t, err, ErrShopNotFound)

	_, err = svc.ListForShop(context.Background(), &models.ListShopBookingsRequest{
		UserID: "owner-1", ShopID: "shop-1", Status: ptr.Ptr("confirmed"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListForShop_CustomerEmail(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("ListByShop", mock.Anything, "shop-1", (*domain.BookingStatus)(nil), mock.MatchedBy(func(e *string) bool {
		return e != nil && *e == "jane@example.com"
	})).Return([]*domain.Booking{pendingBooking()}, nil)

	resp, err := svc.ListForShop(context.Background(), &models.ListShopBookingsRequest{
		UserID: "owner-1", ShopID: "shop-1", CustomerEmail: ptr.Ptr("  jane@example.com "),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.ListForShop(context.Background(), &models.ListShopBookingsRequest{
		UserID: "owner-1", ShopID: "shop-1", CustomerEmail: ptr.Ptr("not-an-email"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListForCustomer(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("ListByCustomer", mock.Anything, "cust-1", (*domain.BookingStatus)(nil)).Return(nil, nil)

	resp, err := svc.ListForCustomer(context.Background(), &models.ListCustomerBookingsRequest{UserID: "cust-1", CustomerID: "cust-1"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)

	_, err = svc.ListForCustomer(context.Background(), &models.ListCustomerBookingsRequest{UserID: "cust-2", CustomerID: "cust-1"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListForOwner(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("ListByOwner", mock.Anything, "owner-1").Return([]*domain.Booking{pendingBooking(), pendingBooking()}, nil)

	resp, err := svc.ListForOwner(context.Background(), "owner-1")

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestTodaysAccepted(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("ListAcceptedOnDate", mock.Anything, "shop-1", "2026-03-11").Return([]*domain.Booking{}, nil)

	_, err := svc.TodaysAccepted(context.Background(), "shop-1", "owner-1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAnalytics(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("ListByShop", mock.Anything, "shop-1", (*domain.BookingStatus)(nil), (*string)(nil)).Return([]*domain.Booking{
		{Status: domain.StatusPending, RequestedDate: "2026-03-12", CreatedAt: now},
		{Status: domain.StatusCompleted, RequestedDate: "2026-03-01", CreatedAt: now.AddDate(0, 0, -10)},
	}, nil)

	resp, err := svc.Analytics(context.Background(), "shop-1", "owner-1")

	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalBookings)
	assert.Equal(t, 1, resp.PendingBookings)
	assert.Equal(t, 1, resp.CompletedBookings)
	assert.Equal(t, 1, resp.TodayBookings)
	require.Len(t, resp.Weekly, 7)
	assert.Equal(t, "2026-03-12", resp.Weekly[3].Date)
	assert.Equal(t, 1, resp.Weekly[3].Count)
}

func TestUpdateStatus_OwnerAccepts(t *testing.T) {
	svc, repo, _ := newService()
	msg := "see you"
	repo.On("GetByID", mock.Anything, "b-1").Return(pendingBooking(), nil)
	repo.On("UpdateStatus", mock.Anything, "b-1", domain.StatusPending, domain.StatusAccepted, &msg).Return(nil)

	resp, err := svc.UpdateStatus(context.Background(), "b-1", &models.UpdateStatusRequest{
		UserID: "owner-1", Status: "ACCEPTED", ResponseMessage: &msg,
	})

	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", resp.Status)
	assert.Equal(t, &msg, resp.ResponseMessage)
}

func TestUpdateStatus_Rules(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		req     *models.UpdateStatusRequest
		wantErr error
	}{
		{
			name:    "customer cannot accept",
			booking: pendingBooking(),
			req:     &models.UpdateStatusRequest{UserID: "cust-1", Status: "ACCEPTED"},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "stranger cannot cancel",
			booking: pendingBooking(),
			req:     &models.UpdateStatusRequest{UserID: "stranger", Status: "CANCELLED"},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "completed is terminal",
			booking: &domain.Booking{ID: "b-1", ShopOwnerID: "owner-1", Status: domain.StatusCompleted},
			req:     &models.UpdateStatusRequest{UserID: "owner-1", Status: "CANCELLED"},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "unknown status",
			booking: pendingBooking(),
			req:     &models.UpdateStatusRequest{UserID: "owner-1", Status: "DONE"},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService()
			repo.On("GetByID", mock.Anything, "b-1").Return(tt.booking, nil).Maybe()

			_, err := svc.UpdateStatus(context.Background(), "b-1", tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateStatus_CustomerCancels(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", mock.Anything, "b-1").Return(pendingBooking(), nil)
	repo.On("UpdateStatus", mock.Anything, "b-1", domain.StatusPending, domain.StatusCancelled, (*string)(nil)).Return(nil)

	resp, err := svc.UpdateStatus(context.Background(), "b-1", &models.UpdateStatusRequest{UserID: "cust-1", Status: "CANCELLED"})

	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
}

// Клиент отменяет, владелец параллельно принимает: оба прочитали PENDING
func TestUpdateStatus_ConcurrentChange(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", mock.Anything, "b-1").Return(pendingBooking(), nil).Once()
	repo.On("GetByID", mock.Anything, "b-1").Return(pendingBooking(), nil).Once()
	repo.On("UpdateStatus", mock.Anything, "b-1", domain.StatusPending, domain.StatusCancelled, (*string)(nil)).
		Return(nil).Once()
	repo.On("UpdateStatus", mock.Anything, "b-1", domain.StatusPending, domain.StatusAccepted, (*string)(nil)).
		Return(fmt.Errorf("%w: current status is CANCELLED", bookingRepo.ErrStatusConflict)).Once()

	ctx := context.Background()
	_, err := svc.UpdateStatus(ctx, "b-1", &models.UpdateStatusRequest{UserID: "cust-1", Status: "CANCELLED"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, "b-1", &models.UpdateStatusRequest{UserID: "owner-1", Status: "ACCEPTED"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_DeletedConcurrently(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", mock.Anything, "b-1").Return(pendingBooking(), nil)
	repo.On("UpdateStatus", mock.Anything, "b-1", domain.StatusPending, domain.StatusRejected, (*string)(nil)).
		Return(bookingRepo.ErrBookingNotFound)

	_, err := svc.UpdateStatus(context.Background(), "b-1", &models.UpdateStatusRequest{UserID: "owner-1", Status: "REJECTED"})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", mock.Anything, "b-1").Return(pendingBooking(), nil)
	repo.On("Delete", mock.Anything, "b-1").Return(nil).Once()

	require.NoError(t, svc.Delete(context.Background(), "b-1", "owner-1"))

	assert.ErrorIs(t, svc.Delete(context.Background(), "b-1", "cust-1"), ErrAccessDenied)
	assert.ErrorIs(t, svc.Delete(context.Background(), "b-1", "stranger"), ErrAccessDenied)
	repo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestDelete_NotFound(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", mock.Anything, "nope").Return(nil, bookingRepo.ErrBookingNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "nope", "owner-1"), ErrBookingNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
