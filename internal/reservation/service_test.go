package reservation

import (
	"context"
	"testing"
	"time"

	"ecospot/internal/rewards"
	"ecospot/internal/spot"
	"ecospot/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) CreateReservation(ctx context.Context, userID, windowID int, distanceKm, co2Grams *float64) (*Reservation, error) {
	args := m.Called(ctx, userID, windowID, distanceKm, co2Grams)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockReservationRepo) GetReservationByID(ctx context.Context, id int) (*Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockReservationRepo) CancelReservation(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepo) CountActiveForWindow(ctx context.Context, windowID int) (int, error) {
	args := m.Called(ctx, windowID)
	return args.Int(0), args.Error(1)
}

func (m *MockReservationRepo) UserHasReservationForWindow(ctx context.Context, userID, windowID int) (bool, error) {
	args := m.Called(ctx, userID, windowID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepo) GetUserReservations(ctx context.Context, userID int) ([]ReservationWithDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func (m *MockReservationRepo) GetReservationsByWindow(ctx context.Context, windowID int) ([]ReservationWithDetails, error) {
	args := m.Called(ctx, windowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func (m *MockReservationRepo) GetReservationsBySpot(ctx context.Context, spotID int) ([]ReservationWithDetails, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func (m *MockReservationRepo) ListFacts(ctx context.Context, userID int) ([]rewards.ReservationFact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rewards.ReservationFact), args.Error(1)
}

type MockSpotRepo struct {
	mock.Mock
}

func (m *MockSpotRepo) CreateSpot(ctx context.Context, name, address string, covered bool) (*spot.Spot, error) {
	args := m.Called(ctx, name, address, covered)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spot.Spot), args.Error(1)
}

func (m *MockSpotRepo) GetAllSpots(ctx context.Context) ([]spot.Spot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]spot.Spot), args.Error(1)
}

func (m *MockSpotRepo) GetSpotByID(ctx context.Context, id int) (*spot.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spot.Spot), args.Error(1)
}

func (m *MockSpotRepo) CreateWindow(ctx context.Context, spotID int, startTime, endTime time.Time, capacity int, priceCredits int64) (*spot.Window, error) {
	args := m.Called(ctx, spotID, startTime, endTime, capacity, priceCredits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spot.Window), args.Error(1)
}

func (m *MockSpotRepo) GetWindowsBySpot(ctx context.Context, spotID int, onlyFuture bool) ([]spot.Window, error) {
	args := m.Called(ctx, spotID, onlyFuture)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]spot.Window), args.Error(1)
}

func (m *MockSpotRepo) GetWindowByID(ctx context.Context, id int) (*spot.Window, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spot.Window), args.Error(1)
}

func (m *MockSpotRepo) GetWindowsWithAvailability(ctx context.Context, spotID int, onlyFuture bool) ([]spot.WindowWithAvailability, error) {
	args := m.Called(ctx, spotID, onlyFuture)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]spot.WindowWithAvailability), args.Error(1)
}

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) GetOrCreateWallet(ctx context.Context, userID int) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepo) AddTransaction(ctx context.Context, userID int, amountCredits int64, txType, ref string) error {
	args := m.Called(ctx, userID, amountCredits, txType, ref)
	return args.Error(0)
}

func (m *MockWalletRepo) TopUp(ctx context.Context, userID int, amountCredits int64) error {
	args := m.Called(ctx, userID, amountCredits)
	return args.Error(0)
}

func (m *MockWalletRepo) CreditConversion(ctx context.Context, userID int, credits int64, ref string) error {
	args := m.Called(ctx, userID, credits, ref)
	return args.Error(0)
}

func (m *MockWalletRepo) GetTransactions(ctx context.Context, userID int, limit, offset int) ([]wallet.Transaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wallet.Transaction), args.Error(1)
}

func futureWindow() *spot.Window {
	return &spot.Window{
		ID:           3,
		SpotID:       1,
		StartTime:    time.Now().Add(4 * time.Hour),
		EndTime:      time.Now().Add(6 * time.Hour),
		Capacity:     2,
		PriceCredits: 10,
	}
}

func newReserveService(resRepo *MockReservationRepo, spotRepo *MockSpotRepo, walletRepo *MockWalletRepo) Service {
	return NewService(resRepo, spotRepo, walletRepo, nil, nil)
}

func TestReserve_Success(t *testing.T) {
	resRepo := new(MockReservationRepo)
	spotRepo := new(MockSpotRepo)
	walletRepo := new(MockWalletRepo)
	svc := newReserveService(resRepo, spotRepo, walletRepo)

	window := futureWindow()
	dist := 2.5

	spotRepo.On("GetWindowByID", mock.Anything, 3).Return(window, nil)
	resRepo.On("CountActiveForWindow", mock.Anything, 3).Return(0, nil)
	resRepo.On("UserHasReservationForWindow", mock.Anything, 7, 3).Return(false, nil)
	resRepo.On("CreateReservation", mock.Anything, 7, 3, &dist, (*float64)(nil)).
		Return(&Reservation{ID: 11, UserID: 7, WindowID: 3, Status: StatusReserved, DistanceKm: &dist}, nil)
	walletRepo.On("AddTransaction", mock.Anything, 7, int64(-10), "reservation_payment", "").Return(nil)

	res, err := svc.Reserve(context.Background(), 7, 3, ReserveRequest{DistanceKm: &dist})
	require.NoError(t, err)

	assert.Equal(t, 11, res.ID)
	assert.Equal(t, StatusReserved, res.Status)
	walletRepo.AssertExpectations(t)
}

func TestReserve_WindowInPast(t *testing.T) {
	resRepo := new(MockReservationRepo)
	spotRepo := new(MockSpotRepo)
	svc := newReserveService(resRepo, spotRepo, new(MockWalletRepo))

	past := futureWindow()
	past.StartTime = time.Now().Add(-time.Hour)

	spotRepo.On("GetWindowByID", mock.Anything, 3).Return(past, nil)

	_, err := svc.Reserve(context.Background(), 7, 3, ReserveRequest{})
	assert.ErrorIs(t, err, ErrWindowInPast)
}

func TestReserve_WindowFull(t *testing.T) {
	resRepo := new(MockReservationRepo)
	spotRepo := new(MockSpotRepo)
	svc := newReserveService(resRepo, spotRepo, new(MockWalletRepo))

	spotRepo.On("GetWindowByID", mock.Anything, 3).Return(futureWindow(), nil)
	resRepo.On("CountActiveForWindow", mock.Anything, 3).Return(2, nil)

	_, err := svc.Reserve(context.Background(), 7, 3, ReserveRequest{})
	assert.ErrorIs(t, err, ErrWindowFull)
}

func TestReserve_Duplicate(t *testing.T) {
	resRepo := new(MockReservationRepo)
	spotRepo := new(MockSpotRepo)
	svc := newReserveService(resRepo, spotRepo, new(MockWalletRepo))

	spotRepo.On("GetWindowByID", mock.Anything, 3).Return(futureWindow(), nil)
	resRepo.On("CountActiveForWindow", mock.Anything, 3).Return(1, nil)
	resRepo.On("UserHasReservationForWindow", mock.Anything, 7, 3).Return(true, nil)

	_, err := svc.Reserve(context.Background(), 7, 3, ReserveRequest{})
	assert.ErrorIs(t, err, ErrAlreadyReserved)
}

func TestReserve_InsufficientFundsReleasesReservation(t *testing.T) {
	resRepo := new(MockReservationRepo)
	spotRepo := new(MockSpotRepo)
	walletRepo := new(MockWalletRepo)
	svc := newReserveService(resRepo, spotRepo, walletRepo)

	spotRepo.On("GetWindowByID", mock.Anything, 3).Return(futureWindow(), nil)
	resRepo.On("CountActiveForWindow", mock.Anything, 3).Return(0, nil)
	resRepo.On("UserHasReservationForWindow", mock.Anything, 7, 3).Return(false, nil)
	resRepo.On("CreateReservation", mock.Anything, 7, 3, (*float64)(nil), (*float64)(nil)).
		Return(&Reservation{ID: 11, UserID: 7, WindowID: 3, Status: StatusReserved}, nil)
	walletRepo.On("AddTransaction", mock.Anything, 7, int64(-10), "reservation_payment", "").
		Return(wallet.ErrInsufficientBalance)
	resRepo.On("CancelReservation", mock.Anything, 11).Return(nil)

	_, err := svc.Reserve(context.Background(), 7, 3, ReserveRequest{})
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	resRepo.AssertCalled(t, "CancelReservation", mock.Anything, 11)
}

func TestCancel_NotOwner(t *testing.T) {
	resRepo := new(MockReservationRepo)
	svc := newReserveService(resRepo, new(MockSpotRepo), new(MockWalletRepo))

	resRepo.On("GetReservationByID", mock.Anything, 11).
		Return(&Reservation{ID: 11, UserID: 99, WindowID: 3, Status: StatusReserved}, nil)

	err := svc.Cancel(context.Background(), 7, 11)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCancel_RefundsFutureWindow(t *testing.T) {
	resRepo := new(MockReservationRepo)
	spotRepo := new(MockSpotRepo)
	walletRepo := new(MockWalletRepo)
	svc := newReserveService(resRepo, spotRepo, walletRepo)

	resRepo.On("GetReservationByID", mock.Anything, 11).
		Return(&Reservation{ID: 11, UserID: 7, WindowID: 3, Status: StatusReserved}, nil)
	resRepo.On("CancelReservation", mock.Anything, 11).Return(nil)
	spotRepo.On("GetWindowByID", mock.Anything, 3).Return(futureWindow(), nil)
	walletRepo.On("AddTransaction", mock.Anything, 7, int64(10), "refund", "").Return(nil)

	err := svc.Cancel(context.Background(), 7, 11)
	require.NoError(t, err)

	walletRepo.AssertCalled(t, "AddTransaction", mock.Anything, 7, int64(10), "refund", "")
}

func TestCancel_NoRefundForStartedWindow(t *testing.T) {
	resRepo := new(MockReservationRepo)
	spotRepo := new(MockSpotRepo)
	walletRepo := new(MockWalletRepo)
	svc := newReserveService(resRepo, spotRepo, walletRepo)

	started := futureWindow()
	started.StartTime = time.Now().Add(-time.Hour)

	resRepo.On("GetReservationByID", mock.Anything, 11).
		Return(&Reservation{ID: 11, UserID: 7, WindowID: 3, Status: StatusReserved}, nil)
	resRepo.On("CancelReservation", mock.Anything, 11).Return(nil)
	spotRepo.On("GetWindowByID", mock.Anything, 3).Return(started, nil)

	err := svc.Cancel(context.Background(), 7, 11)
	require.NoError(t, err)

	walletRepo.AssertNotCalled(t, "AddTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	resRepo := new(MockReservationRepo)
	svc := newReserveService(resRepo, new(MockSpotRepo), new(MockWalletRepo))

	resRepo.On("GetReservationByID", mock.Anything, 11).
		Return(&Reservation{ID: 11, UserID: 7, WindowID: 3, Status: StatusCancelled}, nil)
	resRepo.On("CancelReservation", mock.Anything, 11).Return(ErrReservationNotFoundOrAlreadyCancelled)

	err := svc.Cancel(context.Background(), 7, 11)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
