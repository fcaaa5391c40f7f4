package reservation

import (
	"context"
	"errors"
	"time"

	"ecospot/internal/email"
	"ecospot/internal/logger"
	"ecospot/internal/metrics"
	"ecospot/internal/rewards"
	"ecospot/internal/spot"
	"ecospot/internal/user"
	"ecospot/internal/wallet"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrWindowNotFound      = errors.New("window not found")
	ErrWindowInPast        = errors.New("cannot reserve a window in the past")
	ErrWindowFull          = errors.New("window is full")
	ErrAlreadyReserved     = errors.New("user already has a reservation for this window")
	ErrNotOwner            = errors.New("can only cancel own reservations")
	ErrInsufficientFunds   = errors.New("insufficient wallet balance")
)

type Service interface {
	Reserve(ctx context.Context, userID, windowID int, req ReserveRequest) (*Reservation, error)
	Cancel(ctx context.Context, userID, reservationID int) error
	GetUserReservations(ctx context.Context, userID int) ([]ReservationWithDetails, error)
	GetReservationsByWindow(ctx context.Context, windowID int) ([]ReservationWithDetails, error)
	GetReservationsBySpot(ctx context.Context, spotID int) ([]ReservationWithDetails, error)
	ListFacts(ctx context.Context, userID int) ([]rewards.ReservationFact, error)
}

type service struct {
	reservationRepo Repository
	spotRepo        spot.Repository
	walletRepo      wallet.Repository
	userRepo        user.Repository
	emailService    *email.Service
}

func NewService(
	reservationRepo Repository,
	spotRepo spot.Repository,
	walletRepo wallet.Repository,
	userRepo user.Repository,
	emailService *email.Service,
) Service {
	return &service{
		reservationRepo: reservationRepo,
		spotRepo:        spotRepo,
		walletRepo:      walletRepo,
		userRepo:        userRepo,
		emailService:    emailService,
	}
}

func (s *service) Reserve(ctx context.Context, userID, windowID int, req ReserveRequest) (*Reservation, error) {
	window, err := s.spotRepo.GetWindowByID(ctx, windowID)
	if err != nil {
		return nil, ErrWindowNotFound
	}

	if window.StartTime.Before(time.Now()) {
		return nil, ErrWindowInPast
	}

	reservedCount, err := s.reservationRepo.CountActiveForWindow(ctx, windowID)
	if err != nil {
		return nil, err
	}

	if reservedCount >= window.Capacity {
		return nil, ErrWindowFull
	}

	hasReservation, err := s.reservationRepo.UserHasReservationForWindow(ctx, userID, windowID)
	if err != nil {
		return nil, err
	}

	if hasReservation {
		return nil, ErrAlreadyReserved
	}

	res, err := s.reservationRepo.CreateReservation(ctx, userID, windowID, req.DistanceKm, req.CO2EstimatedGrams)
	if err != nil {
		return nil, err
	}

	if window.PriceCredits > 0 {
		if err := s.walletRepo.AddTransaction(ctx, userID, -window.PriceCredits, "reservation_payment", ""); err != nil {
			// Release the seat the failed payment was holding.
			if cancelErr := s.reservationRepo.CancelReservation(ctx, res.ID); cancelErr != nil {
				logger.Error("failed to release unpaid reservation", "reservation_id", res.ID, "error", cancelErr)
			}
			if errors.Is(err, wallet.ErrInsufficientBalance) {
				return nil, ErrInsufficientFunds
			}
			return nil, err
		}
	}

	metrics.RecordReservation(StatusReserved)
	s.sendConfirmation(ctx, userID, window)

	return res, nil
}

func (s *service) Cancel(ctx context.Context, userID, reservationID int) error {
	res, err := s.reservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return ErrReservationNotFound
	}

	if res.UserID != userID {
		return ErrNotOwner
	}

	err = s.reservationRepo.CancelReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, ErrReservationNotFoundOrAlreadyCancelled) {
			return ErrReservationNotFound
		}
		return err
	}

	metrics.RecordReservationCancellation()

	// Refund only windows that have not started yet.
	window, err := s.spotRepo.GetWindowByID(ctx, res.WindowID)
	if err == nil && window.PriceCredits > 0 && window.StartTime.After(time.Now()) {
		if err := s.walletRepo.AddTransaction(ctx, userID, window.PriceCredits, "refund", ""); err != nil {
			logger.Error("failed to refund cancelled reservation", "reservation_id", reservationID, "error", err)
		}
	}

	s.sendCancellation(ctx, userID, window)

	return nil
}

func (s *service) GetUserReservations(ctx context.Context, userID int) ([]ReservationWithDetails, error) {
	return s.reservationRepo.GetUserReservations(ctx, userID)
}

func (s *service) GetReservationsByWindow(ctx context.Context, windowID int) ([]ReservationWithDetails, error) {
	return s.reservationRepo.GetReservationsByWindow(ctx, windowID)
}

func (s *service) GetReservationsBySpot(ctx context.Context, spotID int) ([]ReservationWithDetails, error) {
	return s.reservationRepo.GetReservationsBySpot(ctx, spotID)
}

func (s *service) ListFacts(ctx context.Context, userID int) ([]rewards.ReservationFact, error) {
	return s.reservationRepo.ListFacts(ctx, userID)
}

func (s *service) sendConfirmation(ctx context.Context, userID int, window *spot.Window) {
	if s.emailService == nil || s.userRepo == nil {
		return
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return
	}

	spotName := "Parking Spot"
	details := window.StartTime.Format("Jan 2, 2006 at 3:04 PM")
	if sp, err := s.spotRepo.GetSpotByID(ctx, window.SpotID); err == nil {
		spotName = sp.Name
		details = sp.Address
	}

	s.emailService.SendReservationConfirmation(ctx, u.Email, u.Name, spotName, details, window.StartTime)
}

func (s *service) sendCancellation(ctx context.Context, userID int, window *spot.Window) {
	if s.emailService == nil || s.userRepo == nil || window == nil {
		return
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return
	}

	spotName := "Parking Spot"
	if sp, err := s.spotRepo.GetSpotByID(ctx, window.SpotID); err == nil {
		spotName = sp.Name
	}

	s.emailService.SendCancellation(ctx, u.Email, u.Name, spotName, window.StartTime.Format("Jan 2, 2006 at 3:04 PM"))
}
