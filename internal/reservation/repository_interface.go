package reservation

import (
	"context"

	"ecospot/internal/rewards"
)

type Repository interface {
	CreateReservation(ctx context.Context, userID, windowID int, distanceKm, co2Grams *float64) (*Reservation, error)
	GetReservationByID(ctx context.Context, id int) (*Reservation, error)
	CancelReservation(ctx context.Context, id int) error
	CountActiveForWindow(ctx context.Context, windowID int) (int, error)
	UserHasReservationForWindow(ctx context.Context, userID, windowID int) (bool, error)
	GetUserReservations(ctx context.Context, userID int) ([]ReservationWithDetails, error)
	GetReservationsByWindow(ctx context.Context, windowID int) ([]ReservationWithDetails, error)
	GetReservationsBySpot(ctx context.Context, spotID int) ([]ReservationWithDetails, error)
	ListFacts(ctx context.Context, userID int) ([]rewards.ReservationFact, error)
}
