package reservation

import (
	"context"
	"errors"
	"time"

	"ecospot/internal/rewards"

	"github.com/jmoiron/sqlx"
)

var ErrReservationNotFoundOrAlreadyCancelled = errors.New("reservation not found or already cancelled")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReservation(ctx context.Context, userID, windowID int, distanceKm, co2Grams *float64) (*Reservation, error) {
	query := `
		INSERT INTO reservations (user_id, window_id, status, distance_km, co2_estimated_grams)
		VALUES ($1, $2, 'reserved', $3, $4)
		RETURNING id, user_id, window_id, status, distance_km, co2_estimated_grams, created_at
	`

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, userID, windowID, distanceKm, co2Grams)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *repository) GetReservationByID(ctx context.Context, id int) (*Reservation, error) {
	query := `
		SELECT id, user_id, window_id, status, distance_km, co2_estimated_grams, created_at
		FROM reservations
		WHERE id = $1
	`

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, id)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *repository) CancelReservation(ctx context.Context, id int) error {
	query := `
		UPDATE reservations
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'reserved'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrReservationNotFoundOrAlreadyCancelled
	}

	return nil
}

func (r *repository) CountActiveForWindow(ctx context.Context, windowID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE window_id = $1 AND status = 'reserved'
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, windowID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) UserHasReservationForWindow(ctx context.Context, userID, windowID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE user_id = $1 AND window_id = $2 AND status = 'reserved'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, windowID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) GetUserReservations(ctx context.Context, userID int) ([]ReservationWithDetails, error) {
	query := `
		SELECT
			r.id,
			r.user_id,
			r.window_id,
			r.status,
			r.distance_km,
			r.co2_estimated_grams,
			r.created_at,
			w.start_time,
			w.end_time,
			s.name AS spot_name,
			s.address AS spot_address,
			u.name AS user_name,
			u.email AS user_email
		FROM reservations r
		JOIN spot_windows w ON r.window_id = w.id
		JOIN spots s ON w.spot_id = s.id
		JOIN users u ON r.user_id = u.id
		WHERE r.user_id = $1
		ORDER BY w.start_time DESC, r.created_at DESC
	`

	var reservations []ReservationWithDetails
	err := r.db.SelectContext(ctx, &reservations, query, userID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) GetReservationsByWindow(ctx context.Context, windowID int) ([]ReservationWithDetails, error) {
	query := `
		SELECT
			r.id,
			r.user_id,
			r.window_id,
			r.status,
			r.distance_km,
			r.co2_estimated_grams,
			r.created_at,
			w.start_time,
			w.end_time,
			s.name AS spot_name,
			s.address AS spot_address,
			u.name AS user_name,
			u.email AS user_email
		FROM reservations r
		JOIN spot_windows w ON r.window_id = w.id
		JOIN spots s ON w.spot_id = s.id
		JOIN users u ON r.user_id = u.id
		WHERE r.window_id = $1
		ORDER BY r.created_at DESC
	`

	var reservations []ReservationWithDetails
	err := r.db.SelectContext(ctx, &reservations, query, windowID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) GetReservationsBySpot(ctx context.Context, spotID int) ([]ReservationWithDetails, error) {
	query := `
		SELECT
			r.id,
			r.user_id,
			r.window_id,
			r.status,
			r.distance_km,
			r.co2_estimated_grams,
			r.created_at,
			w.start_time,
			w.end_time,
			s.name AS spot_name,
			s.address AS spot_address,
			u.name AS user_name,
			u.email AS user_email
		FROM reservations r
		JOIN spot_windows w ON r.window_id = w.id
		JOIN spots s ON w.spot_id = s.id
		JOIN users u ON r.user_id = u.id
		WHERE s.id = $1
		ORDER BY w.start_time DESC, r.created_at DESC
	`

	var reservations []ReservationWithDetails
	err := r.db.SelectContext(ctx, &reservations, query, spotID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

type factRow struct {
	StartTime         time.Time `db:"start_time"`
	DistanceKm        *float64  `db:"distance_km"`
	CO2EstimatedGrams *float64  `db:"co2_estimated_grams"`
}

// ListFacts feeds the points engine: active reservations only, newest
// first, so the rewards summary's recent-activity feed lines up.
func (r *repository) ListFacts(ctx context.Context, userID int) ([]rewards.ReservationFact, error) {
	query := `
		SELECT w.start_time, r.distance_km, r.co2_estimated_grams
		FROM reservations r
		JOIN spot_windows w ON r.window_id = w.id
		WHERE r.user_id = $1 AND r.status = 'reserved'
		ORDER BY w.start_time DESC
	`

	var rows []factRow
	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, err
	}

	facts := make([]rewards.ReservationFact, 0, len(rows))
	for _, row := range rows {
		facts = append(facts, rewards.ReservationFact{
			StartTime:         row.StartTime.Format(time.RFC3339),
			DistanceKm:        row.DistanceKm,
			CO2EstimatedGrams: row.CO2EstimatedGrams,
		})
	}

	return facts, nil
}
