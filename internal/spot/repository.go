package spot

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSpot(ctx context.Context, name, address string, covered bool) (*Spot, error) {
	query := `
		INSERT INTO spots (name, address, covered)
		VALUES ($1, $2, $3)
		RETURNING id, name, address, covered, created_at
	`

	var spot Spot
	err := r.db.GetContext(ctx, &spot, query, name, address, covered)
	if err != nil {
		return nil, err
	}

	return &spot, nil
}

func (r *repository) GetAllSpots(ctx context.Context) ([]Spot, error) {
	query := `
		SELECT id, name, address, covered, created_at
		FROM spots
		ORDER BY created_at DESC
	`

	var spots []Spot
	err := r.db.SelectContext(ctx, &spots, query)
	if err != nil {
		return nil, err
	}

	return spots, nil
}

func (r *repository) GetSpotByID(ctx context.Context, id int) (*Spot, error) {
	query := `
		SELECT id, name, address, covered, created_at
		FROM spots
		WHERE id = $1
	`

	var spot Spot
	err := r.db.GetContext(ctx, &spot, query, id)
	if err != nil {
		return nil, err
	}

	return &spot, nil
}

func (r *repository) CreateWindow(ctx context.Context, spotID int, startTime, endTime time.Time, capacity int, priceCredits int64) (*Window, error) {
	query := `
		INSERT INTO spot_windows (spot_id, start_time, end_time, capacity, price_credits)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, spot_id, start_time, end_time, capacity, price_credits, created_at
	`

	var window Window
	err := r.db.GetContext(ctx, &window, query, spotID, startTime, endTime, capacity, priceCredits)
	if err != nil {
		return nil, err
	}

	return &window, nil
}

func (r *repository) GetWindowsBySpot(ctx context.Context, spotID int, onlyFuture bool) ([]Window, error) {
	query := `
		SELECT id, spot_id, start_time, end_time, capacity, price_credits, created_at
		FROM spot_windows
		WHERE spot_id = $1
	`
	args := []interface{}{spotID}

	if onlyFuture {
		query += " AND start_time > NOW()"
	}

	query += " ORDER BY start_time ASC"

	var windows []Window
	err := r.db.SelectContext(ctx, &windows, query, args...)
	if err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *repository) GetWindowByID(ctx context.Context, id int) (*Window, error) {
	query := `
		SELECT id, spot_id, start_time, end_time, capacity, price_credits, created_at
		FROM spot_windows
		WHERE id = $1
	`

	var window Window
	err := r.db.GetContext(ctx, &window, query, id)
	if err != nil {
		return nil, err
	}

	return &window, nil
}

func (r *repository) GetWindowsWithAvailability(ctx context.Context, spotID int, onlyFuture bool) ([]WindowWithAvailability, error) {
	windows, err := r.GetWindowsBySpot(ctx, spotID, onlyFuture)
	if err != nil {
		return nil, err
	}

	result := make([]WindowWithAvailability, 0, len(windows))
	for _, window := range windows {
		var reservedCount int
		countQuery := `
			SELECT COUNT(*)
			FROM reservations
			WHERE window_id = $1 AND status = 'reserved'
		`
		err := r.db.GetContext(ctx, &reservedCount, countQuery, window.ID)
		if err != nil {
			return nil, err
		}

		available := window.Capacity - reservedCount
		isFull := available <= 0

		result = append(result, WindowWithAvailability{
			Window:        window,
			ReservedCount: reservedCount,
			Available:     available,
			IsFull:        isFull,
		})
	}

	return result, nil
}
