package spot

import (
	"context"
	"time"
)

type Repository interface {
	CreateSpot(ctx context.Context, name, address string, covered bool) (*Spot, error)
	GetAllSpots(ctx context.Context) ([]Spot, error)
	GetSpotByID(ctx context.Context, id int) (*Spot, error)
	CreateWindow(ctx context.Context, spotID int, startTime, endTime time.Time, capacity int, priceCredits int64) (*Window, error)
	GetWindowsBySpot(ctx context.Context, spotID int, onlyFuture bool) ([]Window, error)
	GetWindowByID(ctx context.Context, id int) (*Window, error)
	GetWindowsWithAvailability(ctx context.Context, spotID int, onlyFuture bool) ([]WindowWithAvailability, error)
}
