package spot

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSpotNotFound  = errors.New("spot not found")
	ErrWindowInvalid = errors.New("invalid spot window")
)

type Service interface {
	CreateSpot(ctx context.Context, req CreateSpotRequest) (*Spot, error)
	GetAllSpots(ctx context.Context) ([]Spot, error)
	GetSpotByID(ctx context.Context, id int) (*Spot, error)
	CreateWindow(ctx context.Context, spotID int, req CreateWindowRequest) (*Window, error)
	GetWindows(ctx context.Context, spotID int, onlyFuture bool) ([]WindowWithAvailability, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateSpot(ctx context.Context, req CreateSpotRequest) (*Spot, error) {
	return s.repo.CreateSpot(ctx, req.Name, req.Address, req.Covered)
}

func (s *service) GetAllSpots(ctx context.Context) ([]Spot, error) {
	return s.repo.GetAllSpots(ctx)
}

func (s *service) GetSpotByID(ctx context.Context, id int) (*Spot, error) {
	spot, err := s.repo.GetSpotByID(ctx, id)
	if err != nil {
		return nil, ErrSpotNotFound
	}
	return spot, nil
}

func (s *service) CreateWindow(ctx context.Context, spotID int, req CreateWindowRequest) (*Window, error) {
	_, err := s.repo.GetSpotByID(ctx, spotID)
	if err != nil {
		return nil, ErrSpotNotFound
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrWindowInvalid
	}

	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, ErrWindowInvalid
	}

	if endTime.Before(startTime) || endTime.Equal(startTime) {
		return nil, ErrWindowInvalid
	}

	if req.Capacity <= 0 || req.PriceCredits < 0 {
		return nil, ErrWindowInvalid
	}

	return s.repo.CreateWindow(ctx, spotID, startTime, endTime, req.Capacity, req.PriceCredits)
}

func (s *service) GetWindows(ctx context.Context, spotID int, onlyFuture bool) ([]WindowWithAvailability, error) {
	_, err := s.repo.GetSpotByID(ctx, spotID)
	if err != nil {
		return nil, ErrSpotNotFound
	}

	return s.repo.GetWindowsWithAvailability(ctx, spotID, onlyFuture)
}
