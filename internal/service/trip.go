package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wayplan/wayplan/internal/domain"
	"github.com/wayplan/wayplan/internal/repository"
)

type TripService struct {
	trips *repository.Trips
}

func NewTripService(trips *repository.Trips) *TripService {
	return &TripService{trips: trips}
}

func (s *TripService) Create(ctx context.Context, userID uuid.UUID, name, address string, startDate, endDate *time.Time) (*domain.Trip, error) {
	trip := &domain.Trip{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Address:   address,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	return trip, nil
}

// Get returns a trip with its destinations populated in insertion
// order, scoped to the owning user.
func (s *TripService) Get(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error) {
	return s.trips.GetWithDestinations(ctx, userID, tripID)
}

func (s *TripService) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return s.trips.ListByUser(ctx, userID)
}

func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return s.trips.Delete(ctx, userID, tripID)
}

// Days returns the day-grouped view of a trip's destinations.
func (s *TripService) Days(ctx context.Context, userID, tripID uuid.UUID) ([]domain.DayView, error) {
	trip, err := s.trips.GetWithDestinations(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	return GroupByDay(trip), nil
}
