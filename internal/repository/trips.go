package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wayplan/wayplan/internal/domain"
)

type Trips struct {
	db *pgxpool.Pool
}

func NewTrips(db *pgxpool.Pool) *Trips {
	return &Trips{db: db}
}

func (r *Trips) Create(ctx context.Context, trip *domain.Trip) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO trips (id, user_id, name, address, start_date, end_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		trip.ID, trip.UserID, trip.Name, trip.Address, trip.StartDate, trip.EndDate, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (r *Trips) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, address, start_date, end_date, created_at, updated_at
		 FROM trips WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Address, &t.StartDate, &t.EndDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// GetWithDestinations loads a trip and populates its destination
// relation in insertion order.
func (r *Trips) GetWithDestinations(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, address, start_date, end_date, created_at, updated_at
		 FROM trips WHERE id = $1 AND user_id = $2`,
		tripID, userID,
	)
	var t domain.Trip
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Address, &t.StartDate, &t.EndDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("get trip: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, trip_id, position, title, notes, city, longitude, latitude,
		        start_time, end_time, transportation_mode, activity_type, address, cost, created_at
		 FROM destinations WHERE trip_id = $1 ORDER BY position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(
			&d.ID, &d.TripID, &d.Position, &d.Title, &d.Notes, &d.City,
			&d.Location.Coordinates[0], &d.Location.Coordinates[1],
			&d.StartTime, &d.EndTime, &d.TransportationMode, &d.ActivityType,
			&d.Address, &d.Cost, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan destination: %w", err)
		}
		d.Location.Type = "Point"
		t.Destinations = append(t.Destinations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Trips) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = $1 AND user_id = $2`, tripID, userID)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

func (r *Trips) CreateDestination(ctx context.Context, dest *domain.Destination) error {
	if dest.CreatedAt.IsZero() {
		dest.CreatedAt = time.Now()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO destinations (id, trip_id, position, title, notes, city, longitude, latitude,
		                           start_time, end_time, transportation_mode, activity_type, address, cost, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		dest.ID, dest.TripID, dest.Position, dest.Title, dest.Notes, dest.City,
		dest.Location.Coordinates[0], dest.Location.Coordinates[1],
		dest.StartTime, dest.EndTime, dest.TransportationMode, dest.ActivityType,
		dest.Address, dest.Cost, dest.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert destination: %w", err)
	}
	return nil
}

// AttachDestination completes the append by re-saving the owning trip.
// Membership itself is carried by the destination row; this records the
// trip-level write the append-and-save protocol expects.
func (r *Trips) AttachDestination(ctx context.Context, tripID, destID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE trips SET updated_at = now()
		 WHERE id = $1 AND EXISTS (SELECT 1 FROM destinations WHERE id = $2 AND trip_id = $1)`,
		tripID, destID,
	)
	if err != nil {
		return fmt.Errorf("save trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}
