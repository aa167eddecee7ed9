package domain

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Address   string
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Destinations in insertion order (creation order, not necessarily
	// chronological). Populated only by reads that ask for the relation.
	Destinations []Destination
}

// GeoPoint is a GeoJSON-style point. Geocoding is not performed at
// materialization time, so stored points are placeholders until a
// later enrichment pass fills them in.
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"` // lng, lat
}

type Destination struct {
	ID                 uuid.UUID `json:"id"`
	TripID             uuid.UUID `json:"tripId"`
	Position           int       `json:"position"`
	Title              string    `json:"title"`
	Notes              string    `json:"notes"`
	City               string    `json:"city"`
	Location           GeoPoint  `json:"location"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	TransportationMode string    `json:"transportationMode"`
	ActivityType       string    `json:"activityType"`
	Address            string    `json:"address"`
	Cost               float64   `json:"cost"`
	CreatedAt          time.Time `json:"createdAt"`
}
