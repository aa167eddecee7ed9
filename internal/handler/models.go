package handler

import (
	"github.com/wayplan/wayplan/internal/domain"
)

type parametersPayload struct {
	Location  string  `json:"location"`
	TripType  string  `json:"tripType"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Budget    string  `json:"budget"`
	Travelers int     `json:"travelers"`
}

func (p parametersPayload) toDomain() domain.TripParameters {
	return domain.TripParameters{
		Location:  p.Location,
		TripType:  p.TripType,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Budget:    p.Budget,
		Travelers: p.Travelers,
	}
}

type messagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message    string            `json:"message"`
	Parameters parametersPayload `json:"parameters"`
	History    []messagePayload  `json:"history"`
}

type chatResponse struct {
	Reply           string `json:"reply"`
	CommandDetected bool   `json:"commandDetected"`
}

type generatePlanRequest struct {
	Parameters parametersPayload `json:"parameters"`
	Context    string            `json:"context"`
}

type generatePlanResponse struct {
	Plan         *domain.GeneratedTripPlan `json:"plan"`
	Materialized int                       `json:"materialized"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type createTripRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}
