package config

import "time"

const (
	// LLM request timeout
	RequestTimeout = 90 * time.Second

	// How many trailing history messages are replayed to the model
	MaxHistoryMessages = 20

	// Verification nonce range for structured generation
	NonceMin = 100000
	NonceMax = 999999

	// Materializer defaults
	DefaultStartHour          = 9
	DefaultActivityDuration   = 60 * time.Minute
	DefaultTransportationMode = "driving"
	UnknownHotelName          = "Unknown Hotel"

	// Auth
	TokenTTL   = 24 * time.Hour
	BcryptCost = 12

	// Rate limiting (fixed window)
	RateLimitWindow   = time.Minute
	RateLimitRequests = 20

	// Destination guide cache
	GuideCacheTTL = 1 * time.Hour

	// Server shutdown grace period
	ShutdownTimeout = 10 * time.Second
)
