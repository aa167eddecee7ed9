package domain

import "errors"

var (
	ErrMissingMessage      = errors.New("message is required")
	ErrInvalidHistory      = errors.New("invalid chat history")
	ErrInvalidParameters   = errors.New("invalid trip parameters")
	ErrMissingLocation     = errors.New("location or trip type is required")
	ErrMalformedPlan       = errors.New("generated trip plan is not valid JSON")
	ErrPlanSchema          = errors.New("generated trip plan failed schema validation")
	ErrUntrustedPlan       = errors.New("generated trip plan failed verification")
	ErrUpstreamAuth        = errors.New("upstream provider rejected credentials")
	ErrUpstreamRateLimited = errors.New("upstream provider rate limited the request")
	ErrTripNotFound        = errors.New("trip not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrGuideNotFound       = errors.New("destination guide not found")
)
