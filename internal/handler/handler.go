package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wayplan/wayplan/internal/config"
	"github.com/wayplan/wayplan/internal/domain"
	"github.com/wayplan/wayplan/internal/middleware"
	"github.com/wayplan/wayplan/internal/ratelimit"
	"github.com/wayplan/wayplan/internal/service"
)

// Handler holds all dependencies needed by route handlers.
type Handler struct {
	cfg          *config.Config
	userService  *service.UserService
	tripService  *service.TripService
	planner      *service.PlannerService
	generator    *service.GeneratorService
	materializer *service.MaterializerService
	guideService *service.GuideService
	limiter      ratelimit.Limiter
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg          *config.Config
	UserService  *service.UserService
	TripService  *service.TripService
	Planner      *service.PlannerService
	Generator    *service.GeneratorService
	Materializer *service.MaterializerService
	GuideService *service.GuideService
	Limiter      ratelimit.Limiter
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:          deps.Cfg,
		userService:  deps.UserService,
		tripService:  deps.TripService,
		planner:      deps.Planner,
		generator:    deps.Generator,
		materializer: deps.Materializer,
		guideService: deps.GuideService,
		limiter:      deps.Limiter,
	}
}

// Register wires all routes onto the engine.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := api.Group("/auth")
	auth.POST("/register", h.HandleRegister)
	auth.POST("/login", h.HandleLogin)

	api.GET("/guide", h.HandleGuide)

	authed := api.Group("")
	authed.Use(middleware.Auth(h.cfg.JWTSecret), middleware.RateLimit(h.limiter))

	authed.POST("/assistant/chat", h.HandleChat)

	authed.GET("/trips", h.HandleListTrips)
	authed.POST("/trips", h.HandleCreateTrip)
	authed.GET("/trips/:id", h.HandleGetTrip)
	authed.DELETE("/trips/:id", h.HandleDeleteTrip)
	authed.GET("/trips/:id/days", h.HandleTripDays)
	authed.POST("/trips/:id/plan", h.HandleGeneratePlan)
}

// errorStatus maps domain errors to HTTP statuses. Validation failures
// are the caller's fault; upstream classification is preserved so
// clients can react differently to auth failures versus throttling.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingMessage),
		errors.Is(err, domain.ErrInvalidHistory),
		errors.Is(err, domain.ErrInvalidParameters),
		errors.Is(err, domain.ErrMissingLocation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrTripNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrGuideNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUpstreamRateLimited):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUpstreamAuth),
		errors.Is(err, domain.ErrMalformedPlan),
		errors.Is(err, domain.ErrPlanSchema),
		errors.Is(err, domain.ErrUntrustedPlan):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}
