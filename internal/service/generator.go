package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wayplan/wayplan/internal/config"
	"github.com/wayplan/wayplan/internal/domain"
)

// GeneratorService issues a single schema-constrained generation
// request and trusts the result only after it passes verification.
type GeneratorService struct {
	llm      ChatCompleter
	model    string
	validate *validator.Validate
}

func NewGeneratorService(llm ChatCompleter, model string) *GeneratorService {
	return &GeneratorService{
		llm:      llm,
		model:    model,
		validate: validator.New(),
	}
}

// planEnvelope is the untrusted wire shape. It is validated before any
// typed domain value is constructed from it.
type planEnvelope struct {
	Destination string        `json:"destination" validate:"required"`
	Title       string        `json:"title" validate:"required"`
	StartDate   *string       `json:"startDate"`
	EndDate     *string       `json:"endDate"`
	Days        []dayEnvelope `json:"days" validate:"required,dive"`
	Budget      string        `json:"budget" validate:"required"`
	Travelers   int           `json:"travelers" validate:"required,min=1"`
	Summary     string        `json:"summary" validate:"required"`
	Tags        []string      `json:"tags" validate:"required"`
	Nonce       *int          `json:"nonce" validate:"required"`
}

type dayEnvelope struct {
	Date       string             `json:"date" validate:"required"`
	Hotel      string             `json:"hotel" validate:"required"`
	Activities []activityEnvelope `json:"activities" validate:"required,dive"`
	Notes      string             `json:"notes"`
}

type activityEnvelope struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       string   `json:"price" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Tags        []string `json:"tags"`
}

// GeneratePlan produces exactly one verified trip plan from the
// accumulated parameters plus free-text context collected during
// conversation. Each failure is terminal for the attempt; retries are
// caller policy.
func (s *GeneratorService) GeneratePlan(ctx context.Context, params domain.TripParameters, conversationContext string) (*domain.GeneratedTripPlan, error) {
	params, err := NormalizeParameters(params)
	if err != nil {
		return nil, err
	}
	if err := RequirePlanTarget(params); err != nil {
		return nil, err
	}

	// Single-use nonce. The model must echo it back, proving the
	// response answers this request and not a stale or tampered one.
	nonce := config.NonceMin + rand.IntN(config.NonceMax-config.NonceMin+1)

	messages := []Message{
		{Role: domain.RoleSystem, Content: planPrompt(nonce)},
		{Role: domain.RoleUser, Content: planRequest(params, conversationContext)},
	}

	raw, err := s.llm.Complete(ctx, s.model, messages, true)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	return verifyPlan(s.validate, raw, nonce)
}

// verifyPlan runs the response protocol in strict order: parse,
// schema-validate, nonce compare, strip nonce.
func verifyPlan(validate *validator.Validate, raw string, nonce int) (*domain.GeneratedTripPlan, error) {
	data := []byte(strings.TrimSpace(raw))
	if !json.Valid(data) {
		return nil, domain.ErrMalformedPlan
	}

	var envelope planEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlanSchema, err)
	}
	if err := validate.Struct(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlanSchema, firstViolation(err))
	}

	if *envelope.Nonce != nonce {
		return nil, fmt.Errorf("%w: nonce mismatch", domain.ErrUntrustedPlan)
	}

	plan := &domain.GeneratedTripPlan{
		Destination: envelope.Destination,
		Title:       envelope.Title,
		StartDate:   envelope.StartDate,
		EndDate:     envelope.EndDate,
		Days:        make([]domain.PlanDay, len(envelope.Days)),
		Budget:      envelope.Budget,
		Travelers:   envelope.Travelers,
		Summary:     envelope.Summary,
		Tags:        envelope.Tags,
	}
	for i, d := range envelope.Days {
		day := domain.PlanDay{
			Date:       d.Date,
			Hotel:      d.Hotel,
			Activities: make([]domain.PlanActivity, len(d.Activities)),
			Notes:      d.Notes,
		}
		for j, a := range d.Activities {
			day.Activities[j] = domain.PlanActivity(a)
		}
		plan.Days[i] = day
	}
	return plan, nil
}

func firstViolation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		v := verrs[0]
		return fmt.Sprintf("field %s failed %q", v.Namespace(), v.Tag())
	}
	return err.Error()
}

func planPrompt(nonce int) string {
	var b strings.Builder
	b.WriteString("You are a travel planner. Respond with a single JSON object and nothing else.\n")
	b.WriteString("The object must have these fields:\n")
	b.WriteString(`- "destination": string` + "\n")
	b.WriteString(`- "title": string` + "\n")
	b.WriteString(`- "startDate", "endDate": "YYYY-MM-DD" strings or null` + "\n")
	b.WriteString(`- "days": array of {"date", "hotel", "activities", "notes"}` + "\n")
	b.WriteString(`- each activity: {"name", "description", "location", "category", "price", "time", "tags"}` + "\n")
	b.WriteString(`- "price" is "Free", "Varies", or a currency amount like "$45"` + "\n")
	b.WriteString(`- "time" is "HH:MM AM/PM" or "Anytime"` + "\n")
	b.WriteString(`- "budget": string, "travelers": integer, "summary": string, "tags": array of strings` + "\n")
	fmt.Fprintf(&b, `- "nonce": the integer %d, exactly as given`+"\n", nonce)
	b.WriteString("Responses that omit or alter the nonce are discarded.")
	return b.String()
}

func planRequest(params domain.TripParameters, conversationContext string) string {
	var b strings.Builder
	b.WriteString("Create a complete trip plan for these parameters:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", orNotSpecified(params.Location))
	fmt.Fprintf(&b, "- Trip type: %s\n", orNotSpecified(params.TripType))
	fmt.Fprintf(&b, "- Start date: %s\n", orNotSpecified(deref(params.StartDate)))
	fmt.Fprintf(&b, "- End date: %s\n", orNotSpecified(deref(params.EndDate)))
	fmt.Fprintf(&b, "- Budget: %s\n", orNotSpecified(params.Budget))
	fmt.Fprintf(&b, "- Travelers: %d\n", params.Travelers)
	if strings.TrimSpace(conversationContext) != "" {
		b.WriteString("Additional context from the planning conversation:\n")
		b.WriteString(conversationContext)
	}
	return b.String()
}
