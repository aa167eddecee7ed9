package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/wayplan/wayplan/internal/domain"
)

var nonceRe = regexp.MustCompile(`the integer (\d+)`)

// echoCompleter builds a well-formed plan response, echoing the nonce
// it finds in the system prompt shifted by offset.
type echoCompleter struct {
	offset int
	calls  int
}

func (e *echoCompleter) Complete(_ context.Context, _ string, messages []Message, _ bool) (string, error) {
	e.calls++
	m := nonceRe.FindStringSubmatch(messages[0].Content)
	if m == nil {
		return "", errors.New("no nonce in prompt")
	}
	nonce, _ := strconv.Atoi(m[1])
	return planJSON(nonce + e.offset), nil
}

func planJSON(nonce int) string {
	return fmt.Sprintf(`{
		"destination": "Kyoto",
		"title": "Kyoto in Spring",
		"startDate": "2024-04-01",
		"endDate": "2024-04-02",
		"days": [
			{
				"date": "2024-04-01",
				"hotel": "Gion Ryokan",
				"activities": [
					{"name": "Fushimi Inari", "description": "Shrine walk", "location": "Fushimi Ward", "category": "Sightseeing", "price": "Free", "time": "8:00 AM", "tags": ["outdoors"]}
				],
				"notes": "Arrival day"
			}
		],
		"budget": "Medium",
		"travelers": 2,
		"summary": "Two relaxed days in Kyoto.",
		"tags": ["culture"],
		"nonce": %d
	}`, nonce)
}

type stringCompleter struct {
	raw   string
	calls int
}

func (s *stringCompleter) Complete(_ context.Context, _ string, _ []Message, _ bool) (string, error) {
	s.calls++
	return s.raw, nil
}

func TestGeneratePlan(t *testing.T) {
	gen := NewGeneratorService(&echoCompleter{}, "test-model")

	plan, err := gen.GeneratePlan(context.Background(), domain.TripParameters{Location: "Kyoto"}, "prefers temples over museums")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if plan.Destination != "Kyoto" || len(plan.Days) != 1 {
		t.Errorf("unexpected plan: %+v", plan)
	}
	if got := plan.Days[0].Activities[0].Name; got != "Fushimi Inari" {
		t.Errorf("activity name = %q", got)
	}

	// The nonce is protocol plumbing and must not leak into the
	// returned plan.
	out, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal plan: %v", err)
	}
	if strings.Contains(string(out), "nonce") {
		t.Errorf("nonce leaked into plan JSON: %s", out)
	}
}

func TestGeneratePlanNonceMismatch(t *testing.T) {
	gen := NewGeneratorService(&echoCompleter{offset: 1}, "test-model")

	_, err := gen.GeneratePlan(context.Background(), domain.TripParameters{Location: "Kyoto"}, "")
	if !errors.Is(err, domain.ErrUntrustedPlan) {
		t.Fatalf("got %v, want ErrUntrustedPlan", err)
	}
}

func TestGeneratePlanMalformedJSON(t *testing.T) {
	gen := NewGeneratorService(&stringCompleter{raw: "Sure! Here is your plan: {..."}, "test-model")

	_, err := gen.GeneratePlan(context.Background(), domain.TripParameters{Location: "Kyoto"}, "")
	if !errors.Is(err, domain.ErrMalformedPlan) {
		t.Fatalf("got %v, want ErrMalformedPlan", err)
	}
}

func TestGeneratePlanSchemaViolation(t *testing.T) {
	// Valid JSON, but missing days and nonce entirely.
	raw := `{"destination": "Kyoto", "title": "x", "budget": "Low", "travelers": 1, "summary": "s", "tags": []}`
	gen := NewGeneratorService(&stringCompleter{raw: raw}, "test-model")

	_, err := gen.GeneratePlan(context.Background(), domain.TripParameters{Location: "Kyoto"}, "")
	if !errors.Is(err, domain.ErrPlanSchema) {
		t.Fatalf("got %v, want ErrPlanSchema", err)
	}
	if errors.Is(err, domain.ErrMalformedPlan) {
		t.Error("schema violation misreported as malformed JSON")
	}
}

func TestGeneratePlanRequiresTarget(t *testing.T) {
	fake := &stringCompleter{raw: "{}"}
	gen := NewGeneratorService(fake, "test-model")

	_, err := gen.GeneratePlan(context.Background(), domain.TripParameters{}, "")
	if !errors.Is(err, domain.ErrMissingLocation) {
		t.Fatalf("got %v, want ErrMissingLocation", err)
	}
	if fake.calls != 0 {
		t.Errorf("upstream called %d times without a plan target", fake.calls)
	}
}
