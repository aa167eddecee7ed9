package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wayplan/wayplan/internal/config"
	"github.com/wayplan/wayplan/internal/domain"
)

// TriggerPhrase is the fixed readiness signal the model is instructed
// to emit once it judges enough trip information has been gathered.
const TriggerPhrase = "I'll create your trip plan now."

// planCommandRe matches user phrasing that asks for a plan directly,
// e.g. "generate an itinerary" or "give me a trip schedule".
var planCommandRe = regexp.MustCompile(`(?i)\b(create|generate|make|show|give me)\b.*\b(plan|itinerary|trip|schedule)\b`)

// PlannerService drives the multi-turn intake conversation.
type PlannerService struct {
	llm   ChatCompleter
	model string
}

func NewPlannerService(llm ChatCompleter, model string) *PlannerService {
	return &PlannerService{llm: llm, model: model}
}

// Chat runs one conversational turn: system instruction, full prior
// history in order, then the new user message. The caller owns the
// history and is responsible for appending this turn before the next
// call.
func (s *PlannerService) Chat(ctx context.Context, message string, params domain.TripParameters, history []domain.ChatMessage) (*domain.ChatResult, error) {
	if err := ValidateChatInput(message, history); err != nil {
		return nil, err
	}
	params, err := NormalizeParameters(params)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: domain.RoleSystem, Content: intakePrompt(params)})
	for _, m := range truncateHistory(history, config.MaxHistoryMessages) {
		messages = append(messages, Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, Message{Role: domain.RoleUser, Content: message})

	reply, err := s.llm.Complete(ctx, s.model, messages, false)
	if err != nil {
		return nil, fmt.Errorf("chat turn: %w", err)
	}

	return &domain.ChatResult{
		Reply:           reply,
		CommandDetected: DetectReadiness(message, reply),
	}, nil
}

// DetectReadiness is an OR of two independent signals: the user asked
// for a plan outright, or the model's reply contains the trigger
// phrase. Either alone is enough; a premature offer beats never
// offering one.
func DetectReadiness(userMessage, reply string) bool {
	if planCommandRe.MatchString(userMessage) {
		return true
	}
	return strings.Contains(strings.ToLower(reply), strings.ToLower(TriggerPhrase))
}

func intakePrompt(p domain.TripParameters) string {
	var b strings.Builder
	b.WriteString("You are a travel planning assistant gathering trip details through conversation.\n")
	b.WriteString("Known trip details so far:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", orNotSpecified(p.Location))
	fmt.Fprintf(&b, "- Trip type: %s\n", orNotSpecified(p.TripType))
	fmt.Fprintf(&b, "- Start date: %s\n", orNotSpecified(deref(p.StartDate)))
	fmt.Fprintf(&b, "- End date: %s\n", orNotSpecified(deref(p.EndDate)))
	if p.Budget != "" {
		fmt.Fprintf(&b, "- Budget: %s\n", p.Budget)
	} else {
		b.WriteString("- Budget: Medium (assumed)\n")
	}
	if p.Travelers > 1 {
		fmt.Fprintf(&b, "- Travelers: %d\n", p.Travelers)
	} else {
		b.WriteString("- Travelers: 1 (assumed)\n")
	}
	b.WriteString("Ask for the most important missing detail, one question at a time. ")
	b.WriteString("Keep responses short and concrete. Do not stall with filler phrases. ")
	fmt.Fprintf(&b, "When you judge enough information has been gathered, say exactly: %q", TriggerPhrase)
	return b.String()
}

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Not specified"
	}
	return v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func truncateHistory(history []domain.ChatMessage, limit int) []domain.ChatMessage {
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
