package service

import (
	"fmt"
	"strings"

	"github.com/wayplan/wayplan/internal/domain"
)

// ValidateChatInput checks the message and history shapes before any
// upstream call is made. A single malformed history entry fails the
// whole call.
func ValidateChatInput(message string, history []domain.ChatMessage) error {
	if strings.TrimSpace(message) == "" {
		return domain.ErrMissingMessage
	}
	for i, m := range history {
		switch m.Role {
		case domain.RoleSystem, domain.RoleUser, domain.RoleAssistant:
		default:
			return fmt.Errorf("%w: entry %d has role %q", domain.ErrInvalidHistory, i, m.Role)
		}
		if m.Content == "" {
			return fmt.Errorf("%w: entry %d has empty content", domain.ErrInvalidHistory, i)
		}
	}
	return nil
}

// NormalizeParameters applies shape checks and defaults. Travelers
// defaults to 1 when unset.
func NormalizeParameters(p domain.TripParameters) (domain.TripParameters, error) {
	if p.Travelers < 0 {
		return p, fmt.Errorf("%w: travelers must be at least 1", domain.ErrInvalidParameters)
	}
	if p.Travelers == 0 {
		p.Travelers = 1
	}
	p.Location = strings.TrimSpace(p.Location)
	p.TripType = strings.TrimSpace(p.TripType)
	return p, nil
}

// RequirePlanTarget enforces the structured-generation precondition:
// at least one of location or trip type must be present. Conversational
// chat may proceed with neither.
func RequirePlanTarget(p domain.TripParameters) error {
	if strings.TrimSpace(p.Location) == "" && strings.TrimSpace(p.TripType) == "" {
		return domain.ErrMissingLocation
	}
	return nil
}
