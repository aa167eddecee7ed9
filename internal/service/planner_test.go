package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wayplan/wayplan/internal/config"
	"github.com/wayplan/wayplan/internal/domain"
)

// fakeCompleter records what it was asked and returns a canned reply.
type fakeCompleter struct {
	reply    string
	err      error
	calls    int
	messages []Message
}

func (f *fakeCompleter) Complete(_ context.Context, _ string, messages []Message, _ bool) (string, error) {
	f.calls++
	f.messages = messages
	return f.reply, f.err
}

func TestDetectReadiness(t *testing.T) {
	tests := []struct {
		name    string
		message string
		reply   string
		want    bool
	}{
		{"command only", "please generate an itinerary for me", "Sure, what dates?", true},
		{"command phrasing variant", "give me a trip schedule", "Working on it.", true},
		{"trigger only", "April sounds good", "Great. I'll create your trip plan now.", true},
		{"trigger case insensitive", "ok", "i'll create your trip plan now.", true},
		{"neither", "I like sushi", "Noted! Any dietary restrictions?", false},
		{"plan word without verb", "the plan sounds nice", "Glad to hear it.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectReadiness(tt.message, tt.reply); got != tt.want {
				t.Errorf("DetectReadiness(%q, %q) = %v, want %v", tt.message, tt.reply, got, tt.want)
			}
		})
	}
}

func TestPlannerChat(t *testing.T) {
	fake := &fakeCompleter{reply: "Where would you like to go?"}
	planner := NewPlannerService(fake, "test-model")

	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "I want a beach holiday"},
		{Role: domain.RoleAssistant, Content: "Nice! Any destination in mind?"},
	}
	result, err := planner.Chat(context.Background(), "somewhere warm", domain.TripParameters{}, history)
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if result.Reply != fake.reply {
		t.Errorf("reply = %q, want %q", result.Reply, fake.reply)
	}
	if result.CommandDetected {
		t.Error("readiness detected on plain conversation")
	}

	// system + 2 history + user
	if len(fake.messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(fake.messages))
	}
	if fake.messages[0].Role != domain.RoleSystem {
		t.Errorf("first message role = %q, want system", fake.messages[0].Role)
	}
	if last := fake.messages[len(fake.messages)-1]; last.Role != domain.RoleUser || last.Content != "somewhere warm" {
		t.Errorf("last message = %+v, want new user message", last)
	}
	if !strings.Contains(fake.messages[0].Content, TriggerPhrase) {
		t.Error("system prompt does not instruct the trigger phrase")
	}
}

func TestPlannerChatHistoryTruncation(t *testing.T) {
	fake := &fakeCompleter{reply: "ok"}
	planner := NewPlannerService(fake, "test-model")

	history := make([]domain.ChatMessage, config.MaxHistoryMessages+10)
	for i := range history {
		history[i] = domain.ChatMessage{Role: domain.RoleUser, Content: "msg"}
	}
	history[len(history)-1].Content = "newest"

	if _, err := planner.Chat(context.Background(), "hello", domain.TripParameters{}, history); err != nil {
		t.Fatalf("chat: %v", err)
	}

	want := config.MaxHistoryMessages + 2
	if len(fake.messages) != want {
		t.Fatalf("got %d messages, want %d", len(fake.messages), want)
	}
	// The newest history entry survives truncation, right before the
	// new user message.
	if got := fake.messages[len(fake.messages)-2].Content; got != "newest" {
		t.Errorf("second-to-last message = %q, want newest history entry", got)
	}
}

func TestPlannerChatRejectsBadInputWithoutUpstreamCall(t *testing.T) {
	fake := &fakeCompleter{reply: "never"}
	planner := NewPlannerService(fake, "test-model")

	if _, err := planner.Chat(context.Background(), "", domain.TripParameters{}, nil); !errors.Is(err, domain.ErrMissingMessage) {
		t.Errorf("got %v, want ErrMissingMessage", err)
	}
	if fake.calls != 0 {
		t.Errorf("upstream called %d times for invalid input", fake.calls)
	}
}
