package domain

// Chat roles accepted in conversation history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TripParameters holds what is known about the trip so far. Every field
// is optional during conversation; structured generation additionally
// requires at least one of Location or TripType.
type TripParameters struct {
	Location  string
	TripType  string
	StartDate *string
	EndDate   *string
	Budget    string
	Travelers int
}

// ChatMessage is a single turn of conversation history, in order.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatResult is the outcome of one conversational turn.
// CommandDetected reports that either the user's message or the
// assistant's reply signaled readiness to generate a full plan.
type ChatResult struct {
	Reply           string
	CommandDetected bool
}
